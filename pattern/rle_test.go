package pattern

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

func aliveSet(g *model.Grid) map[[2]int]bool {
	alive := map[[2]int]bool{}
	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Cols(); x++ {
			if g.Alive(x, y) {
				alive[[2]int{x, y}] = true
			}
		}
	}
	return alive
}

func expectCells(t *testing.T, g *model.Grid, cols, rows int, want ...[2]int) {
	t.Helper()
	if c, r := g.Dimensions(); c != cols || r != rows {
		t.Fatalf("dimensions=%dx%d, expected %dx%d", c, r, cols, rows)
	}
	got := aliveSet(g)
	if len(got) != len(want) {
		t.Fatalf("alive cells=%v, expected %v", got, want)
	}
	for _, c := range want {
		if !got[c] {
			t.Fatalf("cell %v dead, expected alive (alive: %v)", c, got)
		}
	}
}

func TestParseRLEMinimal(t *testing.T) {
	g, err := ParseRLE(strings.NewReader("x = 3, y = 3\nbo$obo$bo!"), 0)
	if err != nil {
		t.Fatalf("ParseRLE: %v", err)
	}
	expectCells(t, g, 3, 3, [2]int{1, 0}, [2]int{0, 1}, [2]int{2, 1}, [2]int{1, 2})
	if g.Generation() != 0 {
		t.Fatalf("generation=%d, expected 0", g.Generation())
	}
}

func TestParseRLEGliderWithCommentsAndPadding(t *testing.T) {
	src := strings.Join([]string{
		"#N Glider",
		"#C The smallest spaceship.",
		"x = 3, y = 3, rule = B3/S23",
		"bOb$2bo$3o!",
		"#C trailing text after the terminator is ignored: ooo",
		"",
	}, "\r\n")

	g, err := ParseRLE(strings.NewReader(src), 2)
	if err != nil {
		t.Fatalf("ParseRLE: %v", err)
	}
	expectCells(t, g, 7, 7, [2]int{3, 2}, [2]int{4, 3}, [2]int{2, 4}, [2]int{3, 4}, [2]int{4, 4})
}

func TestParseRLEBodyAcrossLines(t *testing.T) {
	g, err := ParseRLE(strings.NewReader("x=5,y=2\n2o\n3o$b3o\nb!\n"), 0)
	if err != nil {
		t.Fatalf("ParseRLE: %v", err)
	}
	expectCells(t, g, 5, 2,
		[2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0},
		[2]int{1, 1}, [2]int{2, 1}, [2]int{3, 1})
}

func TestParseRLENegativePaddingIsZero(t *testing.T) {
	g, err := ParseRLE(strings.NewReader("x = 1, y = 1\no!"), -4)
	if err != nil {
		t.Fatalf("ParseRLE: %v", err)
	}
	expectCells(t, g, 1, 1, [2]int{0, 0})
}

func TestParseRLEErrors(t *testing.T) {
	tests := map[string]string{
		"no header":        "#C only comments\n",
		"missing y":        "x = 3\nbo$obo!",
		"empty":            "",
		"bad x":            "x = three, y = 3\nbo!",
		"negative y":       "x = 3, y = -1\nbo!",
		"token without =":  "x = 3, y\n",
		"cell beyond area": "x = 2, y = 1\n3o!",
	}
	for name, src := range tests {
		if _, err := ParseRLE(strings.NewReader(src), 0); !errors.Is(err, ErrFormat) {
			t.Fatalf("%s: err=%v, expected ErrFormat", name, err)
		}
	}
}

func TestParseRLEZeroSizeIsInvalid(t *testing.T) {
	if _, err := ParseRLE(strings.NewReader("x = 0, y = 0\n!"), 0); !errors.Is(err, model.ErrInvalidDimensions) {
		t.Fatalf("err=%v, expected ErrInvalidDimensions", err)
	}
}
