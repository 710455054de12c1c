package engine

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/pattern"
	"github.com/sheikhrachel/go-life/utils"
)

func newEngine(t *testing.T, cols, rows int, parallel bool) *Engine {
	t.Helper()
	config := utils.DefaultConfig()
	config.Width, config.Height = cols, rows
	config.UseParallel = parallel
	e, err := New(config)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width = 0
	if _, err := New(config); !errors.Is(err, model.ErrInvalidDimensions) {
		t.Fatalf("err=%v, expected ErrInvalidDimensions", err)
	}
}

func TestBlinkerThroughEngine(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		e := newEngine(t, 5, 5, parallel)
		for x := 1; x <= 3; x++ {
			if err := e.SetCell(x, 2, true); err != nil {
				t.Fatal(err)
			}
		}
		start := e.Snapshot()

		e.Step()
		if e.Generation() != 1 {
			t.Fatalf("generation=%d, expected 1", e.Generation())
		}
		for y := 1; y <= 3; y++ {
			if alive, _ := e.GetCell(2, y); !alive {
				t.Fatalf("parallel=%v: (2,%d) dead after one step", parallel, y)
			}
		}
		if start.Generation() != 0 || !start.Alive(1, 2) {
			t.Fatalf("snapshot changed after Step")
		}

		e.Step()
		if !e.Snapshot().Equal(start) {
			t.Fatalf("parallel=%v: blinker did not return after two steps", parallel)
		}
	}
}

func TestInitializeResetsGeneration(t *testing.T) {
	e := newEngine(t, 4, 4, false)
	e.Step()
	e.Step()
	if err := e.Initialize(8, 6); err != nil {
		t.Fatal(err)
	}
	if e.Generation() != 0 {
		t.Fatalf("generation=%d, expected 0", e.Generation())
	}
	if cols, rows := e.Dimensions(); cols != 8 || rows != 6 {
		t.Fatalf("dimensions=%dx%d, expected 8x6", cols, rows)
	}
	if err := e.Initialize(-1, 6); !errors.Is(err, model.ErrInvalidDimensions) {
		t.Fatalf("err=%v, expected ErrInvalidDimensions", err)
	}
	if cols, rows := e.Dimensions(); cols != 8 || rows != 6 {
		t.Fatalf("failed Initialize changed dimensions to %dx%d", cols, rows)
	}
}

func TestCellAccessOutOfRange(t *testing.T) {
	e := newEngine(t, 3, 3, false)
	if err := e.SetCell(3, 0, true); !errors.Is(err, model.ErrOutOfRange) {
		t.Fatalf("SetCell err=%v, expected ErrOutOfRange", err)
	}
	if _, err := e.GetCell(0, -1); !errors.Is(err, model.ErrOutOfRange) {
		t.Fatalf("GetCell err=%v, expected ErrOutOfRange", err)
	}
	if _, err := e.ToggleCell(5, 5); !errors.Is(err, model.ErrOutOfRange) {
		t.Fatalf("ToggleCell err=%v, expected ErrOutOfRange", err)
	}

	alive, err := e.ToggleCell(1, 1)
	if err != nil || !alive {
		t.Fatalf("ToggleCell=%v,%v expected true,nil", alive, err)
	}
	if alive, _ = e.ToggleCell(1, 1); alive {
		t.Fatalf("second toggle left cell alive")
	}
}

func TestLoadAndFailedLoadKeepsGrid(t *testing.T) {
	dir := t.TempDir()
	glider := filepath.Join(dir, "glider.rle")
	if err := os.WriteFile(glider, []byte("x = 3, y = 3\nbo$2bo$3o!\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newEngine(t, 30, 30, false)
	e.Step()
	if err := e.Load(glider, pattern.DefaultPadding); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cols, rows := e.Dimensions(); cols != 13 || rows != 13 {
		t.Fatalf("dimensions=%dx%d, expected 13x13", cols, rows)
	}
	if e.Generation() != 0 {
		t.Fatalf("generation=%d after load, expected 0", e.Generation())
	}
	before := e.Snapshot()

	if err := e.Load(filepath.Join(dir, "missing.rle"), 5); !errors.Is(err, pattern.ErrFileNotFound) {
		t.Fatalf("err=%v, expected ErrFileNotFound", err)
	}
	if err := e.LoadFormat(pattern.LIF, glider, 5); !errors.Is(err, pattern.ErrUnsupportedFormat) {
		t.Fatalf("err=%v, expected ErrUnsupportedFormat", err)
	}
	broken := filepath.Join(dir, "broken.rle")
	if err := os.WriteFile(broken, []byte("x = 1, y = 1\n5o!\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.Load(broken, 0); !errors.Is(err, pattern.ErrFormat) {
		t.Fatalf("err=%v, expected ErrFormat", err)
	}

	if !e.Snapshot().Equal(before) {
		t.Fatalf("failed load changed the grid")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	e := newEngine(t, 10, 8, false)
	e.Randomize(0.4)
	e.Step()
	want := e.Snapshot()

	path := filepath.Join(t.TempDir(), "state.cells")
	if err := e.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := e.Load(path, 0); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !e.Snapshot().Equal(want) {
		t.Fatalf("reloaded grid differs from saved grid")
	}
}

func TestObserveDetectsStillLife(t *testing.T) {
	e := newEngine(t, 4, 4, false)
	for _, c := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		if err := e.SetCell(c[0], c[1], true); err != nil {
			t.Fatal(err)
		}
	}
	stagnant := false
	for range 4 {
		stagnant = e.Observe()
		e.Step()
	}
	if !stagnant {
		t.Fatalf("block not reported stagnant")
	}
}

func TestConcurrentReadersDuringSteps(t *testing.T) {
	e := newEngine(t, 32, 32, true)
	e.Randomize(0.3)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				snap := e.Snapshot()
				if cols, rows := snap.Dimensions(); cols != 32 || rows != 32 {
					t.Errorf("snapshot dimensions %dx%d", cols, rows)
					return
				}
				_, _ = e.GetCell(31, 31)
			}
		}()
	}
	for range 50 {
		e.Step()
	}
	wg.Wait()

	if e.Generation() != 50 {
		t.Fatalf("generation=%d, expected 50", e.Generation())
	}
}
