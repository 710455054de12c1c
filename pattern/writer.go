package pattern

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const (
	cellsAliveMark = 'O'
	rleDeadMark    = 'b'
	rleLineWidth   = 70
)

// WriteCells writes the grid in plaintext form: a name header, then one line
// per row with '.' for dead and 'O' for alive cells.
func WriteCells(w io.Writer, g *model.Grid, name string) error {
	bw := bufio.NewWriter(w)
	if name != "" {
		fmt.Fprintf(bw, "!Name: %s\n", name)
	}

	cols, rows := g.Dimensions()
	line := make([]byte, cols)
	for y := range rows {
		for x := range cols {
			line[x] = cellsDead
			if g.Alive(x, y) {
				line[x] = cellsAliveMark
			}
		}
		bw.Write(line)
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "[WriteCells] failed to flush")
}

// WriteRLE writes the grid as an RLE pattern with a B3/S23 header. Rows are
// run-length encoded, joined by '$' and terminated by '!', with trailing dead
// cells of each row omitted. Output lines wrap at 70 characters.
func WriteRLE(w io.Writer, g *model.Grid, name string) error {
	bw := bufio.NewWriter(w)
	if name != "" {
		fmt.Fprintf(bw, "#N %s\n", name)
	}

	cols, rows := g.Dimensions()
	fmt.Fprintf(bw, "x = %d, y = %d, rule = B3/S23\n", cols, rows)

	var body strings.Builder
	row := make([]byte, cols)
	for y := range rows {
		for x := range cols {
			row[x] = rleDeadMark
			if g.Alive(x, y) {
				row[x] = rleAlive
			}
		}

		trimmed := strings.TrimRight(string(row), string(rleDeadMark))
		if trimmed != "" {
			encoded, err := Encode(trimmed)
			if err != nil {
				return errors.Wrapf(err, "[WriteRLE] row %d", y)
			}
			body.WriteString(compactRuns(encoded))
		}
		if y < rows-1 {
			body.WriteString(rleEndOfRow)
		}
	}
	body.WriteString(rleTerminator)

	for _, line := range wrapLines(body.String(), rleLineWidth) {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "[WriteRLE] failed to flush")
}

// compactRuns drops the count from single-character runs ("1o" becomes "o")
func compactRuns(encoded string) string {
	var sb strings.Builder
	for i := 0; i < len(encoded); i++ {
		if encoded[i] == '1' && i+1 < len(encoded) && !isDigit(encoded[i+1]) && (i == 0 || !isDigit(encoded[i-1])) {
			continue
		}
		sb.WriteByte(encoded[i])
	}
	return sb.String()
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// wrapLines splits s into lines of at most width bytes without breaking a run
// count away from its character.
func wrapLines(s string, width int) []string {
	var lines []string
	for len(s) > width {
		cut := width
		for cut > 0 && isDigit(s[cut-1]) {
			cut--
		}
		if cut == 0 {
			cut = width
		}
		lines = append(lines, s[:cut])
		s = s[cut:]
	}
	return append(lines, s)
}

// Save writes the grid to path in the format implied by its extension
func Save(path string, g *model.Grid) error {
	var write func(io.Writer, *model.Grid, string) error
	switch format := FormatFromPath(path); format {
	case RLE:
		write = WriteRLE
	case Cells:
		write = WriteCells
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "[Save] %s format for %s", format, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[Save] failed to create file: %+v", path)
	}
	if err = write(f, g, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "[Save] failed to close file: %+v", path)
}
