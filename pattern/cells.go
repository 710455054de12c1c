package pattern

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const (
	cellsComment = "!"
	cellsDead    = '.'
)

// ParseCells reads a plaintext pattern and places it on a new grid with padding
// dead cells on every side. Lines containing '!' are metadata and skipped; in
// every other line '.' is dead and any other character is alive.
func ParseCells(r io.Reader, padding int) (*model.Grid, error) {
	padding = max(padding, 0)

	var (
		lines     []string
		maxLength int
		scanner   = bufio.NewScanner(r)
	)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.Contains(line, cellsComment) {
			continue
		}
		maxLength = max(maxLength, len([]rune(line)))
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[ParseCells] failed to read pattern")
	}

	grid, err := model.NewGrid(maxLength+2*padding, len(lines)+2*padding)
	if err != nil {
		return nil, errors.Wrap(err, "[ParseCells] empty pattern")
	}

	for rowNum, line := range lines {
		colNum := 0
		for _, c := range line {
			if c != cellsDead {
				// Always in range: the grid was sized from these lines.
				_ = grid.Set(colNum+padding, rowNum+padding, true)
			}
			colNum++
		}
	}
	return grid, nil
}
