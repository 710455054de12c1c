package pattern

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// Format identifies a pattern file encoding
type Format int

const (
	Unknown Format = iota
	RLE
	Cells
	LIF
)

// DefaultPadding is the dead-cell margin placed around loaded patterns
const DefaultPadding = 5

func (f Format) String() string {
	switch f {
	case RLE:
		return "rle"
	case Cells:
		return "cells"
	case LIF:
		return "lif"
	default:
		return "unknown"
	}
}

// FormatFromPath picks a Format from the file extension
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rle":
		return RLE
	case ".cells":
		return Cells
	case ".lif", ".life":
		return LIF
	default:
		return Unknown
	}
}

// Parse loads the pattern file at path into a new grid. Negative padding is treated as 0.
func Parse(format Format, path string, padding int) (*model.Grid, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFileNotFound, "[Parse] %s", path)
		}
		return nil, errors.Wrapf(err, "[Parse] failed to stat file: %+v", path)
	}

	var parse func(io.Reader, int) (*model.Grid, error)
	switch format {
	case RLE:
		parse = ParseRLE
	case Cells:
		parse = ParseCells
	default:
		// Life 1.05/1.06 files are recognized but not decoded.
		return nil, errors.Wrapf(ErrUnsupportedFormat, "[Parse] %s format for %s", format, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[Parse] failed to open file: %+v", path)
	}
	defer f.Close()

	grid, err := parse(f, padding)
	if err != nil {
		return nil, errors.Wrapf(err, "[Parse] %s", path)
	}
	return grid, nil
}

// Load parses the pattern at path using the format implied by its extension
func Load(path string, padding int) (*model.Grid, error) {
	return Parse(FormatFromPath(path), path, padding)
}
