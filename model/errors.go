package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions is returned when a grid is requested with a non-positive width or height
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrOutOfRange is returned when a cell coordinate falls outside the grid
	ErrOutOfRange = errors.New("cell coordinate out of range")
)
