package utils

import (
	"strconv"
	"strings"
	"time"
)

const (
	DefaultWidth  = 30
	DefaultHeight = 30
)

// ParseDimensions converts user-entered width and height text into grid
// dimensions. If either value fails to parse or is not positive, both fall
// back to 30x30.
func ParseDimensions(width, height string) (cols, rows int) {
	cols, errW := strconv.Atoi(strings.TrimSpace(width))
	rows, errH := strconv.Atoi(strings.TrimSpace(height))
	if errW != nil || errH != nil || cols <= 0 || rows <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return cols, rows
}

// Speed names an animation interval preset
type Speed string

const (
	SpeedFastest Speed = "fastest"
	SpeedFast    Speed = "fast"
	SpeedNormal  Speed = "normal"
	SpeedSlow    Speed = "slow"
	SpeedSlowest Speed = "slowest"
)

// SpeedPresets maps each preset to the delay between generations
var SpeedPresets = map[Speed]time.Duration{
	SpeedFastest: 25 * time.Millisecond,
	SpeedFast:    150 * time.Millisecond,
	SpeedNormal:  500 * time.Millisecond,
	SpeedSlow:    time.Second,
	SpeedSlowest: 2 * time.Second,
}

// SpeedPreset looks up a preset by case-insensitive name
func SpeedPreset(name string) (time.Duration, bool) {
	d, ok := SpeedPresets[Speed(strings.ToLower(strings.TrimSpace(name)))]
	return d, ok
}
