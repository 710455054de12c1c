package pattern

import "github.com/pkg/errors"

var (
	// ErrFileNotFound is returned when the pattern file does not exist
	ErrFileNotFound = errors.New("pattern file not found")
	// ErrFormat is returned for malformed pattern text
	ErrFormat = errors.New("malformed pattern")
	// ErrUnsupportedFormat is returned for recognized-but-unimplemented or unknown formats
	ErrUnsupportedFormat = errors.New("unsupported pattern format")
)
