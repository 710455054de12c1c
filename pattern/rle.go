package pattern

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const (
	rleAlive      = 'o'
	rleEndOfRow   = "$"
	rleTerminator = "!"
)

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// ParseRLE reads an RLE pattern and places it on a new grid with padding dead
// cells on every side. Header lines are scanned until both x and y are known;
// lines containing '#' are comments. Every '$'-separated body segment fills one
// row, and only 'o' cells are marked alive.
func ParseRLE(r io.Reader, padding int) (*model.Grid, error) {
	padding = max(padding, 0)
	br := bufio.NewReader(r)

	cols, rows, err := readRLEHeader(br)
	if err != nil {
		return nil, err
	}

	grid, err := model.NewGrid(cols+2*padding, rows+2*padding)
	if err != nil {
		return nil, errors.Wrap(err, "[ParseRLE] failed to allocate grid")
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return nil, errors.Wrap(err, "[ParseRLE] failed to read body")
	}
	body := strings.ToLower(string(rest))
	if end := strings.Index(body, rleTerminator); end >= 0 {
		body = body[:end]
	}

	rowNo := padding
	for _, encodedLine := range strings.Split(body, rleEndOfRow) {
		decodedLine := lineBreaks.Replace(Decode(encodedLine))
		colNo := padding
		for _, c := range decodedLine {
			if c == rleAlive {
				if err := grid.Set(colNo, rowNo, true); err != nil {
					return nil, errors.Wrapf(ErrFormat, "[ParseRLE] cell outside declared %dx%d area: %v", cols, rows, err)
				}
			}
			colNo++
		}
		rowNo++
	}
	return grid, nil
}

// readRLEHeader consumes lines until both the x and y dimensions have been seen
func readRLEHeader(br *bufio.Reader) (cols, rows int, err error) {
	var haveX, haveY bool
	for !haveX || !haveY {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return 0, 0, errors.Wrap(readErr, "[readRLEHeader] failed to read header")
		}
		if line == "" && readErr == io.EOF {
			return 0, 0, errors.Wrap(ErrFormat, "[readRLEHeader] end of input before x and y dimensions")
		}

		if !strings.Contains(line, "#") {
			for _, token := range strings.Split(line, ",") {
				key, value, ok, tokenErr := splitHeaderToken(token)
				if tokenErr != nil {
					return 0, 0, tokenErr
				}
				if !ok {
					continue
				}
				switch key {
				case "x":
					if cols, err = parseDimension(key, value); err != nil {
						return 0, 0, err
					}
					haveX = true
				case "y":
					if rows, err = parseDimension(key, value); err != nil {
						return 0, 0, err
					}
					haveY = true
				}
			}
		}

		if readErr == io.EOF && (!haveX || !haveY) {
			return 0, 0, errors.Wrap(ErrFormat, "[readRLEHeader] end of input before x and y dimensions")
		}
	}
	return cols, rows, nil
}

// splitHeaderToken splits a "key = value" token with all whitespace removed.
// Blank tokens report ok=false.
func splitHeaderToken(token string) (key, value string, ok bool, err error) {
	token = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, token)
	if token == "" {
		return "", "", false, nil
	}

	key, value, found := strings.Cut(token, "=")
	if !found || key == "" {
		return "", "", false, errors.Wrapf(ErrFormat, "[splitHeaderToken] malformed header token %q", token)
	}
	return key, value, true, nil
}

func parseDimension(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, errors.Wrapf(ErrFormat, "[parseDimension] invalid %s=%q", key, value)
	}
	return n, nil
}
