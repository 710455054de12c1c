package pattern

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// MaxRunLength caps a single decoded run so a corrupt count cannot exhaust memory
const MaxRunLength = 1 << 16

// Decode expands run-length text: a decimal count repeats the character that
// follows it, a character without a count is emitted once, and a count of 0
// drops the character. Digits left dangling at the end of the input are
// discarded. Counts above MaxRunLength are clamped to it.
func Decode(s string) string {
	var (
		sb          strings.Builder
		coefficient strings.Builder
	)

	for _, current := range s {
		if current >= '0' && current <= '9' {
			coefficient.WriteRune(current)
			continue
		}
		if coefficient.Len() == 0 {
			sb.WriteRune(current)
			continue
		}

		sb.WriteString(strings.Repeat(string(current), runCount(coefficient.String())))
		coefficient.Reset()
	}
	return sb.String()
}

func runCount(digits string) int {
	n, err := strconv.Atoi(digits)
	// Atoi only fails here on overflow
	if err != nil || n > MaxRunLength {
		return MaxRunLength
	}
	return n
}

// Encode compresses s into <count><char> runs with no separators. Decode(Encode(s))
// returns s for any input that contains no digit characters.
func Encode(s string) (string, error) {
	if s == "" {
		return "", errors.Wrap(ErrFormat, "[Encode] empty input")
	}

	var sb strings.Builder
	current, size := utf8.DecodeRuneInString(s)
	count := 1
	for _, r := range s[size:] {
		if r == current {
			count++
			continue
		}
		writeRun(&sb, count, current)
		current = r
		count = 1
	}
	writeRun(&sb, count, current)
	return sb.String(), nil
}

func writeRun(sb *strings.Builder, count int, r rune) {
	sb.WriteString(strconv.Itoa(count))
	sb.WriteRune(r)
}
