// Package dateutil formats the last-updated dates shown on rendered pages.
//
// Formats use tokens instead of Go layouts: YYYY, YY, MMMM, MMM, MM, M, DD, D.
// Text inside [brackets] is copied verbatim, and any other character is kept
// as a literal.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength limits format string length.
const MaxFormatLength = 50

// DefaultFormat is used when "auto" is specified without a format.
const DefaultFormat = "YYYY-MM-DD"

// Presets are named shortcuts for common formats, matched case-insensitively.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// tokens are tried in order, so longer tokens come first.
var tokens = []struct {
	name   string
	render func(time.Time) string
}{
	{"YYYY", func(t time.Time) string { return fmt.Sprintf("%04d", t.Year()) }},
	{"MMMM", func(t time.Time) string { return t.Month().String() }},
	{"MMM", func(t time.Time) string { return t.Month().String()[:3] }},
	{"YY", func(t time.Time) string { return fmt.Sprintf("%02d", t.Year()%100) }},
	{"MM", func(t time.Time) string { return fmt.Sprintf("%02d", int(t.Month())) }},
	{"DD", func(t time.Time) string { return fmt.Sprintf("%02d", t.Day()) }},
	{"M", func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{"D", func(t time.Time) string { return strconv.Itoa(t.Day()) }},
}

// segment is either literal text or a token renderer.
type segment struct {
	literal string
	render  func(time.Time) string
}

// compile splits format into literal and token segments.
func compile(format string) ([]segment, error) {
	if format == "" {
		return nil, fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxFormatLength {
		return nil, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var segs []segment
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return nil, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			lit.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, tok := range tokens {
			if strings.HasPrefix(format[i:], tok.name) {
				flush()
				segs = append(segs, segment{render: tok.render})
				i += len(tok.name)
				matched = true
				break
			}
		}
		if !matched {
			lit.WriteByte(format[i])
			i++
		}
	}
	flush()
	return segs, nil
}

// Validate reports whether format compiles.
func Validate(format string) error {
	_, err := compile(format)
	return err
}

// Format renders t using a token format.
func Format(t time.Time, format string) (string, error) {
	segs, err := compile(format)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, s := range segs {
		if s.render != nil {
			b.WriteString(s.render(t))
		} else {
			b.WriteString(s.literal)
		}
	}
	return b.String(), nil
}

// ResolveDate expands "auto" values against now:
//   - "auto" renders now with DefaultFormat
//   - "auto:FORMAT" renders now with FORMAT or a preset name
//   - anything else, including "", is returned unchanged
func ResolveDate(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}
	if lower == "auto" {
		return Format(now, DefaultFormat)
	}

	format, ok := strings.CutPrefix(value, value[:len("auto")]+":")
	if !ok {
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	}
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}
	return Format(now, format)
}
