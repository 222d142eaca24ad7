// Package color parses user supplied button colours into canonical hex.
package color

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalid is returned when a string is not #RGB, #RRGGBB or rgb(r, g, b)
// with every channel in 0..255.
var ErrInvalid = errors.New("invalid color")

var (
	hexPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbPattern = regexp.MustCompile(`(?i)^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
)

// Normalize converts s into lower-case #rrggbb form.
func Normalize(s string) (string, error) {
	if hexPattern.MatchString(s) {
		digits := strings.ToLower(s[1:])
		if len(digits) == 3 {
			var b strings.Builder
			b.WriteByte('#')
			for i := 0; i < 3; i++ {
				b.WriteByte(digits[i])
				b.WriteByte(digits[i])
			}
			return b.String(), nil
		}
		return "#" + digits, nil
	}

	m := rgbPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	out := "#"
	for _, part := range m[1:] {
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return "", fmt.Errorf("%w: channel %s out of range in %q", ErrInvalid, part, s)
		}
		out += fmt.Sprintf("%02x", n)
	}
	return out, nil
}

// Valid reports whether s is an accepted colour string.
func Valid(s string) bool {
	_, err := Normalize(s)
	return err == nil
}

// OrDefault normalises s, returning fallback when s is not a valid colour.
func OrDefault(s, fallback string) string {
	if n, err := Normalize(s); err == nil {
		return n
	}
	return fallback
}
