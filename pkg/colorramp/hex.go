package colorramp

import (
	"fmt"
	"image/color"
	"strings"
)

// ParseHex parses a hex color of the form "rrggbb" or "rrggbbaa", with an
// optional leading '#'.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("hex color %q: want 6 or 8 digits", s)
	}
	var bytes [4]byte
	bytes[3] = 0xff
	for i := 0; i < len(s)/2; i++ {
		hi, ok1 := hexDigit(s[2*i])
		lo, ok2 := hexDigit(s[2*i+1])
		if !ok1 || !ok2 {
			return color.RGBA{}, fmt.Errorf("hex color %q: invalid digit", s)
		}
		bytes[i] = hi<<4 | lo
	}
	return color.RGBA{R: bytes[0], G: bytes[1], B: bytes[2], A: bytes[3]}, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// FormatHex renders a color as "rrggbb", appending "aa" only when the
// alpha channel is not fully opaque.
func FormatHex(c color.RGBA) string {
	if c.A != 0xff {
		return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}
