package urlstate

import (
	"strings"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/colorramp"
)

// Color ramp wire format: the ramp key, suffixed "!" when reversed.

// EncodeRamp renders a ramp key with its direction suffix.
func EncodeRamp(key string, reversed bool) string {
	if reversed {
		return key + "!"
	}
	return key
}

// DecodeRamp parses a ramp token. Unknown ramp keys are rejected.
func DecodeRamp(s string) (key string, reversed bool, ok bool) {
	key = strings.TrimSuffix(s, "!")
	reversed = len(key) != len(s)
	if _, known := colorramp.Get(key); !known {
		return "", false, false
	}
	return key, reversed, true
}
