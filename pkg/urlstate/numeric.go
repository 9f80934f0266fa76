// Package urlstate implements the shareable view-string protocol: a
// compact, stable key-value vocabulary mapping viewer state to and from
// URL query parameters.
//
// Each slice of the viewer state owns a disjoint set of parameter keys
// and an independent (encode, decode) function pair. Encoding elides
// fields equal to their defaults; decoding treats absence as "use
// default" and silently ignores malformed or out-of-schema values, since
// shared links routinely predate or postdate dataset changes. The key
// vocabulary is the one bit-exact external contract of the viewer:
// previously shared links must keep working.
package urlstate

import (
	"math"
	"strconv"
)

// formatFloat renders a number with fixed 3-decimal precision, the wire
// precision of every numeric field in the protocol.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// parseFloat parses a wire number. NaN and infinities are never encoded
// and are rejected on decode.
func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFlag parses the "0"/"1" boolean wire form.
func parseFlag(s string) (bool, bool) {
	switch s {
	case "0":
		return false, true
	case "1":
		return true, true
	}
	return false, false
}

func formatFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
