package urlstate

import (
	"strings"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/colorramp"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/viewerstate"
)

// Channel wire format, one parameter per channel index (c0, c1, ...):
//
//	ven:<0|1>,col:<hex[+alpha]>,rmp:<min>:<max>,rng:<dataMin>:<dataMax>
//
// The color's alpha byte carries the channel opacity; it is omitted when
// fully opaque. Sub-fields equal to the channel's default are elided, and
// unknown sub-fields are ignored on decode.

// EncodeChannel renders the sub-fields of cs that differ from def, or ""
// when none do.
func EncodeChannel(cs, def viewerstate.ChannelSettings) string {
	var parts []string
	if cs.Visible != def.Visible {
		parts = append(parts, "ven:"+formatFlag(cs.Visible))
	}
	if cs.Color != def.Color || cs.Opacity != def.Opacity {
		c := cs.Color
		c.A = opacityByte(cs.Opacity)
		parts = append(parts, "col:"+colorramp.FormatHex(c))
	}
	if cs.Min != def.Min || cs.Max != def.Max {
		parts = append(parts, "rmp:"+formatFloat(cs.Min)+":"+formatFloat(cs.Max))
	}
	if cs.DataMin != def.DataMin || cs.DataMax != def.DataMax {
		parts = append(parts, "rng:"+formatFloat(cs.DataMin)+":"+formatFloat(cs.DataMax))
	}
	return strings.Join(parts, ",")
}

// DecodeChannel applies a channel value string on top of base. Malformed
// sub-fields leave their base value untouched.
func DecodeChannel(s string, base viewerstate.ChannelSettings) viewerstate.ChannelSettings {
	out := base
	for _, part := range strings.Split(s, ",") {
		tag, rest, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		switch tag {
		case "ven":
			if v, ok := parseFlag(rest); ok {
				out.Visible = v
			}
		case "col":
			if c, err := colorramp.ParseHex(rest); err == nil {
				out.Opacity = float64(c.A) / 255
				c.A = 0xff
				out.Color = c
			}
		case "rmp":
			if min, max, ok := parsePair(rest); ok {
				out.Min, out.Max = min, max
			}
		case "rng":
			if min, max, ok := parsePair(rest); ok {
				out.DataMin, out.DataMax = min, max
			}
		}
	}
	return out
}

func parsePair(s string) (float64, float64, bool) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, false
	}
	min, ok1 := parseFloat(a)
	max, ok2 := parseFloat(b)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	if min > max {
		min, max = max, min
	}
	return min, max, true
}

func opacityByte(opacity float64) uint8 {
	if opacity <= 0 {
		return 0
	}
	if opacity >= 1 {
		return 0xff
	}
	return uint8(opacity*255 + 0.5)
}
