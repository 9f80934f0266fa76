package colorramp

import "image/color"

// PaletteSize is the fixed category capacity of the viewer. Categorical
// palettes always carry exactly this many colors, and categorical
// features are clamped to it.
const PaletteSize = 12

// DefaultPaletteKey is the palette applied when none is selected.
const DefaultPaletteKey = "adobe"

// Palette is an ordered list of PaletteSize colors for rendering
// categorical features, identified by a stable key.
type Palette struct {
	Key    string
	Name   string
	Colors []color.RGBA
}

var palettes = []Palette{
	{Key: "adobe", Name: "Adobe", Colors: []color.RGBA{
		{118, 190, 210, 255},
		{8, 118, 144, 255},
		{255, 212, 93, 255},
		{240, 133, 34, 255},
		{157, 216, 102, 255},
		{45, 135, 66, 255},
		{244, 124, 124, 255},
		{228, 48, 52, 255},
		{182, 151, 213, 255},
		{108, 56, 161, 255},
		{234, 144, 194, 255},
		{201, 58, 139, 255},
	}},
	{Key: "paul-tol", Name: "Paul Tol", Colors: []color.RGBA{
		{51, 34, 136, 255},
		{136, 204, 238, 255},
		{68, 170, 153, 255},
		{17, 119, 51, 255},
		{153, 153, 51, 255},
		{221, 204, 119, 255},
		{204, 102, 119, 255},
		{136, 34, 85, 255},
		{170, 68, 153, 255},
		{221, 221, 221, 255},
		{102, 102, 102, 255},
		{0, 0, 0, 255},
	}},
	{Key: "dark", Name: "Dark", Colors: []color.RGBA{
		{27, 158, 119, 255},
		{217, 95, 2, 255},
		{117, 112, 179, 255},
		{231, 41, 138, 255},
		{102, 166, 30, 255},
		{230, 171, 2, 255},
		{166, 118, 29, 255},
		{102, 102, 102, 255},
		{57, 59, 121, 255},
		{140, 109, 49, 255},
		{132, 60, 57, 255},
		{123, 65, 115, 255},
	}},
}

// GetPalette returns the palette registered under key.
func GetPalette(key string) (Palette, bool) {
	for _, p := range palettes {
		if p.Key == key {
			return p, true
		}
	}
	return Palette{}, false
}

// DefaultPalette returns the default categorical palette.
func DefaultPalette() Palette {
	p, _ := GetPalette(DefaultPaletteKey)
	return p
}

// PaletteKeys returns all registered palette keys in display order.
func PaletteKeys() []string {
	keys := make([]string, len(palettes))
	for i, p := range palettes {
		keys[i] = p.Key
	}
	return keys
}

// MatchPalette returns the key of the registered palette whose colors
// exactly equal the given list, or "" when the list is custom.
func MatchPalette(colors []color.RGBA) string {
	for _, p := range palettes {
		if equalColors(p.Colors, colors) {
			return p.Key
		}
	}
	return ""
}

func equalColors(a, b []color.RGBA) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
