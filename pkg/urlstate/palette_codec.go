package urlstate

import (
	"image/color"
	"strings"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/colorramp"
)

// Palette wire format: "palette-key=<id>" when the live palette exactly
// equals a registered palette, otherwise "palette=<hex>-<hex>-...". On
// decode palette-key takes precedence when both are present; a literal
// shorter than the palette size is backfilled from the default palette's
// trailing entries.

// EncodePaletteLiteral renders a custom palette as dash-joined hex.
func EncodePaletteLiteral(colors []color.RGBA) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = colorramp.FormatHex(c)
	}
	return strings.Join(parts, "-")
}

// DecodePaletteLiteral parses a dash-joined hex palette and backfills it
// to full size from the default palette. Any invalid color invalidates
// the whole literal.
func DecodePaletteLiteral(s string) ([]color.RGBA, bool) {
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, "-")
	if len(parts) > colorramp.PaletteSize {
		parts = parts[:colorramp.PaletteSize]
	}
	colors := make([]color.RGBA, 0, colorramp.PaletteSize)
	for _, p := range parts {
		c, err := colorramp.ParseHex(p)
		if err != nil {
			return nil, false
		}
		colors = append(colors, c)
	}
	def := colorramp.DefaultPalette()
	for i := len(colors); i < colorramp.PaletteSize; i++ {
		colors = append(colors, def.Colors[i])
	}
	return colors, true
}
