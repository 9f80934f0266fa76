// Package colorramp provides the color ramps and categorical palettes
// used to map feature values to colors, plus the hex color codec shared
// by the view-string protocol.
package colorramp

import (
	"image/color"
)

// DefaultRampKey is the ramp applied when none is selected.
const DefaultRampKey = "viridis"

// Ramp is a linear-interpolation color ramp identified by a stable key.
type Ramp struct {
	Key   string
	Name  string
	Stops []color.RGBA
}

// At returns the ramp color at position t in [0, 1].
func (r Ramp) At(t float64) color.RGBA {
	if len(r.Stops) == 0 {
		return color.RGBA{A: 255}
	}
	if t <= 0 {
		return r.Stops[0]
	}
	if t >= 1 {
		return r.Stops[len(r.Stops)-1]
	}

	idx := t * float64(len(r.Stops)-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= len(r.Stops) {
		upper = len(r.Stops) - 1
	}

	frac := idx - float64(lower)
	return lerp(r.Stops[lower], r.Stops[upper], frac)
}

// Reversed returns a copy of the ramp with its stop order flipped.
func (r Ramp) Reversed() Ramp {
	stops := make([]color.RGBA, len(r.Stops))
	for i, c := range r.Stops {
		stops[len(stops)-1-i] = c
	}
	return Ramp{Key: r.Key, Name: r.Name, Stops: stops}
}

func lerp(c1, c2 color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c1.R) + t*(float64(c2.R)-float64(c1.R))),
		G: uint8(float64(c1.G) + t*(float64(c2.G)-float64(c1.G))),
		B: uint8(float64(c1.B) + t*(float64(c2.B)-float64(c1.B))),
		A: 255,
	}
}

// ramps holds the registry in display order.
var ramps = []Ramp{
	{Key: "viridis", Name: "Viridis", Stops: []color.RGBA{
		{68, 1, 84, 255},
		{72, 35, 116, 255},
		{64, 67, 135, 255},
		{52, 94, 141, 255},
		{41, 120, 142, 255},
		{32, 144, 140, 255},
		{34, 167, 132, 255},
		{68, 190, 112, 255},
		{121, 209, 81, 255},
		{189, 222, 38, 255},
		{253, 231, 37, 255},
	}},
	{Key: "plasma", Name: "Plasma", Stops: []color.RGBA{
		{13, 8, 135, 255},
		{75, 3, 161, 255},
		{125, 3, 168, 255},
		{168, 34, 150, 255},
		{203, 70, 121, 255},
		{229, 107, 93, 255},
		{248, 148, 65, 255},
		{253, 195, 40, 255},
		{240, 249, 33, 255},
	}},
	{Key: "inferno", Name: "Inferno", Stops: []color.RGBA{
		{0, 0, 4, 255},
		{40, 11, 84, 255},
		{101, 21, 110, 255},
		{159, 42, 99, 255},
		{212, 72, 66, 255},
		{245, 125, 21, 255},
		{250, 193, 39, 255},
		{252, 255, 164, 255},
	}},
	{Key: "magma", Name: "Magma", Stops: []color.RGBA{
		{0, 0, 4, 255},
		{28, 16, 68, 255},
		{79, 18, 123, 255},
		{129, 37, 129, 255},
		{181, 54, 122, 255},
		{229, 80, 100, 255},
		{251, 135, 97, 255},
		{254, 194, 135, 255},
		{252, 253, 191, 255},
	}},
	{Key: "cool", Name: "Cool", Stops: []color.RGBA{
		{0, 255, 255, 255},
		{128, 128, 255, 255},
		{255, 0, 255, 255},
	}},
	{Key: "warm", Name: "Warm", Stops: []color.RGBA{
		{255, 0, 0, 255},
		{255, 128, 0, 255},
		{255, 255, 0, 255},
	}},
	{Key: "esri", Name: "Esri Blue-Red", Stops: []color.RGBA{
		{5, 113, 176, 255},
		{146, 197, 222, 255},
		{247, 247, 247, 255},
		{244, 165, 130, 255},
		{202, 0, 32, 255},
	}},
}

// Get returns the ramp registered under key.
func Get(key string) (Ramp, bool) {
	for _, r := range ramps {
		if r.Key == key {
			return r, true
		}
	}
	return Ramp{}, false
}

// Keys returns all registered ramp keys in display order.
func Keys() []string {
	keys := make([]string, len(ramps))
	for i, r := range ramps {
		keys[i] = r.Key
	}
	return keys
}
