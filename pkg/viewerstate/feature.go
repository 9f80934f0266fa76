package viewerstate

import (
	"image/color"
	"math"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/colorramp"
)

// SetFeatureKey selects the feature used for colorizing. The key must
// name a feature of the current dataset.
func (s *Store) SetFeatureKey(key string) error {
	return s.mutate(func(st *ViewerState) error {
		if st.Dataset == nil {
			return validationErrorf("feature", "no dataset loaded")
		}
		if !st.Dataset.HasFeatureKey(key) {
			return validationErrorf("feature", "unknown feature key %q", key)
		}
		st.FeatureKey = key
		return nil
	})
}

// SetColorRampKey selects a registered color ramp.
func (s *Store) SetColorRampKey(key string) error {
	return s.mutate(func(st *ViewerState) error {
		if _, ok := colorramp.Get(key); !ok {
			return validationErrorf("color ramp", "unknown ramp key %q", key)
		}
		st.ColorRampKey = key
		return nil
	})
}

// SetColorRampReversed flips the ramp direction.
func (s *Store) SetColorRampReversed(reversed bool) {
	_ = s.mutate(func(st *ViewerState) error {
		st.ColorRampReversed = reversed
		return nil
	})
}

// SetColorRampRange sets the value range mapped onto the ramp. The
// bounds may arrive in either order and are stored sorted; non-finite
// values are rejected.
func (s *Store) SetColorRampRange(a, b float64) error {
	return s.mutate(func(st *ViewerState) error {
		if !isFinite(a) || !isFinite(b) {
			return validationErrorf("color ramp range", "bounds must be finite, got [%v, %v]", a, b)
		}
		st.ColorRampMin = math.Min(a, b)
		st.ColorRampMax = math.Max(a, b)
		return nil
	})
}

// SetKeepColorRampRange sets the sticky flag that suppresses automatic
// range resets when the feature or its threshold changes.
func (s *Store) SetKeepColorRampRange(keep bool) {
	_ = s.mutate(func(st *ViewerState) error {
		st.KeepColorRampRange = keep
		return nil
	})
}

// SetCategoricalPaletteKey selects a registered categorical palette and
// copies its colors into the live palette.
func (s *Store) SetCategoricalPaletteKey(key string) error {
	return s.mutate(func(st *ViewerState) error {
		p, ok := colorramp.GetPalette(key)
		if !ok {
			return validationErrorf("palette", "unknown palette key %q", key)
		}
		st.PaletteKey = key
		st.Palette = append([]color.RGBA(nil), p.Colors...)
		return nil
	})
}

// SetCategoricalPalette installs a custom palette. Shorter lists are
// backfilled from the default palette's trailing entries and longer ones
// truncated, so the live palette always has colorramp.PaletteSize colors.
// When the result exactly matches a registered palette its key is
// adopted; otherwise the palette key becomes "" (custom).
func (s *Store) SetCategoricalPalette(colors []color.RGBA) {
	_ = s.mutate(func(st *ViewerState) error {
		st.Palette = normalizePalette(colors)
		st.PaletteKey = colorramp.MatchPalette(st.Palette)
		return nil
	})
}

// normalizePalette pads a color list to PaletteSize using the default
// palette's trailing entries, or truncates extras.
func normalizePalette(colors []color.RGBA) []color.RGBA {
	out := make([]color.RGBA, colorramp.PaletteSize)
	def := colorramp.DefaultPalette()
	copy(out, def.Colors)
	n := len(colors)
	if n > colorramp.PaletteSize {
		n = colorramp.PaletteSize
	}
	copy(out, colors[:n])
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
