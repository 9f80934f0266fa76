package viewerstate

import (
	"math"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/dataset"
)

// ThresholdType tags the two threshold variants.
type ThresholdType uint8

const (
	// ThresholdNumeric keeps objects whose feature value lies in
	// [Min, Max].
	ThresholdNumeric ThresholdType = iota
	// ThresholdCategorical keeps objects whose category is enabled.
	ThresholdCategorical
)

// FeatureThreshold is one per-feature filter rule. Thresholds may be
// authored against a different dataset than the current one; they are
// reconciled against the live schema by ValidateThresholds before use.
type FeatureThreshold struct {
	FeatureKey string
	Unit       string
	Type       ThresholdType

	// Numeric bounds. Only meaningful when Type is ThresholdNumeric.
	Min float64
	Max float64

	// EnabledCategories[i] keeps category i. Only meaningful when Type
	// is ThresholdCategorical; length never exceeds MaxCategories.
	EnabledCategories []bool
}

// NewNumericThreshold builds a numeric threshold with sorted bounds.
func NewNumericThreshold(featureKey, unit string, min, max float64) FeatureThreshold {
	if min > max {
		min, max = max, min
	}
	return FeatureThreshold{
		FeatureKey: featureKey,
		Unit:       unit,
		Type:       ThresholdNumeric,
		Min:        min,
		Max:        max,
	}
}

// NewCategoricalThreshold builds a categorical threshold from an enabled
// flag list, clamped to MaxCategories.
func NewCategoricalThreshold(featureKey, unit string, enabled []bool) FeatureThreshold {
	if len(enabled) > MaxCategories {
		enabled = enabled[:MaxCategories]
	}
	return FeatureThreshold{
		FeatureKey:        featureKey,
		Unit:              unit,
		Type:              ThresholdCategorical,
		EnabledCategories: append([]bool(nil), enabled...),
	}
}

// Matches reports whether the feature value passes the threshold. NaN
// values never pass; category indices outside the flag list never pass.
func (t FeatureThreshold) Matches(value float64) bool {
	if math.IsNaN(value) {
		return false
	}
	switch t.Type {
	case ThresholdNumeric:
		return value >= t.Min && value <= t.Max
	case ThresholdCategorical:
		cat := int(value)
		return cat >= 0 && cat < len(t.EnabledCategories) && t.EnabledCategories[cat]
	}
	return false
}

// SetThresholds replaces the threshold list. When a dataset is loaded the
// list is validated against its schema first, so the stored list is
// always consistent with the live dataset; invalid entries are dropped or
// re-defaulted, never errors.
func (s *Store) SetThresholds(list []FeatureThreshold) {
	_ = s.mutate(func(st *ViewerState) error {
		next := append([]FeatureThreshold(nil), list...)
		if st.Dataset != nil {
			next = ValidateThresholds(st.Dataset, next)
		}
		st.Thresholds = next
		st.thresholdRev++
		return nil
	})
}

// ValidateThresholds reconciles a stored threshold list, possibly
// authored against a different dataset, with the live schema:
//
//   - thresholds on features the dataset no longer has are dropped;
//   - a threshold whose type no longer matches the feature's type is
//     replaced with a freshly defaulted threshold of the correct type
//     (full numeric range, all categories enabled) rather than a lossy
//     value translation;
//   - numeric bounds are clamped into the feature's [min, max];
//   - categorical flag lists are resized to the feature's category
//     count (padded with false, extras truncated), capped at
//     MaxCategories.
func ValidateThresholds(ds *dataset.Dataset, list []FeatureThreshold) []FeatureThreshold {
	out := make([]FeatureThreshold, 0, len(list))
	for _, th := range list {
		f := ds.FeatureData(th.FeatureKey)
		if f == nil {
			continue
		}
		wantCategorical := f.Type == dataset.FeatureCategorical

		if wantCategorical != (th.Type == ThresholdCategorical) {
			out = append(out, defaultThreshold(f))
			continue
		}

		th.Unit = f.Unit
		if wantCategorical {
			th.EnabledCategories = resizeFlags(th.EnabledCategories, categoryCount(f))
		} else {
			th.Min = clamp(th.Min, f.Min, f.Max)
			th.Max = clamp(th.Max, f.Min, f.Max)
			if th.Min > th.Max {
				th.Min, th.Max = th.Max, th.Min
			}
		}
		out = append(out, th)
	}
	return out
}

// defaultThreshold builds the freshly defaulted threshold for a feature:
// the full numeric range, or all categories enabled.
func defaultThreshold(f *dataset.FeatureData) FeatureThreshold {
	if f.Type == dataset.FeatureCategorical {
		enabled := make([]bool, categoryCount(f))
		for i := range enabled {
			enabled[i] = true
		}
		return NewCategoricalThreshold(f.Key, f.Unit, enabled)
	}
	return NewNumericThreshold(f.Key, f.Unit, f.Min, f.Max)
}

// categoryCount returns the feature's category count capped at
// MaxCategories. Categories beyond the cap are dropped everywhere: the
// validator, the codec and the in-range table all agree on the cap.
func categoryCount(f *dataset.FeatureData) int {
	n := len(f.Categories)
	if n > MaxCategories {
		n = MaxCategories
	}
	return n
}

func resizeFlags(flags []bool, n int) []bool {
	out := make([]bool, n)
	copy(out, flags)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
