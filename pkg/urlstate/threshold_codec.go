package urlstate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/viewerstate"
)

// Threshold wire format, comma-joined entries:
//
//	numeric:     featureKey:unit:min:max
//	categorical: featureKey:unit:hexBitmask   (bit i = category i enabled)
//
// Feature keys and units are URL-escaped so embedded ':' or ',' cannot
// break the framing. The entry arity distinguishes the two variants.

// EncodeThresholds renders a threshold list, or "" for an empty one.
func EncodeThresholds(list []viewerstate.FeatureThreshold) string {
	entries := make([]string, 0, len(list))
	for _, th := range list {
		key := url.QueryEscape(th.FeatureKey)
		unit := url.QueryEscape(th.Unit)
		switch th.Type {
		case viewerstate.ThresholdNumeric:
			entries = append(entries, key+":"+unit+":"+formatFloat(th.Min)+":"+formatFloat(th.Max))
		case viewerstate.ThresholdCategorical:
			entries = append(entries, key+":"+unit+":"+strconv.FormatUint(categoryBits(th.EnabledCategories), 16))
		}
	}
	return strings.Join(entries, ",")
}

// DecodeThresholds parses a threshold list, dropping malformed entries.
func DecodeThresholds(s string) []viewerstate.FeatureThreshold {
	if s == "" {
		return nil
	}
	var out []viewerstate.FeatureThreshold
	for _, entry := range strings.Split(s, ",") {
		th, ok := decodeThreshold(entry)
		if ok {
			out = append(out, th)
		}
	}
	return out
}

func decodeThreshold(entry string) (viewerstate.FeatureThreshold, bool) {
	parts := strings.Split(entry, ":")
	key, err := url.QueryUnescape(parts[0])
	if err != nil || key == "" {
		return viewerstate.FeatureThreshold{}, false
	}

	switch len(parts) {
	case 3:
		unit, err := url.QueryUnescape(parts[1])
		if err != nil {
			return viewerstate.FeatureThreshold{}, false
		}
		bits, err := strconv.ParseUint(parts[2], 16, 64)
		if err != nil {
			return viewerstate.FeatureThreshold{}, false
		}
		return viewerstate.NewCategoricalThreshold(key, unit, categoryFlags(bits)), true
	case 4:
		unit, err := url.QueryUnescape(parts[1])
		if err != nil {
			return viewerstate.FeatureThreshold{}, false
		}
		min, ok1 := parseFloat(parts[2])
		max, ok2 := parseFloat(parts[3])
		if !ok1 || !ok2 {
			return viewerstate.FeatureThreshold{}, false
		}
		return viewerstate.NewNumericThreshold(key, unit, min, max), true
	}
	return viewerstate.FeatureThreshold{}, false
}

func categoryBits(enabled []bool) uint64 {
	var bits uint64
	for i, on := range enabled {
		if on && i < viewerstate.MaxCategories {
			bits |= 1 << uint(i)
		}
	}
	return bits
}

func categoryFlags(bits uint64) []bool {
	out := make([]bool, viewerstate.MaxCategories)
	for i := range out {
		out[i] = bits&(1<<uint(i)) != 0
	}
	return out
}
