package urlstate

import (
	"net/url"
	"strconv"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/colorramp"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/metrics"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/viewerstate"
)

// Location names the data source a serialized state refers to. The
// caller resolves and loads it before applying the rest of the
// parameters with Apply.
type Location struct {
	// CollectionPath is the collection file path or URL, or "".
	CollectionPath string
	// DatasetKey is the dataset name within the collection, or a direct
	// dataset path when CollectionPath is "".
	DatasetKey string
}

// IsZero reports whether the location names no data source.
func (l Location) IsZero() bool {
	return l.CollectionPath == "" && l.DatasetKey == ""
}

// ParseLocation extracts the data source from query parameters without
// touching any store.
func ParseLocation(values url.Values) Location {
	return Location{
		CollectionPath: values.Get(ParamCollection),
		DatasetKey:     values.Get(ParamDataset),
	}
}

// Apply applies serialized viewer settings to the store. The dataset
// named by ParseLocation must already be committed so that
// dataset-dependent parameters validate against the live schema.
//
// Malformed or stale parameters are dropped silently; Apply never
// fails. Parameters are applied in dependency order, with the explicit
// color ramp range last so it survives the automatic range reset
// triggered by feature and threshold changes.
func Apply(values url.Values, s *viewerstate.Store) {
	defer metrics.Timer(metrics.Deserialize)()

	if v := values.Get(ParamColorRamp); v != "" {
		if key, reversed, ok := DecodeRamp(v); ok {
			_ = s.SetColorRampKey(key)
			s.SetColorRampReversed(reversed)
		}
	}
	if v, ok := parseFlag(values.Get(ParamKeepRange)); ok {
		s.SetKeepColorRampRange(v)
	}

	if v := values.Get(ParamPaletteKey); v != "" {
		_ = s.SetCategoricalPaletteKey(v)
	} else if v := values.Get(ParamPalette); v != "" {
		if colors, ok := DecodePaletteLiteral(v); ok {
			s.SetCategoricalPalette(colors)
		}
	}

	if v := values.Get(ParamFilters); v != "" {
		s.SetThresholds(DecodeThresholds(v))
	}
	if v := values.Get(ParamFeature); v != "" {
		_ = s.SetFeatureKey(v)
	}
	if v := values.Get(ParamTrack); v != "" {
		ids, slots := DecodeTracks(v)
		_ = s.SetTracks(ids, slots)
	}

	applyChannels(values, s)

	if v := values.Get(ParamBackdrop); v != "" {
		_ = s.SetBackdropKey(v)
	}
	if v, ok := parseFlag(values.Get(ParamBackdropVisible)); ok {
		s.SetBackdropVisible(v)
	}
	if v, ok := parseFloat(values.Get(ParamBackdropBright)); ok {
		s.SetBackdropBrightness(v)
	}
	if v, ok := parseFloat(values.Get(ParamBackdropSat)); ok {
		s.SetBackdropSaturation(v)
	}
	if v, ok := parseFloat(values.Get(ParamObjectOpacity)); ok {
		s.SetObjectOpacity(v)
	}

	if v := values.Get(ParamScatterX); v != "" {
		_ = s.SetScatterXAxis(scatterAxis(v))
	}
	if v := values.Get(ParamScatterY); v != "" {
		_ = s.SetScatterYAxis(scatterAxis(v))
	}
	if v := values.Get(ParamScatterRange); v != "" {
		_ = s.SetScatterRangeType(viewerstate.ScatterRangeType(v))
	}

	st := s.Snapshot()
	if v := values.Get(ParamOutOfRange); v != "" {
		if ds, ok := decodeDraw(v, st.OutOfRangeDrawSettings); ok {
			s.SetOutOfRangeDrawSettings(ds)
		}
	}
	if v := values.Get(ParamOutlier); v != "" {
		if ds, ok := decodeDraw(v, st.OutlierDrawSettings); ok {
			s.SetOutlierDrawSettings(ds)
		}
	}
	if v := values.Get(ParamOutline); v != "" {
		if c, err := colorramp.ParseHex(v); err == nil {
			s.SetOutlineColor(c)
		}
	}
	if v := values.Get(ParamTab); v != "" {
		_ = s.SetOpenTab(viewerstate.Tab(v))
	}
	if v, ok := parseFloat(values.Get(ParamFPS)); ok {
		_ = s.SetPlaybackFPS(v)
	}

	if v, ok := parseInt(values.Get(ParamFrame)); ok && v >= 0 {
		// Commit immediately: there is no async frame fetch on this path.
		s.SetFrame(v)
		s.CommitFrame(s.Snapshot().PendingFrame)
	}

	// Last: an explicit range overrides whatever the automatic reset
	// picked for the feature above.
	if v := values.Get(ParamRange); v != "" {
		if min, max, ok := parsePair(v); ok {
			_ = s.SetColorRampRange(min, max)
		}
	}
}

// applyChannels decodes c0, c1, ... onto the default settings for the
// store's current channel count. Parameters beyond that count are
// ignored.
func applyChannels(values url.Values, s *viewerstate.Store) {
	count := len(s.Snapshot().Channels)
	defaults := viewerstate.DefaultChannels(count)
	for i := 0; i < count; i++ {
		v := values.Get(channelPrefix + strconv.Itoa(i))
		if v == "" {
			continue
		}
		s.SetChannelSettings(i, DecodeChannel(v, defaults[i]))
	}
}

// scatterAxis maps the legacy time token onto the current sentinel.
func scatterAxis(v string) string {
	if v == legacyTimeAxis {
		return viewerstate.TimeFeatureKey
	}
	return v
}
