package urlstate

import (
	"net/url"
	"strconv"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/colorramp"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/metrics"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/viewerstate"
)

// Parameter keys. Each slice owns a disjoint set; this table is the
// stable external contract of the viewer and must never be repurposed.
const (
	ParamCollection = "collection"
	ParamDataset    = "dataset"
	ParamFeature    = "feature"
	ParamTrack      = "track"
	ParamFrame      = "t"
	ParamFilters    = "filters"
	ParamColorRamp  = "color"
	ParamRange      = "range"
	ParamKeepRange  = "keep-range"
	ParamPaletteKey = "palette-key"
	ParamPalette    = "palette"
	ParamBackdrop         = "bg"
	ParamBackdropVisible  = "bg-vis"
	ParamBackdropBright   = "bg-brightness"
	ParamBackdropSat      = "bg-sat"
	ParamObjectOpacity    = "fg-alpha"
	ParamScatterX     = "scatter-x"
	ParamScatterY     = "scatter-y"
	ParamScatterRange = "scatter-range"
	ParamOutOfRange   = "filtered"
	ParamOutlier      = "outlier"
	ParamOutline      = "outline"
	ParamTab          = "tab"
	ParamFPS          = "fps"

	// channelPrefix forms the per-channel keys c0, c1, ...
	channelPrefix = "c"

	// drawHidden is the draw-settings token for hidden objects; any
	// other value is a flat hex color.
	drawHidden = "hide"
)

// legacyTimeAxis is the scatter axis sentinel used by older shared
// links; it is translated to viewerstate.TimeFeatureKey on decode.
const legacyTimeAxis = "time"

// Serialize renders the state as URL query parameters. Fields equal to
// their defaults are omitted, so a default state yields an empty set.
func Serialize(st viewerstate.ViewerState) url.Values {
	defer metrics.Timer(metrics.Serialize)()

	def := viewerstate.Defaults()
	out := url.Values{}
	set := func(key, value string) {
		if value != "" {
			out.Set(key, value)
		}
	}

	if st.Collection != nil {
		set(ParamCollection, st.Collection.SourcePath())
	}
	set(ParamDataset, st.DatasetKey)
	set(ParamFeature, st.FeatureKey)

	if st.ColorRampKey != def.ColorRampKey || st.ColorRampReversed {
		set(ParamColorRamp, EncodeRamp(st.ColorRampKey, st.ColorRampReversed))
	}
	if st.ColorRampMin != def.ColorRampMin || st.ColorRampMax != def.ColorRampMax {
		set(ParamRange, formatFloat(st.ColorRampMin)+":"+formatFloat(st.ColorRampMax))
	}
	if st.KeepColorRampRange {
		set(ParamKeepRange, "1")
	}

	switch {
	case st.PaletteKey == "":
		set(ParamPalette, EncodePaletteLiteral(st.Palette))
	case st.PaletteKey != def.PaletteKey:
		set(ParamPaletteKey, st.PaletteKey)
	}

	set(ParamFilters, EncodeThresholds(st.Thresholds))
	set(ParamTrack, EncodeTracks(st.TrackIDs, st.TrackColorSlot))

	defChannels := viewerstate.DefaultChannels(len(st.Channels))
	for i, cs := range st.Channels {
		set(channelPrefix+strconv.Itoa(i), EncodeChannel(cs, defChannels[i]))
	}

	set(ParamBackdrop, st.BackdropKey)
	if st.BackdropVisible {
		set(ParamBackdropVisible, "1")
	}
	if st.BackdropBrightness != def.BackdropBrightness {
		set(ParamBackdropBright, formatFloat(st.BackdropBrightness))
	}
	if st.BackdropSaturation != def.BackdropSaturation {
		set(ParamBackdropSat, formatFloat(st.BackdropSaturation))
	}
	if st.ObjectOpacity != def.ObjectOpacity {
		set(ParamObjectOpacity, formatFloat(st.ObjectOpacity))
	}

	set(ParamScatterX, st.ScatterXAxis)
	set(ParamScatterY, st.ScatterYAxis)
	if st.ScatterRangeType != def.ScatterRangeType {
		set(ParamScatterRange, string(st.ScatterRangeType))
	}

	if st.CurrentFrame != 0 {
		set(ParamFrame, strconv.Itoa(st.CurrentFrame))
	}
	if st.PlaybackFPS != def.PlaybackFPS {
		set(ParamFPS, formatFloat(st.PlaybackFPS))
	}

	if st.OutOfRangeDrawSettings != def.OutOfRangeDrawSettings {
		set(ParamOutOfRange, encodeDraw(st.OutOfRangeDrawSettings))
	}
	if st.OutlierDrawSettings != def.OutlierDrawSettings {
		set(ParamOutlier, encodeDraw(st.OutlierDrawSettings))
	}
	if st.OutlineColor != def.OutlineColor {
		set(ParamOutline, colorramp.FormatHex(st.OutlineColor))
	}
	if st.OpenTab != def.OpenTab {
		set(ParamTab, string(st.OpenTab))
	}

	return out
}

// encodeDraw renders draw settings as "hide" or a flat hex color.
func encodeDraw(ds viewerstate.DrawSettings) string {
	if ds.Mode == viewerstate.DrawHidden {
		return drawHidden
	}
	return colorramp.FormatHex(ds.Color)
}

// decodeDraw parses a draw-settings token on top of base.
func decodeDraw(s string, base viewerstate.DrawSettings) (viewerstate.DrawSettings, bool) {
	if s == drawHidden {
		base.Mode = viewerstate.DrawHidden
		return base, true
	}
	c, err := colorramp.ParseHex(s)
	if err != nil {
		return base, false
	}
	return viewerstate.DrawSettings{Mode: viewerstate.DrawUseColor, Color: c}, true
}
