// Package viewerstate implements the reactive state layer of the
// timelapse colorizer viewer: a composable set of state slices (dataset,
// feature, color mapping, thresholds, tracks, channels, backdrop, scatter
// axes, time and display config) kept mutually consistent against an
// externally loaded dataset schema.
//
// All state lives in one ViewerState aggregate owned by a Store. Writes
// go through Store mutators that validate against the current dataset
// before applying; a fixed list of derived-state subscriptions then runs
// after every mutation to keep dependent slices consistent (see
// subscribers.go). Direct mutator misuse surfaces as *ValidationError;
// externally supplied serialized state is validated and silently
// corrected instead.
package viewerstate

import (
	"image/color"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/colorramp"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/dataset"
)

// TimeFeatureKey is the reserved scatter-axis sentinel selecting frame
// time instead of a dataset feature.
const TimeFeatureKey = "scatterplot_time"

// MaxCategories is the category capacity of the viewer. Categorical
// thresholds and palettes are clamped to this many entries.
const MaxCategories = colorramp.PaletteSize

// TrackColorSlots is the number of distinguishable highlight colors for
// selected tracks. Color slots are reused cyclically once exhausted.
const TrackColorSlots = 10

// DefaultPlaybackFPS is the playback rate applied when none is set.
const DefaultPlaybackFPS = 10

// DrawMode selects how a filtered-out object is rendered.
type DrawMode uint8

const (
	// DrawUseColor renders the object with the assigned flat color.
	DrawUseColor DrawMode = iota
	// DrawHidden hides the object entirely.
	DrawHidden
)

// DrawSettings pairs a draw mode with the color used by DrawUseColor.
type DrawSettings struct {
	Mode  DrawMode
	Color color.RGBA
}

// ScatterRangeType selects which objects the scatter plot spans.
type ScatterRangeType string

const (
	ScatterRangeAllTime      ScatterRangeType = "all"
	ScatterRangeCurrentTrack ScatterRangeType = "track"
	ScatterRangeCurrentFrame ScatterRangeType = "frame"
)

// Tab identifies the open side panel tab.
type Tab string

const (
	TabTrackPlot   Tab = "track-plot"
	TabScatterPlot Tab = "scatter-plot"
	TabFilters     Tab = "filters"
	TabSettings    Tab = "settings"
)

// ChannelSettings holds the per-channel display configuration. The
// settings list always has exactly one entry per dataset channel.
type ChannelSettings struct {
	Visible bool
	Color   color.RGBA
	// Opacity in [0, 1].
	Opacity float64
	// Min and Max are the active intensity ramp bounds.
	Min float64
	Max float64
	// DataMin and DataMax are the source data bounds of the channel.
	DataMin float64
	DataMax float64
}

// ViewerState is the single source of truth for the viewer. It is only
// mutated through Store methods; consumers read it via Store.Snapshot or
// the Store accessors. Slices inside a snapshot are replaced wholesale on
// mutation, never written in place, so held snapshots stay stable.
type ViewerState struct {
	Dataset    *dataset.Dataset
	DatasetKey string
	Collection *dataset.Collection

	// FeatureKey is "" or a key of the current dataset.
	FeatureKey string

	ColorRampKey      string
	ColorRampReversed bool
	// ColorRampMin <= ColorRampMax always holds.
	ColorRampMin float64
	ColorRampMax float64
	// KeepColorRampRange suppresses the automatic range reset on
	// feature changes.
	KeepColorRampRange bool

	// PaletteKey is "" when the palette is custom.
	PaletteKey string
	// Palette always holds exactly colorramp.PaletteSize colors.
	Palette []color.RGBA

	Thresholds []FeatureThreshold
	// InRange is derived: one entry per object, true when the object
	// passes every threshold.
	InRange []bool

	// TrackIDs is the selected track list in insertion order.
	TrackIDs []int
	// TrackColorSlot assigns each selected track a highlight slot in
	// [0, TrackColorSlots).
	TrackColorSlot map[int]int
	// SelectedLUT is derived: per object, the owning track's color slot
	// plus one, or 0 when the object belongs to no selected track.
	SelectedLUT []int

	// Channels always has exactly one entry per dataset channel.
	Channels []ChannelSettings

	// BackdropKey is "" or a backdrop key of the current dataset.
	// BackdropVisible is always false while BackdropKey is "".
	BackdropKey        string
	BackdropVisible    bool
	BackdropBrightness float64 // percent, clamped to [0, 200]
	BackdropSaturation float64 // percent, clamped to [0, 100]
	ObjectOpacity      float64 // percent, clamped to [0, 100]

	// Scatter axes are "", TimeFeatureKey, or a feature key of the
	// current dataset.
	ScatterXAxis     string
	ScatterYAxis     string
	ScatterRangeType ScatterRangeType

	CurrentFrame int
	PendingFrame int
	PlaybackFPS  float64
	Playing      bool

	OutOfRangeDrawSettings DrawSettings
	OutlierDrawSettings    DrawSettings
	OutlineColor           color.RGBA
	OpenTab                Tab

	// Revision counters let subscriptions detect slice content changes
	// without diffing the slices themselves.
	thresholdRev uint64
	trackRev     uint64
}

// Defaults returns the state of a store before any dataset loads. The
// serialization protocol uses it for default elision.
func Defaults() ViewerState {
	return defaultState()
}

// defaultState returns the state of a store before any dataset loads.
func defaultState() ViewerState {
	return ViewerState{
		ColorRampKey:       colorramp.DefaultRampKey,
		ColorRampMin:       0,
		ColorRampMax:       1,
		PaletteKey:         colorramp.DefaultPaletteKey,
		Palette:            defaultPaletteColors(),
		TrackColorSlot:     map[int]int{},
		BackdropBrightness: 100,
		BackdropSaturation: 100,
		ObjectOpacity:      100,
		ScatterRangeType:   ScatterRangeAllTime,
		PlaybackFPS:        DefaultPlaybackFPS,
		OutOfRangeDrawSettings: DrawSettings{
			Mode:  DrawUseColor,
			Color: color.RGBA{0xa0, 0xa0, 0xa0, 0xff},
		},
		OutlierDrawSettings: DrawSettings{
			Mode:  DrawUseColor,
			Color: color.RGBA{0xc0, 0xc0, 0xc0, 0xff},
		},
		OutlineColor: color.RGBA{0xff, 0x00, 0xff, 0xff},
		OpenTab:      TabTrackPlot,
	}
}

func defaultPaletteColors() []color.RGBA {
	p := colorramp.DefaultPalette()
	out := make([]color.RGBA, len(p.Colors))
	copy(out, p.Colors)
	return out
}

// validTab reports whether t is a known tab.
func validTab(t Tab) bool {
	switch t {
	case TabTrackPlot, TabScatterPlot, TabFilters, TabSettings:
		return true
	}
	return false
}

// validScatterRange reports whether t is a known scatter range type.
func validScatterRange(t ScatterRangeType) bool {
	switch t {
	case ScatterRangeAllTime, ScatterRangeCurrentTrack, ScatterRangeCurrentFrame:
		return true
	}
	return false
}
