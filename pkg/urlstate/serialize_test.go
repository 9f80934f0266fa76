package urlstate

import (
	"image/color"
	"net/url"
	"reflect"
	"testing"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/dataset"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/viewerstate"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(dataset.Def{
		Key: "test",
		Features: []dataset.FeatureData{
			{
				Key:  "volume",
				Type: dataset.FeatureContinuous,
				Unit: "µm³",
				Data: []float64{0, 2, 3, 4, 5, 6, 8, 5, 5},
			},
			{
				Key:        "phase",
				Type:       dataset.FeatureCategorical,
				Categories: []string{"interphase", "mitosis", "apoptosis"},
				Data:       []float64{0, 0, 0, 1, 1, 1, 1, 2, 2},
			},
		},
		TrackOf:   []int{1, 1, 1, 2, 2, 2, 2, 3, 3},
		TimeOf:    []int{0, 1, 2, 0, 1, 2, 2, 0, 1},
		Backdrops: []dataset.Backdrop{{Key: "bf", Name: "Brightfield"}, {Key: "seg", Name: "Segmentation"}},
		Channels:  2,
		Frames:    3,
	})
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func storeWithDataset(t *testing.T) *viewerstate.Store {
	t.Helper()
	s := viewerstate.NewStore()
	if err := s.SetDataset("test", testDataset(t)); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSerialize_DefaultStateIsEmpty(t *testing.T) {
	values := Serialize(viewerstate.NewStore().Snapshot())
	if len(values) != 0 {
		t.Errorf("expected no parameters for a default state, got %v", values)
	}
}

func TestSerialize_ElidesDefaults(t *testing.T) {
	s := storeWithDataset(t)
	values := Serialize(s.Snapshot())

	// Dataset-derived fields are present.
	if values.Get(ParamDataset) != "test" {
		t.Errorf("expected dataset param, got %q", values.Get(ParamDataset))
	}
	if values.Get(ParamFeature) != "volume" {
		t.Errorf("expected feature param, got %q", values.Get(ParamFeature))
	}
	// Fields still at their defaults are elided.
	for _, key := range []string{
		ParamColorRamp, ParamKeepRange, ParamPaletteKey, ParamPalette,
		ParamFilters, ParamTrack, ParamFrame, ParamFPS, ParamTab,
		ParamBackdropVisible, ParamBackdropBright, ParamBackdropSat,
		ParamScatterRange, ParamOutOfRange, ParamOutlier, ParamOutline,
		"c0", "c1",
	} {
		if v := values.Get(key); v != "" {
			t.Errorf("expected %s elided, got %q", key, v)
		}
	}
}

func TestSerializeApply_RoundTrip(t *testing.T) {
	src := storeWithDataset(t)

	if err := src.SetFeatureKey("phase"); err != nil {
		t.Fatal(err)
	}
	if err := src.SetColorRampKey("plasma"); err != nil {
		t.Fatal(err)
	}
	src.SetColorRampReversed(true)
	src.SetKeepColorRampRange(true)
	if err := src.SetColorRampRange(0.5, 1.5); err != nil {
		t.Fatal(err)
	}
	src.SetThresholds([]viewerstate.FeatureThreshold{
		viewerstate.NewNumericThreshold("volume", "µm³", 2, 5),
		viewerstate.NewCategoricalThreshold("phase", "", []bool{true, false, true}),
	})
	if err := src.SetTracks([]int{2, 1}, []int{3, -1}); err != nil {
		t.Fatal(err)
	}
	src.SetChannelVisible(1, false)
	if err := src.SetBackdropKey("seg"); err != nil {
		t.Fatal(err)
	}
	src.SetBackdropVisible(true)
	src.SetBackdropBrightness(150)
	src.SetObjectOpacity(75)
	if err := src.SetScatterXAxis(viewerstate.TimeFeatureKey); err != nil {
		t.Fatal(err)
	}
	if err := src.SetScatterYAxis("volume"); err != nil {
		t.Fatal(err)
	}
	if err := src.SetScatterRangeType(viewerstate.ScatterRangeCurrentTrack); err != nil {
		t.Fatal(err)
	}
	src.SetFrame(2)
	src.CommitFrame(2)
	if err := src.SetPlaybackFPS(24); err != nil {
		t.Fatal(err)
	}
	src.SetOutOfRangeDrawSettings(viewerstate.DrawSettings{Mode: viewerstate.DrawHidden})
	src.SetOutlineColor(color.RGBA{0x00, 0xff, 0x00, 0xff})
	if err := src.SetOpenTab(viewerstate.TabFilters); err != nil {
		t.Fatal(err)
	}

	values := Serialize(src.Snapshot())

	dst := storeWithDataset(t)
	Apply(values, dst)
	got := dst.Snapshot()
	want := src.Snapshot()

	if got.FeatureKey != want.FeatureKey {
		t.Errorf("feature: got %q, want %q", got.FeatureKey, want.FeatureKey)
	}
	if got.ColorRampKey != want.ColorRampKey || got.ColorRampReversed != want.ColorRampReversed {
		t.Errorf("ramp: got %s/%v, want %s/%v",
			got.ColorRampKey, got.ColorRampReversed, want.ColorRampKey, want.ColorRampReversed)
	}
	if got.ColorRampMin != want.ColorRampMin || got.ColorRampMax != want.ColorRampMax {
		t.Errorf("range: got [%v, %v], want [%v, %v]",
			got.ColorRampMin, got.ColorRampMax, want.ColorRampMin, want.ColorRampMax)
	}
	if !got.KeepColorRampRange {
		t.Error("expected keep-range flag to survive")
	}
	if !reflect.DeepEqual(got.Thresholds, want.Thresholds) {
		t.Errorf("thresholds: got %+v, want %+v", got.Thresholds, want.Thresholds)
	}
	if !reflect.DeepEqual(got.TrackIDs, want.TrackIDs) {
		t.Errorf("tracks: got %v, want %v", got.TrackIDs, want.TrackIDs)
	}
	if !reflect.DeepEqual(got.TrackColorSlot, want.TrackColorSlot) {
		t.Errorf("slots: got %v, want %v", got.TrackColorSlot, want.TrackColorSlot)
	}
	if got.Channels[1].Visible {
		t.Error("expected channel 1 hidden after round trip")
	}
	if got.BackdropKey != "seg" || !got.BackdropVisible {
		t.Errorf("backdrop: got %q visible=%v", got.BackdropKey, got.BackdropVisible)
	}
	if got.BackdropBrightness != 150 || got.ObjectOpacity != 75 {
		t.Errorf("sliders: brightness %v, opacity %v", got.BackdropBrightness, got.ObjectOpacity)
	}
	if got.ScatterXAxis != viewerstate.TimeFeatureKey || got.ScatterYAxis != "volume" {
		t.Errorf("scatter axes: got %q/%q", got.ScatterXAxis, got.ScatterYAxis)
	}
	if got.ScatterRangeType != viewerstate.ScatterRangeCurrentTrack {
		t.Errorf("scatter range: got %q", got.ScatterRangeType)
	}
	if got.CurrentFrame != 2 {
		t.Errorf("frame: got %d", got.CurrentFrame)
	}
	if got.PlaybackFPS != 24 {
		t.Errorf("fps: got %v", got.PlaybackFPS)
	}
	if got.OutOfRangeDrawSettings.Mode != viewerstate.DrawHidden {
		t.Error("expected out-of-range draw mode to survive")
	}
	if got.OutlineColor != want.OutlineColor {
		t.Errorf("outline: got %v, want %v", got.OutlineColor, want.OutlineColor)
	}
	if got.OpenTab != viewerstate.TabFilters {
		t.Errorf("tab: got %q", got.OpenTab)
	}
}

func TestSerializeApply_Idempotent(t *testing.T) {
	src := storeWithDataset(t)
	if err := src.SetFeatureKey("phase"); err != nil {
		t.Fatal(err)
	}
	src.SetThresholds([]viewerstate.FeatureThreshold{
		viewerstate.NewNumericThreshold("volume", "µm³", 2, 5),
	})
	if err := src.SetTracks([]int{1, 3}, nil); err != nil {
		t.Fatal(err)
	}
	src.SetFrame(1)
	src.CommitFrame(1)

	first := Serialize(src.Snapshot())

	dst := storeWithDataset(t)
	Apply(first, dst)
	second := Serialize(dst.Snapshot())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("serialization not stable across a decode/encode cycle:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestApply_MalformedValuesIgnored(t *testing.T) {
	s := storeWithDataset(t)
	before := s.Snapshot()

	values := url.Values{}
	values.Set(ParamFeature, "no-such-feature")
	values.Set(ParamColorRamp, "no-such-ramp")
	values.Set(ParamRange, "abc:def")
	values.Set(ParamFilters, "garbage")
	values.Set(ParamTrack, "banana")
	values.Set(ParamFrame, "NaN")
	values.Set(ParamFPS, "-2")
	values.Set(ParamTab, "bogus")
	values.Set(ParamBackdrop, "unknown")
	values.Set(ParamScatterX, "unknown")
	values.Set("unrelated-key", "whatever")

	Apply(values, s)
	after := s.Snapshot()

	if after.FeatureKey != before.FeatureKey {
		t.Error("unknown feature must not apply")
	}
	if after.ColorRampKey != before.ColorRampKey {
		t.Error("unknown ramp must not apply")
	}
	if after.ColorRampMin != before.ColorRampMin || after.ColorRampMax != before.ColorRampMax {
		t.Error("malformed range must not apply")
	}
	if len(after.Thresholds) != 0 {
		t.Error("garbage filters must decode to nothing")
	}
	if len(after.TrackIDs) != 0 {
		t.Error("garbage track list must decode to nothing")
	}
	if after.PlaybackFPS != before.PlaybackFPS {
		t.Error("invalid fps must not apply")
	}
	if after.OpenTab != before.OpenTab {
		t.Error("unknown tab must not apply")
	}
	if after.BackdropKey != before.BackdropKey {
		t.Error("unknown backdrop must not apply")
	}
	if after.ScatterXAxis != before.ScatterXAxis {
		t.Error("unknown scatter axis must not apply")
	}
}

func TestApply_LegacyTimeAxisToken(t *testing.T) {
	s := storeWithDataset(t)

	values := url.Values{}
	values.Set(ParamScatterX, legacyTimeAxis)
	Apply(values, s)

	if got := s.Snapshot().ScatterXAxis; got != viewerstate.TimeFeatureKey {
		t.Errorf("expected legacy token mapped to %q, got %q", viewerstate.TimeFeatureKey, got)
	}
}

func TestApply_ExplicitRangeOverridesFeatureReset(t *testing.T) {
	s := storeWithDataset(t)

	values := url.Values{}
	values.Set(ParamFeature, "phase")
	values.Set(ParamRange, "0.100:0.400")
	Apply(values, s)

	st := s.Snapshot()
	if st.FeatureKey != "phase" {
		t.Fatalf("expected feature applied, got %q", st.FeatureKey)
	}
	// The feature change resets the range, but the explicit range is
	// applied afterwards and wins.
	if st.ColorRampMin != 0.1 || st.ColorRampMax != 0.4 {
		t.Errorf("expected explicit range [0.1, 0.4], got [%v, %v]", st.ColorRampMin, st.ColorRampMax)
	}
}

func TestParseLocation(t *testing.T) {
	values := url.Values{}
	values.Set(ParamCollection, "https://example.org/collection.json")
	values.Set(ParamDataset, "baseline")

	loc := ParseLocation(values)
	if loc.CollectionPath != "https://example.org/collection.json" {
		t.Errorf("unexpected collection %q", loc.CollectionPath)
	}
	if loc.DatasetKey != "baseline" {
		t.Errorf("unexpected dataset %q", loc.DatasetKey)
	}
	if loc.IsZero() {
		t.Error("populated location must not be zero")
	}
	if !ParseLocation(url.Values{}).IsZero() {
		t.Error("empty values must parse to a zero location")
	}
}

func TestSerialize_CustomPaletteLiteral(t *testing.T) {
	s := viewerstate.NewStore()
	s.SetCategoricalPalette([]color.RGBA{{1, 2, 3, 0xff}})

	values := Serialize(s.Snapshot())
	if values.Get(ParamPaletteKey) != "" {
		t.Error("custom palette must not serialize a palette key")
	}
	if values.Get(ParamPalette) == "" {
		t.Error("custom palette must serialize a literal")
	}

	dst := viewerstate.NewStore()
	Apply(values, dst)
	got := dst.Snapshot()
	if got.PaletteKey != "" {
		t.Errorf("expected custom palette key \"\", got %q", got.PaletteKey)
	}
	if got.Palette[0] != (color.RGBA{1, 2, 3, 0xff}) {
		t.Error("expected custom color to survive the round trip")
	}
}
