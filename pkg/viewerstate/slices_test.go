package viewerstate

import (
	"image/color"
	"testing"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/colorramp"
)

func TestRampRange_ResetsOnFeatureChange(t *testing.T) {
	s := storeWithDataset(t)

	if err := s.SetColorRampRange(2, 4); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFeatureKey("phase"); err != nil {
		t.Fatal(err)
	}
	st := s.Snapshot()

	// phase values span [0, 2].
	if st.ColorRampMin != 0 || st.ColorRampMax != 2 {
		t.Errorf("expected range reset to [0, 2], got [%v, %v]", st.ColorRampMin, st.ColorRampMax)
	}
}

func TestRampRange_FollowsThresholdBounds(t *testing.T) {
	s := storeWithDataset(t)

	s.SetThresholds([]FeatureThreshold{NewNumericThreshold("volume", "µm³", 2, 5)})
	st := s.Snapshot()

	if st.ColorRampMin != 2 || st.ColorRampMax != 5 {
		t.Errorf("expected range from threshold [2, 5], got [%v, %v]", st.ColorRampMin, st.ColorRampMax)
	}

	// Removing the threshold falls back to the feature bounds.
	s.SetThresholds(nil)
	st = s.Snapshot()
	if st.ColorRampMin != 0 || st.ColorRampMax != 8 {
		t.Errorf("expected range from feature [0, 8], got [%v, %v]", st.ColorRampMin, st.ColorRampMax)
	}
}

func TestRampRange_KeepFlagSuppressesReset(t *testing.T) {
	s := storeWithDataset(t)

	s.SetKeepColorRampRange(true)
	if err := s.SetColorRampRange(3, 4); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFeatureKey("phase"); err != nil {
		t.Fatal(err)
	}
	st := s.Snapshot()

	if st.ColorRampMin != 3 || st.ColorRampMax != 4 {
		t.Errorf("expected range kept at [3, 4], got [%v, %v]", st.ColorRampMin, st.ColorRampMax)
	}
}

func TestRampRange_DatasetSwapKeepsUntouchedRange(t *testing.T) {
	s := storeWithDataset(t)
	if err := s.SetColorRampRange(2, 4); err != nil {
		t.Fatal(err)
	}

	// A swap to an identical schema changes neither the feature key nor
	// any threshold, so the manually chosen range survives.
	if err := s.SetDataset("test2", testDataset(t)); err != nil {
		t.Fatal(err)
	}
	st := s.Snapshot()

	if st.ColorRampMin != 2 || st.ColorRampMax != 4 {
		t.Errorf("expected range kept at [2, 4], got [%v, %v]", st.ColorRampMin, st.ColorRampMax)
	}
}

func TestSetColorRampRange_SortsBounds(t *testing.T) {
	s := NewStore()
	if err := s.SetColorRampRange(5, 1); err != nil {
		t.Fatal(err)
	}
	st := s.Snapshot()
	if st.ColorRampMin != 1 || st.ColorRampMax != 5 {
		t.Errorf("expected sorted bounds [1, 5], got [%v, %v]", st.ColorRampMin, st.ColorRampMax)
	}
}

func TestSetColorRampKey_Unknown(t *testing.T) {
	s := NewStore()
	if err := s.SetColorRampKey("not-a-ramp"); err == nil {
		t.Fatal("expected error for unknown ramp key")
	}
}

func TestSetCategoricalPalette_BackfillAndMatch(t *testing.T) {
	s := NewStore()

	// A short custom palette is backfilled from the default palette.
	custom := []color.RGBA{{1, 2, 3, 0xff}}
	s.SetCategoricalPalette(custom)
	st := s.Snapshot()

	if st.PaletteKey != "" {
		t.Errorf("expected custom palette key \"\", got %q", st.PaletteKey)
	}
	if len(st.Palette) != colorramp.PaletteSize {
		t.Fatalf("expected %d colors, got %d", colorramp.PaletteSize, len(st.Palette))
	}
	if st.Palette[0] != custom[0] {
		t.Error("expected first color from the custom palette")
	}
	def := colorramp.DefaultPalette()
	if st.Palette[1] != def.Colors[1] {
		t.Error("expected backfill from the default palette")
	}

	// Installing colors that exactly match a registered palette adopts
	// its key.
	s.SetCategoricalPalette(def.Colors)
	if got := s.Snapshot().PaletteKey; got != def.Key {
		t.Errorf("expected matched palette key %q, got %q", def.Key, got)
	}
}

func TestChannelSettings_Setters(t *testing.T) {
	s := storeWithDataset(t)

	s.SetChannelVisible(0, false)
	s.SetChannelColor(1, color.RGBA{0x12, 0x34, 0x56, 0xff})
	s.SetChannelOpacity(1, 2.5) // clamped
	s.SetChannelRange(0, 0.8, 0.2)
	s.SetChannelDataRange(0, 0, 1000)

	st := s.Snapshot()
	if st.Channels[0].Visible {
		t.Error("expected channel 0 hidden")
	}
	if st.Channels[1].Color != (color.RGBA{0x12, 0x34, 0x56, 0xff}) {
		t.Error("expected channel 1 recolored")
	}
	if st.Channels[1].Opacity != 1 {
		t.Errorf("expected opacity clamped to 1, got %v", st.Channels[1].Opacity)
	}
	if st.Channels[0].Min != 0.2 || st.Channels[0].Max != 0.8 {
		t.Errorf("expected sorted range [0.2, 0.8], got [%v, %v]", st.Channels[0].Min, st.Channels[0].Max)
	}
	if st.Channels[0].DataMax != 1000 {
		t.Errorf("expected data max 1000, got %v", st.Channels[0].DataMax)
	}
}

func TestChannelSettings_OutOfRangeIndexIgnored(t *testing.T) {
	s := storeWithDataset(t)
	before := s.Snapshot()

	s.SetChannelVisible(-1, false)
	s.SetChannelVisible(99, false)

	after := s.Snapshot()
	for i := range after.Channels {
		if after.Channels[i] != before.Channels[i] {
			t.Errorf("channel %d changed by out-of-range setter", i)
		}
	}
}

func TestChannelResize_PreservesSurvivingIndices(t *testing.T) {
	s := storeWithDataset(t)
	s.SetChannelVisible(0, false)

	// New dataset with more channels: index 0 keeps its settings, the
	// new index gets defaults.
	ds := testDatasetWithChannels(t, 3)
	if err := s.SetDataset("more", ds); err != nil {
		t.Fatal(err)
	}
	st := s.Snapshot()

	if len(st.Channels) != 3 {
		t.Fatalf("expected 3 channels, got %d", len(st.Channels))
	}
	if st.Channels[0].Visible {
		t.Error("expected channel 0 settings preserved across resize")
	}
	if !st.Channels[2].Visible {
		t.Error("expected new channel to get default settings")
	}
}

func TestDefaultChannelColors(t *testing.T) {
	one := DefaultChannels(1)
	if one[0].Color != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Error("single channel should default to white")
	}

	two := DefaultChannels(2)
	if two[0].Color != (color.RGBA{0xff, 0x00, 0xff, 0xff}) || two[1].Color != (color.RGBA{0x00, 0xff, 0x00, 0xff}) {
		t.Error("two channels should default to magenta/green")
	}

	three := DefaultChannels(3)
	want := []color.RGBA{{0xff, 0, 0xff, 0xff}, {0, 0xff, 0xff, 0xff}, {0xff, 0xff, 0, 0xff}}
	for i := range want {
		if three[i].Color != want[i] {
			t.Errorf("channel %d: expected %v, got %v", i, want[i], three[i].Color)
		}
	}
}

func TestBackdropVisible_NeverTrueWithoutKey(t *testing.T) {
	s := NewStore()

	s.SetBackdropVisible(true)
	if s.Snapshot().BackdropVisible {
		t.Error("visibility must stay off while no backdrop is selected")
	}

	// With a dataset and a backdrop it can be toggled.
	if err := s.SetDataset("test", testDataset(t)); err != nil {
		t.Fatal(err)
	}
	s.SetBackdropVisible(true)
	if !s.Snapshot().BackdropVisible {
		t.Error("expected visibility on with a selected backdrop")
	}
}

func TestBackdropSliders_Clamped(t *testing.T) {
	s := NewStore()

	s.SetBackdropBrightness(500)
	s.SetBackdropSaturation(-5)
	s.SetObjectOpacity(150)

	st := s.Snapshot()
	if st.BackdropBrightness != 200 {
		t.Errorf("expected brightness clamped to 200, got %v", st.BackdropBrightness)
	}
	if st.BackdropSaturation != 0 {
		t.Errorf("expected saturation clamped to 0, got %v", st.BackdropSaturation)
	}
	if st.ObjectOpacity != 100 {
		t.Errorf("expected opacity clamped to 100, got %v", st.ObjectOpacity)
	}
}

func TestSetBackdropKey_Unknown(t *testing.T) {
	s := storeWithDataset(t)
	if err := s.SetBackdropKey("nope"); err == nil {
		t.Fatal("expected error for unknown backdrop")
	}
}

func TestScatterAxes_Validation(t *testing.T) {
	s := storeWithDataset(t)

	if err := s.SetScatterXAxis("volume"); err != nil {
		t.Errorf("feature key should be accepted: %v", err)
	}
	if err := s.SetScatterYAxis(TimeFeatureKey); err != nil {
		t.Errorf("time sentinel should be accepted: %v", err)
	}
	if err := s.SetScatterXAxis(""); err != nil {
		t.Errorf("empty axis should be accepted: %v", err)
	}
	if err := s.SetScatterXAxis("bogus"); err == nil {
		t.Error("expected error for unknown axis key")
	}
	if err := s.SetScatterRangeType(ScatterRangeCurrentTrack); err != nil {
		t.Errorf("known range type should be accepted: %v", err)
	}
	if err := s.SetScatterRangeType("bogus"); err == nil {
		t.Error("expected error for unknown range type")
	}
}

func TestFrame_ClampAndCommit(t *testing.T) {
	s := storeWithDataset(t) // 3 frames

	s.SetFrame(99)
	st := s.Snapshot()
	if st.PendingFrame != 2 {
		t.Errorf("expected pending frame clamped to 2, got %d", st.PendingFrame)
	}
	if st.CurrentFrame != 0 {
		t.Errorf("current frame must not move before commit, got %d", st.CurrentFrame)
	}

	// A stale completion for a superseded request is discarded.
	if s.CommitFrame(1) {
		t.Error("expected stale frame completion discarded")
	}
	if !s.CommitFrame(2) {
		t.Error("expected pending frame completion accepted")
	}
	if got := s.Snapshot().CurrentFrame; got != 2 {
		t.Errorf("expected current frame 2, got %d", got)
	}

	s.SetFrame(-5)
	if got := s.Snapshot().PendingFrame; got != 0 {
		t.Errorf("expected negative frame clamped to 0, got %d", got)
	}
}

func TestSetPlaybackFPS_RejectsInvalid(t *testing.T) {
	s := NewStore()

	if err := s.SetPlaybackFPS(0); err == nil {
		t.Error("expected error for zero fps")
	}
	if err := s.SetPlaybackFPS(-1); err == nil {
		t.Error("expected error for negative fps")
	}
	if err := s.SetPlaybackFPS(24); err != nil {
		t.Errorf("expected 24 fps accepted, got %v", err)
	}
	if got := s.Snapshot().PlaybackFPS; got != 24 {
		t.Errorf("expected fps 24, got %v", got)
	}
}

func TestSetOpenTab(t *testing.T) {
	s := NewStore()
	if err := s.SetOpenTab(TabFilters); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().OpenTab; got != TabFilters {
		t.Errorf("expected tab %q, got %q", TabFilters, got)
	}
	if err := s.SetOpenTab("bogus"); err == nil {
		t.Error("expected error for unknown tab")
	}
}

func TestDrawSettings(t *testing.T) {
	s := NewStore()

	s.SetOutOfRangeDrawSettings(DrawSettings{Mode: DrawHidden})
	s.SetOutlierDrawSettings(DrawSettings{Mode: DrawUseColor, Color: color.RGBA{1, 2, 3, 0xff}})
	s.SetOutlineColor(color.RGBA{0, 0xff, 0, 0xff})

	st := s.Snapshot()
	if st.OutOfRangeDrawSettings.Mode != DrawHidden {
		t.Error("expected out-of-range objects hidden")
	}
	if st.OutlierDrawSettings.Color != (color.RGBA{1, 2, 3, 0xff}) {
		t.Error("expected outlier color applied")
	}
	if st.OutlineColor != (color.RGBA{0, 0xff, 0, 0xff}) {
		t.Error("expected outline color applied")
	}
}
