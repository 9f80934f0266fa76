package colorramp

import (
	"image/color"
	"testing"
)

func TestGet(t *testing.T) {
	r, ok := Get("viridis")
	if !ok {
		t.Fatal("expected viridis to be registered")
	}
	if r.Name != "Viridis" {
		t.Errorf("expected name 'Viridis', got %q", r.Name)
	}

	if _, ok := Get("nope"); ok {
		t.Error("expected unknown key to miss")
	}
}

func TestGet_EsriDiverging(t *testing.T) {
	r, ok := Get("esri")
	if !ok {
		t.Fatal("expected esri to be registered")
	}
	if r.At(0) != (color.RGBA{5, 113, 176, 255}) {
		t.Errorf("unexpected blue endpoint %v", r.At(0))
	}
	if r.At(1) != (color.RGBA{202, 0, 32, 255}) {
		t.Errorf("unexpected red endpoint %v", r.At(1))
	}
	// The diverging midpoint is neutral.
	if r.At(0.5) != (color.RGBA{247, 247, 247, 255}) {
		t.Errorf("unexpected midpoint %v", r.At(0.5))
	}
}

func TestKeys_DefaultFirst(t *testing.T) {
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("expected registered ramps")
	}
	if keys[0] != DefaultRampKey {
		t.Errorf("expected default ramp first, got %q", keys[0])
	}
	seen := map[string]bool{}
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate ramp key %q", k)
		}
		seen[k] = true
	}
}

func TestAt_Endpoints(t *testing.T) {
	r, _ := Get("viridis")

	if got := r.At(0); got != r.Stops[0] {
		t.Errorf("At(0) = %v, want first stop %v", got, r.Stops[0])
	}
	if got := r.At(1); got != r.Stops[len(r.Stops)-1] {
		t.Errorf("At(1) = %v, want last stop %v", got, r.Stops[len(r.Stops)-1])
	}
	// Out-of-range positions clamp.
	if got := r.At(-5); got != r.Stops[0] {
		t.Errorf("At(-5) = %v, want first stop", got)
	}
	if got := r.At(5); got != r.Stops[len(r.Stops)-1] {
		t.Errorf("At(5) = %v, want last stop", got)
	}
}

func TestAt_Interpolates(t *testing.T) {
	r := Ramp{Key: "two", Stops: []color.RGBA{
		{0, 0, 0, 255},
		{200, 100, 50, 255},
	}}
	got := r.At(0.5)
	want := color.RGBA{100, 50, 25, 255}
	if got != want {
		t.Errorf("At(0.5) = %v, want %v", got, want)
	}
}

func TestReversed(t *testing.T) {
	r, _ := Get("cool")
	rev := r.Reversed()

	if rev.At(0) != r.At(1) || rev.At(1) != r.At(0) {
		t.Error("expected reversed ramp to flip endpoints")
	}
	// The original is untouched.
	if r.Stops[0] != (color.RGBA{0, 255, 255, 255}) {
		t.Error("Reversed must not mutate the original")
	}
}

func TestGetPalette(t *testing.T) {
	p, ok := GetPalette(DefaultPaletteKey)
	if !ok {
		t.Fatal("expected default palette to be registered")
	}
	if len(p.Colors) != PaletteSize {
		t.Errorf("expected %d colors, got %d", PaletteSize, len(p.Colors))
	}

	if _, ok := GetPalette("nope"); ok {
		t.Error("expected unknown palette to miss")
	}

	for _, key := range PaletteKeys() {
		p, ok := GetPalette(key)
		if !ok {
			t.Errorf("listed palette %q not retrievable", key)
			continue
		}
		if len(p.Colors) != PaletteSize {
			t.Errorf("palette %q has %d colors, want %d", key, len(p.Colors), PaletteSize)
		}
	}
}

func TestMatchPalette(t *testing.T) {
	def := DefaultPalette()
	if got := MatchPalette(def.Colors); got != def.Key {
		t.Errorf("expected match %q, got %q", def.Key, got)
	}

	custom := append([]color.RGBA(nil), def.Colors...)
	custom[0] = color.RGBA{1, 2, 3, 255}
	if got := MatchPalette(custom); got != "" {
		t.Errorf("expected no match for modified palette, got %q", got)
	}
	if got := MatchPalette(def.Colors[:5]); got != "" {
		t.Errorf("expected no match for short list, got %q", got)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"ff00ff", color.RGBA{0xff, 0, 0xff, 0xff}, false},
		{"#ff00ff", color.RGBA{0xff, 0, 0xff, 0xff}, false},
		{"FF8040", color.RGBA{0xff, 0x80, 0x40, 0xff}, false},
		{"ff00ff80", color.RGBA{0xff, 0, 0xff, 0x80}, false},
		{"ff00", color.RGBA{}, true},
		{"gggggg", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tc := range tests {
		got, err := ParseHex(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseHex(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatHex(t *testing.T) {
	if got := FormatHex(color.RGBA{0xff, 0, 0xff, 0xff}); got != "ff00ff" {
		t.Errorf("expected 'ff00ff', got %q", got)
	}
	// Alpha appears only when not fully opaque.
	if got := FormatHex(color.RGBA{0xff, 0, 0xff, 0x80}); got != "ff00ff80" {
		t.Errorf("expected 'ff00ff80', got %q", got)
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{
		{0, 0, 0, 0xff},
		{0x12, 0x34, 0x56, 0xff},
		{0xff, 0xff, 0xff, 0x00},
		{0xab, 0xcd, 0xef, 0x7f},
	} {
		got, err := ParseHex(FormatHex(c))
		if err != nil {
			t.Errorf("round trip of %v: %v", c, err)
			continue
		}
		if got != c {
			t.Errorf("round trip of %v yielded %v", c, got)
		}
	}
}
