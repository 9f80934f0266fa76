package viewerstate

import "image/color"

// Channel mutators. All channel setters are index-bounded: indices
// outside [0, channel count) are ignored rather than treated as errors,
// because channel counts change whenever the dataset does.

// SetChannelSettings replaces the whole settings entry for channel i.
func (s *Store) SetChannelSettings(i int, cs ChannelSettings) {
	s.updateChannel(i, func(c *ChannelSettings) { *c = cs })
}

// SetChannelVisible toggles channel i.
func (s *Store) SetChannelVisible(i int, visible bool) {
	s.updateChannel(i, func(c *ChannelSettings) { c.Visible = visible })
}

// SetChannelColor sets the tint color of channel i.
func (s *Store) SetChannelColor(i int, col color.RGBA) {
	s.updateChannel(i, func(c *ChannelSettings) { c.Color = col })
}

// SetChannelOpacity sets the opacity of channel i, clamped to [0, 1].
func (s *Store) SetChannelOpacity(i int, opacity float64) {
	s.updateChannel(i, func(c *ChannelSettings) { c.Opacity = clamp(opacity, 0, 1) })
}

// SetChannelRange sets the active intensity ramp bounds of channel i,
// sorted.
func (s *Store) SetChannelRange(i int, min, max float64) {
	if min > max {
		min, max = max, min
	}
	s.updateChannel(i, func(c *ChannelSettings) { c.Min, c.Max = min, max })
}

// SetChannelDataRange sets the source data bounds of channel i, sorted.
func (s *Store) SetChannelDataRange(i int, min, max float64) {
	if min > max {
		min, max = max, min
	}
	s.updateChannel(i, func(c *ChannelSettings) { c.DataMin, c.DataMax = min, max })
}

func (s *Store) updateChannel(i int, fn func(*ChannelSettings)) {
	_ = s.mutate(func(st *ViewerState) error {
		if i < 0 || i >= len(st.Channels) {
			return nil
		}
		next := append([]ChannelSettings(nil), st.Channels...)
		fn(&next[i])
		st.Channels = next
		return nil
	})
}

// DefaultChannels returns the default settings list for a channel count.
// The serialization protocol uses it for default elision.
func DefaultChannels(count int) []ChannelSettings {
	return defaultChannels(count)
}

// defaultChannels builds the settings list for a channel count, coloring
// channels by the fixed table: one channel renders white, two render
// magenta/green, three render magenta/cyan/yellow, and larger counts
// repeat a generated sequence.
func defaultChannels(count int) []ChannelSettings {
	out := make([]ChannelSettings, count)
	for i := range out {
		out[i] = ChannelSettings{
			Visible: true,
			Color:   defaultChannelColor(i, count),
			Opacity: 1,
			Min:     0,
			Max:     1,
			DataMin: 0,
			DataMax: 1,
		}
	}
	return out
}

var channelColorSequence = []color.RGBA{
	{0xff, 0x00, 0xff, 0xff}, // magenta
	{0x00, 0xff, 0xff, 0xff}, // cyan
	{0xff, 0xff, 0x00, 0xff}, // yellow
	{0x00, 0xff, 0x00, 0xff}, // green
	{0xff, 0x80, 0x00, 0xff}, // orange
	{0x00, 0x80, 0xff, 0xff}, // azure
	{0xff, 0x00, 0x80, 0xff}, // pink
	{0x80, 0xff, 0x00, 0xff}, // lime
}

func defaultChannelColor(i, count int) color.RGBA {
	switch count {
	case 1:
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	case 2:
		if i == 0 {
			return color.RGBA{0xff, 0x00, 0xff, 0xff}
		}
		return color.RGBA{0x00, 0xff, 0x00, 0xff}
	case 3:
		return channelColorSequence[i%3]
	default:
		return channelColorSequence[i%len(channelColorSequence)]
	}
}
