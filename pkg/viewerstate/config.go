package viewerstate

import "image/color"

// Display configuration mutators.

// SetOutOfRangeDrawSettings controls how objects failing a threshold are
// drawn.
func (s *Store) SetOutOfRangeDrawSettings(ds DrawSettings) {
	_ = s.mutate(func(st *ViewerState) error {
		st.OutOfRangeDrawSettings = ds
		return nil
	})
}

// SetOutlierDrawSettings controls how flagged outliers are drawn.
func (s *Store) SetOutlierDrawSettings(ds DrawSettings) {
	_ = s.mutate(func(st *ViewerState) error {
		st.OutlierDrawSettings = ds
		return nil
	})
}

// SetOutlineColor sets the highlight outline color.
func (s *Store) SetOutlineColor(c color.RGBA) {
	_ = s.mutate(func(st *ViewerState) error {
		st.OutlineColor = c
		return nil
	})
}

// SetOpenTab selects the open side panel tab.
func (s *Store) SetOpenTab(t Tab) error {
	return s.mutate(func(st *ViewerState) error {
		if !validTab(t) {
			return validationErrorf("tab", "unknown tab %q", t)
		}
		st.OpenTab = t
		return nil
	})
}
