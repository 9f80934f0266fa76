package viewerstate

// SetBackdropKey selects a backdrop of the current dataset.
func (s *Store) SetBackdropKey(key string) error {
	return s.mutate(func(st *ViewerState) error {
		if st.Dataset == nil {
			return validationErrorf("backdrop", "no dataset loaded")
		}
		if !st.Dataset.HasBackdrop(key) {
			return validationErrorf("backdrop", "unknown backdrop key %q", key)
		}
		st.BackdropKey = key
		return nil
	})
}

// SetBackdropVisible toggles the backdrop. Turning visibility on while no
// backdrop is selected is a no-op: visibility can never be true with a
// null key.
func (s *Store) SetBackdropVisible(visible bool) {
	_ = s.mutate(func(st *ViewerState) error {
		if visible && st.BackdropKey == "" {
			return nil
		}
		st.BackdropVisible = visible
		return nil
	})
}

// SetBackdropBrightness sets backdrop brightness in percent, clamped to
// [0, 200].
func (s *Store) SetBackdropBrightness(v float64) {
	_ = s.mutate(func(st *ViewerState) error {
		st.BackdropBrightness = clamp(v, 0, 200)
		return nil
	})
}

// SetBackdropSaturation sets backdrop saturation in percent, clamped to
// [0, 100].
func (s *Store) SetBackdropSaturation(v float64) {
	_ = s.mutate(func(st *ViewerState) error {
		st.BackdropSaturation = clamp(v, 0, 100)
		return nil
	})
}

// SetObjectOpacity sets the opacity of colorized objects over the
// backdrop in percent, clamped to [0, 100].
func (s *Store) SetObjectOpacity(v float64) {
	_ = s.mutate(func(st *ViewerState) error {
		st.ObjectOpacity = clamp(v, 0, 100)
		return nil
	})
}
