package viewerstate

// SetScatterXAxis selects the scatter plot X axis: "", TimeFeatureKey, or
// a feature key of the current dataset.
func (s *Store) SetScatterXAxis(key string) error {
	return s.mutate(func(st *ViewerState) error {
		if err := validateAxis(st, key); err != nil {
			return err
		}
		st.ScatterXAxis = key
		return nil
	})
}

// SetScatterYAxis selects the scatter plot Y axis.
func (s *Store) SetScatterYAxis(key string) error {
	return s.mutate(func(st *ViewerState) error {
		if err := validateAxis(st, key); err != nil {
			return err
		}
		st.ScatterYAxis = key
		return nil
	})
}

// SetScatterRangeType selects which objects the scatter plot spans.
func (s *Store) SetScatterRangeType(t ScatterRangeType) error {
	return s.mutate(func(st *ViewerState) error {
		if !validScatterRange(t) {
			return validationErrorf("scatter range", "unknown range type %q", t)
		}
		st.ScatterRangeType = t
		return nil
	})
}

func validateAxis(st *ViewerState, key string) error {
	if key == "" || key == TimeFeatureKey {
		return nil
	}
	if st.Dataset == nil {
		return validationErrorf("scatter axis", "no dataset loaded")
	}
	if !st.Dataset.HasFeatureKey(key) {
		return validationErrorf("scatter axis", "unknown feature key %q", key)
	}
	return nil
}
