package viewerstate

import (
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/dataset"
)

// SetCollection replaces the current collection. Feature semantics may
// differ between collections, so the collection-change reaction clears
// thresholds and resets channel settings.
func (s *Store) SetCollection(c *dataset.Collection) {
	_ = s.mutate(func(st *ViewerState) error {
		st.Collection = c
		return nil
	})
}

// SetDataset installs a loaded dataset under the given key and runs the
// full validation cascade: feature key, backdrop, tracks, channels,
// scatter axes, thresholds and the derived lookup tables are all
// reconciled against the new schema.
func (s *Store) SetDataset(key string, ds *dataset.Dataset) error {
	if ds == nil {
		return validationErrorf("dataset", "dataset is nil; use ClearDataset")
	}
	s.setDataset(key, ds)
	return nil
}

func (s *Store) setDataset(key string, ds *dataset.Dataset) {
	_ = s.mutate(func(st *ViewerState) error {
		st.Dataset = ds
		st.DatasetKey = key
		return nil
	})
}

// ClearDataset removes the current dataset. Every dataset-dependent
// field and derived array is nulled by the dataset-change reaction.
func (s *Store) ClearDataset() {
	_ = s.mutate(func(st *ViewerState) error {
		st.Dataset = nil
		st.DatasetKey = ""
		return nil
	})
}
