package viewerstate

import (
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/dataset"
)

// The derived-state engine: a fixed list of (project, react) pairs run
// after every mutation. Each projection returns a small comparable value;
// its reaction fires only when the value changed. Ordering is an
// explicit, declared priority rather than registration order, and the
// reaction graph is a DAG:
//
//	Collection -> Dataset -> {feature, thresholds, tracks, channels,
//	backdrop, scatter} -> color ramp range, lookup tables
//
// Reactions write state directly (never through public mutators), so a
// reaction can never re-enter the cascade; downstream changes are picked
// up by later subscriptions in the same run.

// Projection tuples. These must stay comparable.
type collectionProj struct {
	collection *dataset.Collection
}

type datasetProj struct {
	ds *dataset.Dataset
}

type rampRangeProj struct {
	featureKey string
	// Bounds of the active numeric threshold for the feature, if any.
	hasThreshold bool
	thMin, thMax float64
}

type inRangeProj struct {
	ds  *dataset.Dataset
	rev uint64
}

type selectedProj struct {
	ds  *dataset.Dataset
	rev uint64
}

func (s *Store) registerSubscriptions() {
	s.subs = []*subscription{
		{
			name:     "collection",
			priority: 5,
			project: func(st *ViewerState) any {
				return collectionProj{collection: st.Collection}
			},
			react: reactCollectionChanged,
		},
		{
			name:     "dataset",
			priority: 10,
			project: func(st *ViewerState) any {
				return datasetProj{ds: st.Dataset}
			},
			react: reactDatasetChanged,
		},
		{
			name:     "ramp-range",
			priority: 20,
			project: func(st *ViewerState) any {
				return projectRampRange(st)
			},
			react: reactRampRange,
		},
		{
			name:     "in-range",
			priority: 30,
			project: func(st *ViewerState) any {
				return inRangeProj{ds: st.Dataset, rev: st.thresholdRev}
			},
			react: func(s *Store, _, _ any) { recomputeInRange(&s.state) },
		},
		{
			name:     "selected",
			priority: 40,
			project: func(st *ViewerState) any {
				return selectedProj{ds: st.Dataset, rev: st.trackRev}
			},
			react: func(s *Store, _, _ any) { recomputeSelected(&s.state) },
		},
	}
	sortSubscriptions(s.subs)
}

func sortSubscriptions(subs []*subscription) {
	// Insertion sort keeps equal priorities in declaration order.
	for i := 1; i < len(subs); i++ {
		for j := i; j > 0 && subs[j-1].priority > subs[j].priority; j-- {
			subs[j-1], subs[j] = subs[j], subs[j-1]
		}
	}
}

// reactCollectionChanged clears thresholds and resets channel settings:
// feature semantics may differ across datasets in a collection, so
// filters authored for one do not carry to another.
func reactCollectionChanged(s *Store, _, _ any) {
	st := &s.state
	st.Thresholds = nil
	st.thresholdRev++
	st.Channels = defaultChannels(len(st.Channels))
}

// reactDatasetChanged reconciles every schema-referencing slice with the
// new dataset. Fires on identity change only, including nil transitions.
func reactDatasetChanged(s *Store, _, cur any) {
	st := &s.state
	ds := cur.(datasetProj).ds

	// Track selections never survive a dataset identity change.
	s.clearTracksLocked(st)

	if ds == nil {
		st.FeatureKey = ""
		st.BackdropKey = ""
		st.BackdropVisible = false
		st.Channels = nil
		if st.ScatterXAxis != TimeFeatureKey {
			st.ScatterXAxis = ""
		}
		if st.ScatterYAxis != TimeFeatureKey {
			st.ScatterYAxis = ""
		}
		st.CurrentFrame = 0
		st.PendingFrame = 0
		return
	}

	// Feature key: keep when still valid, else the dataset's first
	// feature.
	if st.FeatureKey == "" || !ds.HasFeatureKey(st.FeatureKey) {
		st.FeatureKey = ds.FeatureKeys()[0]
	}

	// Backdrop: keep when still valid, else the dataset default; force
	// visibility off when there is none.
	if st.BackdropKey == "" || !ds.HasBackdrop(st.BackdropKey) {
		st.BackdropKey = ds.DefaultBackdropKey()
	}
	if st.BackdropKey == "" {
		st.BackdropVisible = false
	}

	resizeChannels(st, ds.Channels())

	// Scatter axes: null any key absent from the new schema. The time
	// sentinel is always preserved.
	if st.ScatterXAxis != "" && st.ScatterXAxis != TimeFeatureKey && !ds.HasFeatureKey(st.ScatterXAxis) {
		st.ScatterXAxis = ""
	}
	if st.ScatterYAxis != "" && st.ScatterYAxis != TimeFeatureKey && !ds.HasFeatureKey(st.ScatterYAxis) {
		st.ScatterYAxis = ""
	}

	st.Thresholds = ValidateThresholds(ds, st.Thresholds)
	st.thresholdRev++

	// Frames: clamp into the new dataset's frame range.
	st.PendingFrame = clampFrame(st, st.PendingFrame)
	st.CurrentFrame = clampFrame(st, st.CurrentFrame)
}

// resizeChannels adjusts the settings list to the new channel count,
// preserving settings for channel indices that still exist and assigning
// defaults to new ones.
func resizeChannels(st *ViewerState, count int) {
	if len(st.Channels) == count {
		return
	}
	next := defaultChannels(count)
	for i := 0; i < len(st.Channels) && i < count; i++ {
		next[i] = st.Channels[i]
	}
	st.Channels = next
}

// projectRampRange watches the feature key and the bounds of the active
// numeric threshold for that feature. A change in either resets the
// color ramp range (unless the sticky keep flag is set); a dataset swap
// that leaves both untouched deliberately does not.
func projectRampRange(st *ViewerState) rampRangeProj {
	proj := rampRangeProj{featureKey: st.FeatureKey}
	for _, th := range st.Thresholds {
		if th.FeatureKey == st.FeatureKey && th.Type == ThresholdNumeric {
			proj.hasThreshold = true
			proj.thMin = th.Min
			proj.thMax = th.Max
			break
		}
	}
	return proj
}

func reactRampRange(s *Store, _, cur any) {
	st := &s.state
	if st.KeepColorRampRange {
		return
	}
	proj := cur.(rampRangeProj)
	switch {
	case proj.hasThreshold:
		st.ColorRampMin, st.ColorRampMax = proj.thMin, proj.thMax
	case st.Dataset != nil && st.FeatureKey != "":
		f := st.Dataset.FeatureData(st.FeatureKey)
		st.ColorRampMin, st.ColorRampMax = f.Min, f.Max
	default:
		st.ColorRampMin, st.ColorRampMax = 0, 1
	}
}
