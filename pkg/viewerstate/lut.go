package viewerstate

import (
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/metrics"
)

// recomputeInRange rebuilds the per-object threshold pass table: a
// logical AND across all thresholds. With no thresholds every object is
// in range. Objects flagged as outliers by the dataset fail the table
// like any threshold miss. The slice is freshly allocated so held
// snapshots stay valid.
func recomputeInRange(st *ViewerState) {
	defer metrics.Timer(metrics.InRangeRecompute)()

	ds := st.Dataset
	if ds == nil {
		st.InRange = nil
		return
	}

	n := ds.NumObjects()
	out := make([]bool, n)
	for i := range out {
		out[i] = !ds.IsOutlier(i)
	}

	for _, th := range st.Thresholds {
		f := ds.FeatureData(th.FeatureKey)
		if f == nil {
			// Thresholds are validated against the dataset before they
			// are stored, so this only guards reaction ordering bugs.
			continue
		}
		for i := 0; i < n; i++ {
			if out[i] && !th.Matches(f.Data[i]) {
				out[i] = false
			}
		}
	}
	st.InRange = out
}

// recomputeSelected rebuilds the per-object track highlight table: the
// owning track's color slot plus one, or 0 for unselected objects.
func recomputeSelected(st *ViewerState) {
	defer metrics.Timer(metrics.TrackRecompute)()

	ds := st.Dataset
	if ds == nil {
		st.SelectedLUT = nil
		return
	}

	out := make([]int, ds.NumObjects())
	for _, id := range st.TrackIDs {
		tr := ds.Track(id)
		if tr == nil {
			continue
		}
		slot := st.TrackColorSlot[id]
		for _, obj := range tr.ObjectIDs {
			if obj >= 0 && obj < len(out) {
				out[obj] = slot + 1
			}
		}
	}
	st.SelectedLUT = out
}
