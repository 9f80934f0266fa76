// Package dataset provides read access to timelapse colorizer datasets:
// per-object feature arrays, track assignments, backdrop images and
// channel metadata, loaded from the manifest format written by the data
// conversion scripts.
//
// A Dataset is immutable once constructed. Consumers compare datasets by
// reference identity (pointer equality), not by content; two loads of the
// same directory yield distinct datasets.
package dataset

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// FeatureType classifies how a feature's values should be interpreted.
type FeatureType string

const (
	// FeatureContinuous is a real-valued measurement (volume, height, ...).
	FeatureContinuous FeatureType = "continuous"
	// FeatureDiscrete is an integer-valued measurement.
	FeatureDiscrete FeatureType = "discrete"
	// FeatureCategorical maps integer values to named categories.
	FeatureCategorical FeatureType = "categorical"
)

// FeatureData holds one feature column and its schema.
type FeatureData struct {
	Key  string
	Name string
	Type FeatureType
	Unit string
	// Min and Max are the natural bounds of the data, excluding NaNs.
	Min float64
	Max float64
	// Categories is the ordered category label list. Only set for
	// categorical features; a value v belongs to Categories[int(v)].
	Categories []string
	// Data holds one value per object, indexed by object ID.
	Data []float64
}

// Backdrop describes one backdrop image set.
type Backdrop struct {
	Key  string
	Name string
}

// Def is the input to New. Loaders fill it from a manifest; tests fill it
// directly.
type Def struct {
	Key string
	// Features in display order. Keys must be unique.
	Features []FeatureData
	// TrackOf maps object index to track ID. Length must equal the
	// object count, or be empty when there is no tracking data.
	TrackOf []int
	// TimeOf maps object index to frame index. Optional.
	TimeOf []int
	// Outliers flags objects excluded from analysis. Optional.
	Outliers []bool
	// Centroids holds flattened per-object centroid coordinates: object
	// i sits at (Centroids[2i], Centroids[2i+1]), in pixels of the
	// source imagery. Optional.
	Centroids []int
	// Bounds holds flattened per-object bounding boxes: object i spans
	// (Bounds[4i], Bounds[4i+1]) to (Bounds[4i+2], Bounds[4i+3]).
	// Optional.
	Bounds []int
	// Backdrops in display order. The first entry is the default.
	Backdrops []Backdrop
	Channels  int
	Frames    int
}

// Dataset is an immutable, identity-comparable view of one loaded dataset.
type Dataset struct {
	key         string
	featureKeys []string
	features    map[string]*FeatureData
	trackOf     []int
	timeOf      []int
	outliers    []bool
	centroids   []int
	boundsOf    []int
	backdrops   []Backdrop
	channels    int
	frames      int
	numObjects  int

	tracks map[int]*Track
}

// Track is the set of objects sharing one track ID, ordered by frame.
type Track struct {
	ID int
	// ObjectIDs are the object indices belonging to this track.
	ObjectIDs []int
	// Times holds the frame index of each object, parallel to ObjectIDs.
	Times []int
}

// New validates a Def and builds a Dataset from it.
func New(def Def) (*Dataset, error) {
	if len(def.Features) == 0 {
		return nil, fmt.Errorf("dataset %q: no features", def.Key)
	}

	n := len(def.Features[0].Data)
	ds := &Dataset{
		key:        def.Key,
		features:   make(map[string]*FeatureData, len(def.Features)),
		channels:   def.Channels,
		frames:     def.Frames,
		numObjects: n,
	}

	for i := range def.Features {
		f := def.Features[i]
		if f.Key == "" {
			return nil, fmt.Errorf("dataset %q: feature %d has no key", def.Key, i)
		}
		if _, dup := ds.features[f.Key]; dup {
			return nil, fmt.Errorf("dataset %q: duplicate feature key %q", def.Key, f.Key)
		}
		if len(f.Data) != n {
			return nil, fmt.Errorf("dataset %q: feature %q has %d values, want %d", def.Key, f.Key, len(f.Data), n)
		}
		if f.Type == "" {
			f.Type = FeatureContinuous
		}
		if f.Type == FeatureCategorical && len(f.Categories) == 0 {
			return nil, fmt.Errorf("dataset %q: categorical feature %q has no categories", def.Key, f.Key)
		}
		if f.Min == 0 && f.Max == 0 {
			f.Min, f.Max = bounds(f.Data)
		}
		ds.featureKeys = append(ds.featureKeys, f.Key)
		fc := f
		ds.features[f.Key] = &fc
	}

	if len(def.TrackOf) != 0 && len(def.TrackOf) != n {
		return nil, fmt.Errorf("dataset %q: track list has %d entries, want %d", def.Key, len(def.TrackOf), n)
	}
	if len(def.TimeOf) != 0 && len(def.TimeOf) != n {
		return nil, fmt.Errorf("dataset %q: time list has %d entries, want %d", def.Key, len(def.TimeOf), n)
	}
	if len(def.Outliers) != 0 && len(def.Outliers) != n {
		return nil, fmt.Errorf("dataset %q: outlier list has %d entries, want %d", def.Key, len(def.Outliers), n)
	}
	if len(def.Centroids) != 0 && len(def.Centroids) != 2*n {
		return nil, fmt.Errorf("dataset %q: centroid list has %d values, want %d", def.Key, len(def.Centroids), 2*n)
	}
	if len(def.Bounds) != 0 && len(def.Bounds) != 4*n {
		return nil, fmt.Errorf("dataset %q: bounds list has %d values, want %d", def.Key, len(def.Bounds), 4*n)
	}
	ds.trackOf = def.TrackOf
	ds.timeOf = def.TimeOf
	ds.outliers = def.Outliers
	ds.centroids = def.Centroids
	ds.boundsOf = def.Bounds
	ds.backdrops = def.Backdrops

	if ds.frames == 0 && len(ds.timeOf) > 0 {
		maxFrame := 0
		for _, t := range ds.timeOf {
			if t > maxFrame {
				maxFrame = t
			}
		}
		ds.frames = maxFrame + 1
	}

	ds.buildTracks()
	return ds, nil
}

// bounds returns the min and max of data, skipping NaNs.
func bounds(data []float64) (float64, float64) {
	clean := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return 0, 0
	}
	return floats.Min(clean), floats.Max(clean)
}

func (ds *Dataset) buildTracks() {
	ds.tracks = make(map[int]*Track)
	for i, id := range ds.trackOf {
		tr := ds.tracks[id]
		if tr == nil {
			tr = &Track{ID: id}
			ds.tracks[id] = tr
		}
		tr.ObjectIDs = append(tr.ObjectIDs, i)
		if len(ds.timeOf) > 0 {
			tr.Times = append(tr.Times, ds.timeOf[i])
		}
	}
	for _, tr := range ds.tracks {
		if len(tr.Times) == len(tr.ObjectIDs) {
			sortTrackByTime(tr)
		}
	}
}

func sortTrackByTime(tr *Track) {
	idx := make([]int, len(tr.ObjectIDs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return tr.Times[idx[a]] < tr.Times[idx[b]] })
	objs := make([]int, len(idx))
	times := make([]int, len(idx))
	for i, j := range idx {
		objs[i] = tr.ObjectIDs[j]
		times[i] = tr.Times[j]
	}
	tr.ObjectIDs = objs
	tr.Times = times
}

// Key returns the dataset key (usually the directory name).
func (ds *Dataset) Key() string { return ds.key }

// NumObjects returns the per-frame object count N. All per-object arrays
// exposed by the dataset have this length.
func (ds *Dataset) NumObjects() int { return ds.numObjects }

// Frames returns the number of frames in the timelapse.
func (ds *Dataset) Frames() int { return ds.frames }

// Channels returns the channel count of the source imagery.
func (ds *Dataset) Channels() int { return ds.channels }

// FeatureKeys returns the feature keys in display order.
func (ds *Dataset) FeatureKeys() []string {
	keys := make([]string, len(ds.featureKeys))
	copy(keys, ds.featureKeys)
	return keys
}

// HasFeatureKey reports whether key names a feature in this dataset.
func (ds *Dataset) HasFeatureKey(key string) bool {
	_, ok := ds.features[key]
	return ok
}

// FeatureData returns the feature column for key, or nil if absent.
// The returned struct and its slices must not be modified.
func (ds *Dataset) FeatureData(key string) *FeatureData {
	return ds.features[key]
}

// Track returns the track with the given ID, or nil if no object belongs
// to it.
func (ds *Dataset) Track(id int) *Track { return ds.tracks[id] }

// TrackOf returns the track ID owning object i, or -1 when the dataset
// has no tracking data.
func (ds *Dataset) TrackOf(i int) int {
	if len(ds.trackOf) == 0 || i < 0 || i >= len(ds.trackOf) {
		return -1
	}
	return ds.trackOf[i]
}

// TimeOf returns the frame index of object i, or -1 when unknown.
func (ds *Dataset) TimeOf(i int) int {
	if len(ds.timeOf) == 0 || i < 0 || i >= len(ds.timeOf) {
		return -1
	}
	return ds.timeOf[i]
}

// Centroid returns the centroid of object i in source-image pixels.
// ok is false when the dataset has no centroid data or i is out of range.
func (ds *Dataset) Centroid(i int) (x, y int, ok bool) {
	if i < 0 || 2*i+1 >= len(ds.centroids) {
		return 0, 0, false
	}
	return ds.centroids[2*i], ds.centroids[2*i+1], true
}

// BoundingBox returns the bounding box of object i: the upper-left
// corner (minX, minY) and lower-right corner (maxX, maxY), in
// source-image pixels. ok is false when the dataset has no bounds data
// or i is out of range.
func (ds *Dataset) BoundingBox(i int) (minX, minY, maxX, maxY int, ok bool) {
	if i < 0 || 4*i+3 >= len(ds.boundsOf) {
		return 0, 0, 0, 0, false
	}
	return ds.boundsOf[4*i], ds.boundsOf[4*i+1], ds.boundsOf[4*i+2], ds.boundsOf[4*i+3], true
}

// IsOutlier reports whether object i is flagged as an outlier.
func (ds *Dataset) IsOutlier(i int) bool {
	return len(ds.outliers) > 0 && i >= 0 && i < len(ds.outliers) && ds.outliers[i]
}

// Backdrops returns the backdrop list in display order.
func (ds *Dataset) Backdrops() []Backdrop {
	out := make([]Backdrop, len(ds.backdrops))
	copy(out, ds.backdrops)
	return out
}

// HasBackdrop reports whether key names a backdrop in this dataset.
func (ds *Dataset) HasBackdrop(key string) bool {
	for _, b := range ds.backdrops {
		if b.Key == key {
			return true
		}
	}
	return false
}

// DefaultBackdropKey returns the first backdrop key, or "" when the
// dataset has no backdrops.
func (ds *Dataset) DefaultBackdropKey() string {
	if len(ds.backdrops) == 0 {
		return ""
	}
	return ds.backdrops[0].Key
}
