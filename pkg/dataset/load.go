package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/debug"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/metrics"
)

// ManifestName is the file that identifies a dataset directory.
const ManifestName = "manifest.json"

// loadConcurrency bounds parallel feature file reads.
const loadConcurrency = 8

// manifest mirrors manifest.json as written by the data conversion
// scripts. Two feature encodings exist in the wild: the legacy
// name -> filename map, and the modern entry list carrying schema.
type manifest struct {
	Frames    []string           `json:"frames"`
	Features  json.RawMessage    `json:"features"`
	Tracks    string             `json:"tracks,omitempty"`
	Times     string             `json:"times,omitempty"`
	Outliers  string             `json:"outliers,omitempty"`
	Centroids string             `json:"centroids,omitempty"`
	Bounds    string             `json:"bounds,omitempty"`
	Backdrops []manifestBackdrop `json:"backdrops,omitempty"`
	Channels  int                `json:"channels,omitempty"`
}

type manifestFeature struct {
	Key        string   `json:"key"`
	Name       string   `json:"name,omitempty"`
	Data       string   `json:"data"`
	Unit       string   `json:"unit,omitempty"`
	Type       string   `json:"type,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Min        *float64 `json:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"`
}

type manifestBackdrop struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// featureFile is the payload of a feature_N.json file.
type featureFile struct {
	Data []float64 `json:"data"`
	Min  *float64  `json:"min,omitempty"`
	Max  *float64  `json:"max,omitempty"`
}

type intListFile struct {
	Data []int `json:"data"`
}

type boolListFile struct {
	Data []bool `json:"data"`
}

// Load reads the dataset stored in dir. The directory must contain a
// manifest.json; feature files referenced by it are loaded in parallel.
func Load(ctx context.Context, dir string) (*Dataset, error) {
	defer metrics.Timer(metrics.DatasetLoad)()
	start := time.Now()

	raw, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	entries, err := featureEntries(m.Features)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest features: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("manifest in %s lists no features", dir)
	}

	def := Def{
		Key:      filepath.Base(dir),
		Features: make([]FeatureData, len(entries)),
		Frames:   len(m.Frames),
		Channels: m.Channels,
	}
	if def.Channels == 0 {
		def.Channels = 1
	}
	for _, b := range m.Backdrops {
		name := b.Name
		if name == "" {
			name = b.Key
		}
		def.Backdrops = append(def.Backdrops, Backdrop{Key: b.Key, Name: name})
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)

	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := loadFeature(dir, entry)
			if err != nil {
				return err
			}
			def.Features[i] = f
			return nil
		})
	}
	g.Go(func() error {
		var err error
		def.TrackOf, err = loadIntList(dir, m.Tracks)
		return err
	})
	g.Go(func() error {
		var err error
		def.TimeOf, err = loadIntList(dir, m.Times)
		return err
	})
	g.Go(func() error {
		var err error
		def.Outliers, err = loadBoolList(dir, m.Outliers)
		return err
	})
	g.Go(func() error {
		var err error
		def.Centroids, err = loadIntList(dir, m.Centroids)
		return err
	})
	g.Go(func() error {
		var err error
		def.Bounds, err = loadIntList(dir, m.Bounds)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds, err := New(def)
	if err != nil {
		return nil, err
	}
	debug.Log("loaded dataset %s: %d objects, %d features, %d frames in %v",
		def.Key, ds.NumObjects(), len(entries), ds.Frames(), time.Since(start))
	return ds, nil
}

// featureEntries decodes either manifest feature encoding into the modern
// entry list, preserving order. The legacy map form is sorted by name to
// keep feature order deterministic.
func featureEntries(raw json.RawMessage) ([]manifestFeature, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []manifestFeature
	if err := json.Unmarshal(raw, &list); err == nil {
		for i := range list {
			if list[i].Key == "" {
				list[i].Key = list[i].Name
			}
			if list[i].Name == "" {
				list[i].Name = list[i].Key
			}
		}
		return list, nil
	}

	var legacy map[string]string
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(legacy))
	for name := range legacy {
		names = append(names, name)
	}
	sort.Strings(names)
	list = make([]manifestFeature, 0, len(names))
	for _, name := range names {
		list = append(list, manifestFeature{Key: name, Name: name, Data: legacy[name]})
	}
	return list, nil
}

func loadFeature(dir string, entry manifestFeature) (FeatureData, error) {
	raw, err := os.ReadFile(filepath.Join(dir, entry.Data))
	if err != nil {
		return FeatureData{}, fmt.Errorf("reading feature %q: %w", entry.Key, err)
	}
	var ff featureFile
	if err := json.Unmarshal(raw, &ff); err != nil {
		return FeatureData{}, fmt.Errorf("parsing feature %q: %w", entry.Key, err)
	}

	f := FeatureData{
		Key:        entry.Key,
		Name:       entry.Name,
		Unit:       entry.Unit,
		Type:       FeatureType(entry.Type),
		Categories: entry.Categories,
		Data:       ff.Data,
	}
	if f.Type == "" {
		if len(f.Categories) > 0 {
			f.Type = FeatureCategorical
		} else {
			f.Type = FeatureContinuous
		}
	}

	// Manifest bounds win over feature file bounds; both win over a scan.
	switch {
	case entry.Min != nil && entry.Max != nil:
		f.Min, f.Max = *entry.Min, *entry.Max
	case ff.Min != nil && ff.Max != nil:
		f.Min, f.Max = *ff.Min, *ff.Max
	default:
		f.Min, f.Max = bounds(ff.Data)
	}
	return f, nil
}

func loadIntList(dir, name string) ([]int, error) {
	if name == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	var f intListFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return f.Data, nil
}

func loadBoolList(dir, name string) ([]bool, error) {
	if name == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	var f boolListFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return f.Data, nil
}
