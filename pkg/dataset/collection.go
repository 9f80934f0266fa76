package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// CollectionName is the file that identifies a collection directory.
const CollectionName = "collection.json"

// CollectionEntry names one dataset inside a collection.
type CollectionEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Collection groups related datasets that can be swapped in the viewer.
// Like Dataset it is identity-comparable: consumers track collection
// changes by pointer, not by content.
type Collection struct {
	sourcePath string
	entries    []CollectionEntry
	defaultKey string
	onDispose  func()
}

// collectionFile supports both formats written over time: a bare entry
// array, and an object with a datasets list plus metadata.
type collectionFile struct {
	Datasets []CollectionEntry `json:"datasets"`
	Metadata struct {
		DefaultDataset string `json:"defaultDataset,omitempty"`
	} `json:"metadata"`
}

// LoadCollection reads a collection.json from path, which may be the file
// itself or a directory containing it.
func LoadCollection(path string) (*Collection, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, CollectionName)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}

	var entries []CollectionEntry
	defaultKey := ""
	var cf collectionFile
	if err := json.Unmarshal(raw, &cf); err == nil && len(cf.Datasets) > 0 {
		entries = cf.Datasets
		defaultKey = cf.Metadata.DefaultDataset
	} else if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing collection: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("collection %s lists no datasets", path)
	}
	if defaultKey == "" {
		defaultKey = entries[0].Name
	}

	return &Collection{
		sourcePath: path,
		entries:    entries,
		defaultKey: defaultKey,
	}, nil
}

// NewCollection builds a collection directly; used by tests and by
// single-dataset loads that wrap the dataset in an implicit collection.
func NewCollection(sourcePath string, entries []CollectionEntry, defaultKey string) *Collection {
	if defaultKey == "" && len(entries) > 0 {
		defaultKey = entries[0].Name
	}
	return &Collection{sourcePath: sourcePath, entries: entries, defaultKey: defaultKey}
}

// SourcePath returns the path the collection was loaded from.
func (c *Collection) SourcePath() string { return c.sourcePath }

// DefaultDatasetKey returns the dataset shown when none is requested.
func (c *Collection) DefaultDatasetKey() string { return c.defaultKey }

// Entries returns the dataset list in declaration order.
func (c *Collection) Entries() []CollectionEntry {
	out := make([]CollectionEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// DatasetPath resolves the directory of the named dataset, relative to
// the collection file. Returns "" when the name is unknown.
func (c *Collection) DatasetPath(name string) string {
	for _, e := range c.entries {
		if e.Name == name {
			if filepath.IsAbs(e.Path) {
				return e.Path
			}
			return filepath.Join(filepath.Dir(c.sourcePath), e.Path)
		}
	}
	return ""
}

// SetDisposer registers a hook invoked by Dispose, used to release
// resources held by the loading pipeline.
func (c *Collection) SetDisposer(fn func()) { c.onDispose = fn }

// Dispose runs the registered disposal hook, if any.
func (c *Collection) Dispose() {
	if c.onDispose != nil {
		c.onDispose()
	}
}
