// Package config handles loading and saving tlc configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/tlc/config.yaml
//   - Data:    ~/.local/share/tlc/ (saved views database)
//   - State:   ~/.local/state/tlc/ (recent datasets)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Collection registers a dataset collection by name.
type Collection struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// PlaybackConfig holds playback preference settings.
type PlaybackConfig struct {
	FPS  float64 `yaml:"fps,omitempty"`  // Default playback rate
	Loop bool    `yaml:"loop,omitempty"` // Restart at frame 0 after the last frame
}

// WatchConfig controls manifest watching.
type WatchConfig struct {
	Enabled      bool   `yaml:"enabled,omitempty"`
	PollInterval string `yaml:"poll_interval,omitempty"` // Go duration, polling fallback only
}

// Config is the top-level configuration for tlc.
type Config struct {
	Collections       []Collection   `yaml:"collections,omitempty"`
	DefaultCollection string         `yaml:"default_collection,omitempty"`
	DefaultDataset    string         `yaml:"default_dataset,omitempty"`
	Playback          PlaybackConfig `yaml:"playback,omitempty"`
	Watch             WatchConfig    `yaml:"watch,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Playback: PlaybackConfig{
			FPS: 10,
		},
	}
}

// ConfigDir returns the XDG config directory for tlc.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tlc")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tlc")
}

// DataDir returns the XDG data directory for tlc.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "tlc")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "tlc")
}

// StateDir returns the XDG state directory for tlc.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "tlc")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "tlc")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// ViewsPath returns the full path to the saved views database.
func ViewsPath() string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "views.db")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Playback.FPS <= 0 {
		cfg.Playback.FPS = DefaultConfig().Playback.FPS
	}

	// Expand ~ in collection paths
	for i := range cfg.Collections {
		cfg.Collections[i].Path = expandHome(cfg.Collections[i].Path)
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// FindCollection returns the collection with the given name, or nil.
func (c Config) FindCollection(name string) *Collection {
	for i := range c.Collections {
		if strings.EqualFold(c.Collections[i].Name, name) {
			return &c.Collections[i]
		}
	}
	return nil
}

// ResolvedPath returns the collection path with ~ expanded.
func (c Collection) ResolvedPath() string {
	return expandHome(c.Path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
