// Package config loads the aggregator's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// DataDir holds the per-source CSV tables and the master table.
	DataDir string `yaml:"data_dir"`

	// MasterFile is the master table filename inside DataDir.
	MasterFile string `yaml:"master_file"`

	// WindowDays is the rolling window recurring rules are expanded over.
	WindowDays int `yaml:"window_days"`

	// PastHorizonDays tunes year inference for year-less dates: a resolved
	// date more than this many days in the past rolls forward one year.
	PastHorizonDays int `yaml:"past_horizon_days"`

	// HTTPTimeoutSeconds bounds each page fetch.
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`

	// UserAgent identifies the scraper to source sites.
	UserAgent string `yaml:"user_agent"`

	// Disabled lists source names to skip without removing their adapters.
	Disabled []string `yaml:"disabled"`
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		DataDir:            "~/.local/share/artlinks",
		MasterFile:         "events.csv",
		WindowDays:         90,
		PastHorizonDays:    270,
		HTTPTimeoutSeconds: 30,
	}
}

// Load reads a YAML config file, layering it over Default. A missing file
// yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = Default().WindowDays
	}
	if cfg.PastHorizonDays <= 0 {
		cfg.PastHorizonDays = Default().PastHorizonDays
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = Default().HTTPTimeoutSeconds
	}
	return cfg, nil
}

// SourceEnabled reports whether a source should run.
func (c *Config) SourceEnabled(name string) bool {
	for _, d := range c.Disabled {
		if d == name {
			return false
		}
	}
	return true
}
