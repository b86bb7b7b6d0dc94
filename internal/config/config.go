// Package config loads CLI configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tool configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Graph    GraphConfig    `yaml:"graph"`
}

// DatabaseConfig selects where named definitions are stored. An empty
// path means definitions live in memory only.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// GraphConfig holds default plot window settings.
type GraphConfig struct {
	XMin   float64 `yaml:"xmin"`
	XMax   float64 `yaml:"xmax"`
	YMin   float64 `yaml:"ymin"`
	YMax   float64 `yaml:"ymax"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML configuration file, applies defaults for unset
// fields, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Graph.XMin == 0 && cfg.Graph.XMax == 0 {
		cfg.Graph.XMin = -10
		cfg.Graph.XMax = 10
	}
	if cfg.Graph.YMin == 0 && cfg.Graph.YMax == 0 {
		cfg.Graph.YMin = -10
		cfg.Graph.YMax = 10
	}
	if cfg.Graph.Width == 0 {
		cfg.Graph.Width = 80
	}
	if cfg.Graph.Height == 0 {
		cfg.Graph.Height = 25
	}
}

func validate(cfg *Config) error {
	if cfg.Graph.XMin >= cfg.Graph.XMax {
		return fmt.Errorf("graph xmin (%g) must be less than xmax (%g)", cfg.Graph.XMin, cfg.Graph.XMax)
	}
	if cfg.Graph.YMin >= cfg.Graph.YMax {
		return fmt.Errorf("graph ymin (%g) must be less than ymax (%g)", cfg.Graph.YMin, cfg.Graph.YMax)
	}
	if cfg.Graph.Width < 10 || cfg.Graph.Height < 5 {
		return fmt.Errorf("graph size %dx%d too small", cfg.Graph.Width, cfg.Graph.Height)
	}
	return nil
}
