// Package config provides configuration loading and management for segysak.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"segysak/pkg/segy"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Header byte locations
	Headers struct {
		// Preset names a well known layout such as standard_3d or petrel_3d.
		// Explicit byte locations below override the preset.
		Preset string `yaml:"preset"`

		Iline int `yaml:"iline"`
		Xline int `yaml:"xline"`
		CDPX  int `yaml:"cdpx"`
		CDPY  int `yaml:"cdpy"`
	} `yaml:"headers"`

	// Processing parameters
	Processing struct {
		// Workers is the number of goroutines used to read traces
		Workers int `yaml:"workers"`

		// MaxScanTraces limits how many trace headers scan reads; 0 reads all
		MaxScanTraces int `yaml:"maxScanTraces"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// JPEGQuality is the quality of slice previews, 1 to 100
		JPEGQuality int `yaml:"jpegQuality"`

		// Verbose enables info level logging
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Headers.Preset = "standard_3d"

	cfg.Processing.Workers = runtime.NumCPU()
	cfg.Processing.MaxScanTraces = 1000

	cfg.Output.JPEGQuality = 90
	cfg.Output.Verbose = false

	return cfg
}

// ByteLocs resolves the preset and explicit overrides to byte locations.
func (c *Config) ByteLocs() (segy.ByteLocs, error) {
	var locs segy.ByteLocs
	if c.Headers.Preset != "" {
		var err error
		if locs, err = segy.WellKnownByteLocs(c.Headers.Preset); err != nil {
			return locs, err
		}
	}

	for _, o := range []struct {
		v   int
		dst *segy.TraceField
	}{
		{c.Headers.Iline, &locs.Iline},
		{c.Headers.Xline, &locs.Xline},
		{c.Headers.CDPX, &locs.CDPX},
		{c.Headers.CDPY, &locs.CDPY},
	} {
		if o.v == 0 {
			continue
		}
		f := segy.TraceField(o.v)
		if !f.Valid() {
			return locs, fmt.Errorf("byte location %d is not a trace header field", o.v)
		}
		*o.dst = f
	}
	return locs, nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := atomic.WriteFile(configPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
