// Package config provides configuration loading and management for voxelgrid.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"voxelgrid/internal/models"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Volume describes the sampling geometry of the input volume
	Volume models.VolumeHeader `yaml:"volume"`

	// Grid parameters
	Grid struct {
		// AlignCorners selects whether the normalized domain extends to the
		// centers of the corner points or to the outer sample borders
		AlignCorners bool `yaml:"alignCorners"`
	} `yaml:"grid"`

	// Pyramid parameters
	Pyramid struct {
		// Levels is the number of resolution levels to derive
		Levels int `yaml:"levels"`

		// MinSize is the smallest allowed size per axis at any level
		MinSize int `yaml:"minSize"`
	} `yaml:"pyramid"`

	// Resample parameters
	Resample struct {
		// Spacing is the target spacing per axis; empty disables resampling
		Spacing []float64 `yaml:"spacing,omitempty"`

		// Isotropic resamples all axes to the smallest input spacing
		Isotropic bool `yaml:"isotropic"`
	} `yaml:"resample"`

	// Crop parameters
	Crop struct {
		// Margin is the number of points removed at both borders of each
		// axis; empty disables cropping
		Margin []int `yaml:"margin,omitempty"`
	} `yaml:"crop"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default volume geometry
	cfg.Volume.Size = []int{256, 256, 64}
	cfg.Volume.Spacing = []float64{1, 1, 1}

	// Set default grid parameters
	cfg.Grid.AlignCorners = true

	// Set default pyramid parameters
	cfg.Pyramid.Levels = 4
	cfg.Pyramid.MinSize = 0

	// Set default resample parameters
	cfg.Resample.Isotropic = false

	// Set default output parameters
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
