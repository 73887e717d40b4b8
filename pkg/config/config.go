// Package config provides configuration loading and management for
// pyramidblend. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Blend parameters
	Blend struct {
		// MaxLevels caps the number of pyramid levels built per image
		MaxLevels int `yaml:"maxLevels"`

		// FilterSizeImage is the odd blur kernel length used for the
		// two image pyramids
		FilterSizeImage int `yaml:"filterSizeImage"`

		// FilterSizeMask is the odd blur kernel length used for the
		// mask pyramid
		FilterSizeMask int `yaml:"filterSizeMask"`
	} `yaml:"blend"`

	// Processing parameters
	Processing struct {
		// NumWorkers specifies how many CPU cores to use for the
		// parallel convolution passes
		NumWorkers int `yaml:"numWorkers"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// RenderPyramids determines whether pyramid mosaics are saved
		// alongside the blended output
		RenderPyramids bool `yaml:"renderPyramids"`

		// MosaicDir is the directory pyramid mosaics are saved to
		MosaicDir string `yaml:"mosaicDir"`

		// MosaicLevels is how many pyramid levels each mosaic shows
		MosaicLevels int `yaml:"mosaicLevels"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default blend parameters
	cfg.Blend.MaxLevels = 10
	cfg.Blend.FilterSizeImage = 3
	cfg.Blend.FilterSizeMask = 3

	// Set default processing parameters
	cfg.Processing.NumWorkers = runtime.NumCPU() // Use all available cores by default

	// Set default output parameters
	cfg.Output.RenderPyramids = false
	cfg.Output.MosaicDir = "pyramid_mosaics"
	cfg.Output.MosaicLevels = 5
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
