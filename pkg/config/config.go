// Package config provides configuration loading and management for roistats.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the tool configuration loaded from YAML. It covers the
// driver-facing knobs only: the population-normalization constants and the
// confidence multiplier baked into the radius feature are fixed, because
// downstream classifiers were trained against those exact values.
type Config struct {
	// Scale holds the default pixel-to-physical conversion factors, used
	// when the input batch document does not carry its own.
	Scale struct {
		// Dy is the physical size of a pixel along the row axis.
		Dy float64 `yaml:"dy"`

		// Dx is the physical size of a pixel along the column axis.
		Dx float64 `yaml:"dx"`
	} `yaml:"scale"`

	// Ellipse controls the per-region Gaussian fit reported by the driver.
	Ellipse struct {
		// ThresholdStdDev is the confidence multiplier of the reported
		// ellipse, in standard deviations of the fitted Gaussian.
		ThresholdStdDev float64 `yaml:"thresholdStdDev"`

		// BoundaryPoints is the number of vertices used to trace the
		// ellipse contour.
		BoundaryPoints int `yaml:"boundaryPoints"`
	} `yaml:"ellipse"`

	// Output controls how the augmented batch is written back.
	Output struct {
		// Format selects the output encoding, "yaml" or "json".
		Format string `yaml:"format"`

		// Verbose enables per-region debug logging, including the
		// ellipse fit summary.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Scale.Dy = 1.0
	cfg.Scale.Dx = 1.0

	cfg.Ellipse.ThresholdStdDev = 2.5
	cfg.Ellipse.BoundaryPoints = 100

	cfg.Output.Format = "yaml"
	cfg.Output.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
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

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
