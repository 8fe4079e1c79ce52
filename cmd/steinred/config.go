package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/steinred/eps"
)

// settings is the YAML settings file. Command-line flags override it.
type settings struct {
	// Tolerance for floating-point cost comparisons.
	Tolerance float64 `yaml:"tolerance"`
	// Rounds caps the number of reduction sweeps; each sweep runs every
	// test once and stops early when nothing was eliminated.
	Rounds int `yaml:"rounds"`
	// Pack densifies the graph after reduction, dropping dead slots.
	Pack bool `yaml:"pack"`
}

func defaultSettings() settings {
	return settings{
		Tolerance: eps.DefaultTolerance,
		Rounds:    10,
		Pack:      true,
	}
}

// loadSettings reads path, or returns the defaults when path is empty.
func loadSettings(path string) (settings, error) {
	cfg := defaultSettings()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = eps.DefaultTolerance
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = defaultSettings().Rounds
	}
	return cfg, nil
}
