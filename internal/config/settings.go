// Package config loads persistent CLI defaults from the funcbridge
// settings file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds persistent CLI defaults loaded from a config file.
type Settings struct {
	HistoryDB string `yaml:"history_db"` // invocation history database path
	IntakeDir string `yaml:"intake_dir"` // watch-mode intake directory
	StateDir  string `yaml:"state_dir"`  // watch-mode working state directory
	TUI       string `yaml:"tui"`        // watch-mode display: "live" or "off"

	// Component spec files bound to registered functions at startup
	Specs []string `yaml:"specs,omitempty"`
}

// LoadSettings reads a YAML config file into Settings.
// If the file does not exist, it returns zero-value Settings and nil error.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &s, nil
}
