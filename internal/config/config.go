// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all interestform configuration.
type Config struct {
	Store   Store   `yaml:"store"`
	Display Display `yaml:"display"`
	Log     Log     `yaml:"log"`
}

// Store holds record file settings.
type Store struct {
	Path string `yaml:"path"`
}

// Display holds console rendering settings.
type Display struct {
	Color       bool `yaml:"color"`        // ANSI colors in both renditions
	ClearScreen bool `yaml:"clear_screen"` // Redraw from a clear screen before each menu
}

// Log holds diagnostic logging settings.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Empty disables diagnostic logging
}

// validLogLevels lists the levels accepted by log.level.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Store: Store{
			Path: "contacts.txt",
		},
		Display: Display{
			Color:       true,
			ClearScreen: true,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files and empty paths are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("config: store.path cannot be empty")
	}
	level := strings.ToLower(c.Log.Level)
	for _, valid := range validLogLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("config: log.level must be one of %s, got %q",
		strings.Join(validLogLevels, ", "), c.Log.Level)
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: INTERESTFORM_FILE, INTERESTFORM_COLOR,
// INTERESTFORM_LOG_LEVEL, INTERESTFORM_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("INTERESTFORM_FILE"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("INTERESTFORM_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid INTERESTFORM_COLOR %q: %w", v, err)
		}
		c.Display.Color = b
	}
	if v := os.Getenv("INTERESTFORM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("INTERESTFORM_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Store   *rawStore   `yaml:"store"`
	Display *rawDisplay `yaml:"display"`
	Log     *rawLog     `yaml:"log"`
}

type rawStore struct {
	Path *string `yaml:"path"`
}

type rawDisplay struct {
	Color       *bool `yaml:"color"`
	ClearScreen *bool `yaml:"clear_screen"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Store != nil && layer.Store.Path != nil {
		c.Store.Path = *layer.Store.Path
	}
	if layer.Display != nil {
		if layer.Display.Color != nil {
			c.Display.Color = *layer.Display.Color
		}
		if layer.Display.ClearScreen != nil {
			c.Display.ClearScreen = *layer.Display.ClearScreen
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
