package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/model"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "tally.yaml"

// ColorMode controls coloured output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

// DisplayConfig controls how the widget is rendered.
type DisplayConfig struct {
	Currency   string    `yaml:"currency"`
	Color      ColorMode `yaml:"color"`
	TimeLayout string    `yaml:"time_layout"` // Go reference layout
}

// SessionConfig controls new-entry defaults.
type SessionConfig struct {
	DefaultKind model.Kind `yaml:"default_kind"`
	IDScheme    id.Scheme  `yaml:"id_scheme"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a tally.yaml file from disk. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Currency:   "$",
			Color:      ColorAuto,
			TimeLayout: "2/1/2006 15:04",
		},
		Session: SessionConfig{
			DefaultKind: model.KindIncome,
			IDScheme:    id.SchemeUUID,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("display.color: unknown mode %q", c.Display.Color)
	}
	if !c.Session.DefaultKind.Valid() {
		return fmt.Errorf("session.default_kind: unknown kind %q", c.Session.DefaultKind)
	}
	if _, err := id.New(c.Session.IDScheme); err != nil {
		return fmt.Errorf("session.id_scheme: %w", err)
	}
	return nil
}
