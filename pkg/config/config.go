// Package config loads the layered nomofobia configuration: built-in
// defaults, then an optional YAML file, then NOMOFOBIA_* environment
// variables. Command-line flags are applied by the caller on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kraitsura/nomofobia/pkg/model"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NOMOFOBIA_"

// ErrUnknownVariant is returned by Validate for an unrecognized variant.
var ErrUnknownVariant = errors.New("unknown variant")

// Config is the resolved configuration.
type Config struct {
	Variant   string `yaml:"variant" koanf:"variant"`
	Content   string `yaml:"content" koanf:"content"` // empty means the built-in guide
	Watch     bool   `yaml:"watch" koanf:"watch"`
	AltScreen bool   `yaml:"alt_screen" koanf:"alt_screen"`
	LogFile   string `yaml:"log_file" koanf:"log_file"` // "-" discards
	LogLevel  string `yaml:"log_level" koanf:"log_level"`
	// Lookahead and Threshold override the variant's constants when non-zero.
	Lookahead int    `yaml:"lookahead" koanf:"lookahead"`
	Threshold int    `yaml:"threshold" koanf:"threshold"`
	ServeAddr string `yaml:"serve_addr" koanf:"serve_addr"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Variant:   string(model.DefaultVariant),
		AltScreen: true,
		LogLevel:  "info",
		ServeAddr: "127.0.0.1:8421",
	}
}

// DefaultPath returns ~/.config/nomofobia/config.yaml, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nomofobia", "config.yaml")
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (NOMOFOBIA_*). A missing file is not an
// error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// NOMOFOBIA_LOG_LEVEL -> log_level, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !model.Variant(c.Variant).IsValid() {
		return fmt.Errorf("%w %q: must be one of clasica, moderna, consciente", ErrUnknownVariant, c.Variant)
	}
	if c.LogLevel != "" && !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	if c.Lookahead < 0 || c.Threshold < 0 {
		return fmt.Errorf("lookahead and threshold must be non-negative")
	}
	if c.Watch && c.Content == "" {
		return fmt.Errorf("watch requires a content file")
	}
	return nil
}

// Profile returns the variant profile with any configured overrides applied.
func (c *Config) Profile() model.Profile {
	p := model.Variant(c.Variant).Profile()
	if c.Lookahead > 0 {
		p.Lookahead = c.Lookahead
	}
	if c.Threshold > 0 {
		p.Threshold = c.Threshold
	}
	return p
}
