// Package config provides configuration loading for tome.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (TOME_REVEAL_INTERVAL_MS, TOME_CONTENT_DIR, ...)
//  2. YAML config file (~/.config/tome/config.yaml by default)
//  3. Hardcoded defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/fennwick/tome/internal/content"
)

// Config is the full tome configuration tree.
type Config struct {
	Content ContentConfig `koanf:"content"`
	Reveal  RevealConfig  `koanf:"reveal"`
	Log     LogConfig     `koanf:"log"`
	Prefs   PrefsConfig   `koanf:"prefs"`
}

// ContentConfig selects the library and the starting locale.
type ContentConfig struct {
	// Dir is a library directory on disk. Empty selects the embedded
	// sample book.
	Dir string `koanf:"dir"`
	// Locale is the starting locale when no preference is stored.
	Locale string `koanf:"locale"`
}

// RevealConfig tunes the progressive reveal.
type RevealConfig struct {
	// IntervalMs is the delay between reveal steps, in milliseconds.
	IntervalMs int `koanf:"interval_ms"`
	// PanelMinWidth is the narrowest terminal, in columns, that still
	// shows annotations in a side panel. Below it they render inline.
	PanelMinWidth int `koanf:"panel_min_width"`
}

// LogConfig controls the debug log file. The TUI owns the terminal, so
// logs only ever go to a file.
type LogConfig struct {
	// Path is the log file location. Empty disables logging.
	Path  string `koanf:"path"`
	Level string `koanf:"level"`
}

// PrefsConfig locates the preferences database.
type PrefsConfig struct {
	Path string `koanf:"path"`
}

// Load reads the config file at configPath, overlays TOME_* environment
// variables, and fills defaults. An empty configPath uses the default
// location; a missing file is not an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config", "tome", "config.yaml")
	}

	if raw, err := os.ReadFile(configPath); err == nil {
		if err := k.Load(rawbytes.Provider(raw), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	// TOME_REVEAL_INTERVAL_MS -> reveal.interval_ms. The section is the
	// first underscore-delimited word; the rest is the field name.
	if err := k.Load(env.Provider("TOME_", ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, "TOME_"))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Content.Locale == "" {
		cfg.Content.Locale = string(content.LocaleEN)
	}
	if cfg.Reveal.IntervalMs == 0 {
		cfg.Reveal.IntervalMs = 18
	}
	if cfg.Reveal.PanelMinWidth == 0 {
		cfg.Reveal.PanelMinWidth = 110
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Prefs.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Prefs.Path = filepath.Join(home, ".config", "tome", "prefs.db")
		}
	}
}

// Validate rejects values the rest of the program cannot run with.
func (c *Config) Validate() error {
	if _, err := content.ParseLocale(c.Content.Locale); err != nil {
		return fmt.Errorf("content.locale: %w", err)
	}
	if c.Reveal.IntervalMs < 1 || c.Reveal.IntervalMs > 1000 {
		return fmt.Errorf("reveal.interval_ms must be in [1, 1000], got %d", c.Reveal.IntervalMs)
	}
	if c.Reveal.PanelMinWidth < 40 {
		return fmt.Errorf("reveal.panel_min_width must be at least 40, got %d", c.Reveal.PanelMinWidth)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	return nil
}
