package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ContentKind tags which renderer owns a window's content area.
type ContentKind string

const (
	ContentTerminal    ContentKind = "terminal"
	ContentExplorer    ContentKind = "explorer"
	ContentBrowser     ContentKind = "browser"
	ContentEditor      ContentKind = "editor"
	ContentSpreadsheet ContentKind = "spreadsheet"
	ContentSettings    ContentKind = "settings"
	ContentMusic       ContentKind = "music"
	ContentText        ContentKind = "text"
)

// AppConfig describes one launchable application window. Immutable after
// load; windows hold a copy.
type AppConfig struct {
	Title     string      `yaml:"title"`
	Width     int         `yaml:"width"`
	Height    int         `yaml:"height"`
	MinWidth  int         `yaml:"min_width"`
	MinHeight int         `yaml:"min_height"`
	Resizable *bool       `yaml:"resizable,omitempty"`
	Content   ContentKind `yaml:"content"`
}

// IsResizable returns the effective value, defaulting to true.
func (a AppConfig) IsResizable() bool {
	if a.Resizable == nil {
		return true
	}
	return *a.Resizable
}

// Normalized returns a copy with defensive corrections applied: zero or
// negative dimensions fall back to defaults, and a default size smaller than
// the minimum is widened to the minimum rather than rejected.
func (a AppConfig) Normalized() AppConfig {
	if a.Width <= 0 {
		a.Width = DefaultWindowWidth
	}
	if a.Height <= 0 {
		a.Height = DefaultWindowHeight
	}
	if a.MinWidth <= 0 {
		a.MinWidth = DefaultMinWidth
	}
	if a.MinHeight <= 0 {
		a.MinHeight = DefaultMinHeight
	}
	if a.Width < a.MinWidth {
		a.Width = a.MinWidth
	}
	if a.Height < a.MinHeight {
		a.Height = a.MinHeight
	}
	return a
}

const (
	DefaultWindowWidth  = 60
	DefaultWindowHeight = 18
	DefaultMinWidth     = 20
	DefaultMinHeight    = 6

	DefaultTaskbarHeight = 1
)

// DesktopConfig holds desktop-wide knobs.
type DesktopConfig struct {
	// TaskbarHeight is the reserved band at the bottom of the viewport,
	// in host cells.
	TaskbarHeight int `yaml:"taskbar_height,omitempty"`
}

// LoggingConfig configures the diagnostic log for ignored operations.
type LoggingConfig struct {
	Enabled   bool   `yaml:"enabled,omitempty"`
	Level     string `yaml:"level,omitempty"`
	File      string `yaml:"file,omitempty"`
	MaxSizeMB int    `yaml:"max_size_mb,omitempty"`
	MaxFiles  int    `yaml:"max_files,omitempty"`
}

/// Config is the effective deskwm configuration: builtin app catalog merged
// with user overrides.
type Config struct {
	Apps    map[string]AppConfig `yaml:"apps"`
	Desktop DesktopConfig        `yaml:"desktop,omitempty"`
	Logging LoggingConfig        `yaml:"logging,omitempty"`
}

// App looks up an application by catalog key.
func (c *Config) App(name string) (AppConfig, bool) {
	app, ok := c.Apps[name]
	return app, ok
}

// AppNames returns the catalog keys in sorted order.
func (c *Config) AppNames() []string {
	names := make([]string, 0, len(c.Apps))
	for name := range c.Apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TaskbarHeight returns the effective taskbar band height.
func (c *Config) TaskbarHeight() int {
	if c.Desktop.TaskbarHeight <= 0 {
		return DefaultTaskbarHeight
	}
	return c.Desktop.TaskbarHeight
}

// Validate checks the effective config for problems a user should hear about.
// Geometry inconsistencies are not errors; Normalized corrects them.
func (c *Config) Validate() error {
	if len(c.Apps) == 0 {
		return fmt.Errorf("no applications configured")
	}
	for name, app := range c.Apps {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("application with empty name")
		}
		if app.Width < 0 || app.Height < 0 || app.MinWidth < 0 || app.MinHeight < 0 {
			return fmt.Errorf("app %q: negative dimension", name)
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q: must be debug, info, warn or error", c.Logging.Level)
	}
	return nil
}

// GetLoggingConfig returns the logging section with defaults filled in.
func (c *Config) GetLoggingConfig() LoggingConfig {
	cfg := c.Logging
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.File == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.File = filepath.Join(home, ".local", "share", "deskwm", "deskwm-diag.log")
		}
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 3
	}
	return cfg
}
