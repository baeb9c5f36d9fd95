package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath returns the standard user config location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "deskwm", "config.yaml"), nil
}

// Load reads the merged configuration from the standard location. A missing
// config file is not an error; the builtin catalog is used as-is.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from an explicit path, merging user entries over
// the builtin application catalog.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{Apps: BuiltinApps()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	merge(cfg, &user)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// merge applies user entries over the builtin catalog. A user app with the
// same key replaces only the fields it sets; unknown keys add new apps.
func merge(base *Config, user *Config) {
	for name, app := range user.Apps {
		if builtin, ok := base.Apps[name]; ok {
			base.Apps[name] = overlayApp(builtin, app)
		} else {
			base.Apps[name] = app
		}
	}
	if user.Desktop.TaskbarHeight > 0 {
		base.Desktop.TaskbarHeight = user.Desktop.TaskbarHeight
	}
	base.Logging = user.Logging
}

func overlayApp(base, over AppConfig) AppConfig {
	if over.Title != "" {
		base.Title = over.Title
	}
	if over.Width > 0 {
		base.Width = over.Width
	}
	if over.Height > 0 {
		base.Height = over.Height
	}
	if over.MinWidth > 0 {
		base.MinWidth = over.MinWidth
	}
	if over.MinHeight > 0 {
		base.MinHeight = over.MinHeight
	}
	if over.Resizable != nil {
		base.Resizable = over.Resizable
	}
	if over.Content != "" {
		base.Content = over.Content
	}
	return base
}
