// Package config handles loading and saving arbor configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/arbor/config.yaml
//   - State:  ~/.local/state/arbor/ (expand/collapse state)
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	AutoExpandDepth int    `yaml:"auto_expand_depth,omitempty"` // levels expanded on first load (default 1)
	ShowDetail      *bool  `yaml:"show_detail,omitempty"`       // detail pane visible at startup
	Theme           string `yaml:"theme,omitempty"`             // "auto", "dark", "light"
}

// Config is the top-level configuration for arbor.
type Config struct {
	Outline  string   `yaml:"outline,omitempty"`   // default outline file or directory
	StateDir string   `yaml:"state_dir,omitempty"` // overrides the XDG state dir
	UI       UIConfig `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	show := true
	return Config{
		UI: UIConfig{
			AutoExpandDepth: 1,
			ShowDetail:      &show,
			Theme:           "auto",
		},
	}
}

// ConfigDir returns the XDG config directory for arbor.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "arbor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "arbor")
}

// StateDir returns the directory for persisted UI state, honoring the
// config override first, then XDG_STATE_HOME.
func (c Config) ResolvedStateDir() string {
	if c.StateDir != "" {
		return c.StateDir
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "arbor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "arbor")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file, returning defaults when it does not exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file from an explicit path. A missing file is not
// an error; defaults are returned.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.UI.AutoExpandDepth < 0 {
		cfg.UI.AutoExpandDepth = 0
	}
	return cfg, nil
}

// Save writes the config to the default location, creating the directory if
// needed.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
