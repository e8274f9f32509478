package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.UI.AutoExpandDepth != 1 {
		t.Errorf("AutoExpandDepth = %d, want 1", cfg.UI.AutoExpandDepth)
	}
	if cfg.UI.ShowDetail == nil || !*cfg.UI.ShowDetail {
		t.Error("expected detail pane on by default")
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("Theme = %q, want auto", cfg.UI.Theme)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.UI.AutoExpandDepth != 1 {
		t.Error("expected defaults for a missing file")
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `outline: /tmp/outline.json
state_dir: /tmp/arbor-state
ui:
  auto_expand_depth: 3
  show_detail: false
  theme: dark
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Outline != "/tmp/outline.json" {
		t.Errorf("Outline = %q", cfg.Outline)
	}
	if cfg.StateDir != "/tmp/arbor-state" {
		t.Errorf("StateDir = %q", cfg.StateDir)
	}
	if cfg.UI.AutoExpandDepth != 3 {
		t.Errorf("AutoExpandDepth = %d, want 3", cfg.UI.AutoExpandDepth)
	}
	if cfg.UI.ShowDetail == nil || *cfg.UI.ShowDetail {
		t.Error("expected show_detail false to survive the pointer round trip")
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.UI.Theme)
	}
}

func TestLoadFromPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("outline: notes.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	// Unset keys keep their defaults.
	if cfg.UI.AutoExpandDepth != 1 || cfg.UI.Theme != "auto" {
		t.Error("expected unset UI keys to keep defaults")
	}
	if cfg.Outline != "notes.json" {
		t.Errorf("Outline = %q", cfg.Outline)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("outline: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Error("expected a parse error")
	}
	if cfg.UI.AutoExpandDepth != 1 {
		t.Error("expected defaults alongside the parse error")
	}
}

func TestLoadFromClampsNegativeDepth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  auto_expand_depth: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.UI.AutoExpandDepth != 0 {
		t.Errorf("AutoExpandDepth = %d, want clamped to 0", cfg.UI.AutoExpandDepth)
	}
}

func TestResolvedStateDir(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	cfg := Config{StateDir: "/explicit"}
	if got := cfg.ResolvedStateDir(); got != "/explicit" {
		t.Errorf("explicit override = %q", got)
	}

	cfg.StateDir = ""
	if got := cfg.ResolvedStateDir(); got != filepath.Join("/xdg/state", "arbor") {
		t.Errorf("XDG fallback = %q", got)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	if got := ConfigDir(); got != filepath.Join("/xdg/config", "arbor") {
		t.Errorf("ConfigDir = %q", got)
	}
	if got := ConfigPath(); got != filepath.Join("/xdg/config", "arbor", "config.yaml") {
		t.Errorf("ConfigPath = %q", got)
	}
}
