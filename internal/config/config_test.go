package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()
	if err := finalize(cfg); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DataDir == "" {
		t.Error("DataDir is empty")
	}
	if cfg.Theme != "nord" {
		t.Errorf("Theme = %q, want nord", cfg.Theme)
	}
	if cfg.DBPath != filepath.Join(cfg.DataDir, "tikkit.db") {
		t.Errorf("DBPath = %q, want it under DataDir", cfg.DBPath)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tikkit.toml")
	content := `
data_dir = "/tmp/tikkit-test"
theme = "gruvbox"
debug = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := defaults()
	if err := loadFile(cfg, path); err != nil {
		t.Fatalf("loadFile failed: %v", err)
	}
	if err := finalize(cfg); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DataDir != "/tmp/tikkit-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Theme != "gruvbox" {
		t.Errorf("Theme = %q, want gruvbox", cfg.Theme)
	}
	if !cfg.Debug {
		t.Error("Debug not set from file")
	}
	if cfg.DBPath != "/tmp/tikkit-test/tikkit.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoadFileBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tikkit.toml")
	if err := os.WriteFile(path, []byte("theme = ["), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := defaults()
	if err := loadFile(cfg, path); err == nil {
		t.Error("loadFile accepted malformed TOML")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("TIKKIT_DATA_DIR", "/tmp/tikkit-env")
	t.Setenv("TIKKIT_THEME", "gruvbox")
	t.Setenv("TIKKIT_DEBUG", "true")
	t.Setenv("TIKKIT_DB", "/tmp/elsewhere/state.db")

	cfg := defaults()
	cfg.Theme = "nord" // pretend the file set it
	loadEnv(cfg)
	if err := finalize(cfg); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DataDir != "/tmp/tikkit-env" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Theme != "gruvbox" {
		t.Errorf("Theme = %q, want gruvbox", cfg.Theme)
	}
	if !cfg.Debug {
		t.Error("Debug not set from env")
	}
	if cfg.DBPath != "/tmp/elsewhere/state.db" {
		t.Errorf("DBPath = %q, env override lost", cfg.DBPath)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/notes", filepath.Join(home, "notes")},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
