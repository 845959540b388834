// Package config loads application configuration from defaults, an optional
// TOML file, and environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"tikkit/internal/store"
)

// Config holds application configuration.
type Config struct {
	DataDir string `toml:"data_dir"`
	DBPath  string `toml:"db_path"`
	Theme   string `toml:"theme"`
	Debug   bool   `toml:"debug"`
}

// Load builds the configuration in priority order:
//  1. Defaults
//  2. User config file (~/.config/tikkit/tikkit.toml)
//  3. Environment variables (TIKKIT_DATA_DIR, TIKKIT_DB, TIKKIT_THEME,
//     TIKKIT_DEBUG)
func Load() (*Config, error) {
	cfg := defaults()

	if path := userConfigFile(); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadEnv(cfg)

	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		DataDir: store.DefaultDataDir(),
		Theme:   "nord",
	}
}

// userConfigFile returns the path of the user config file, or "" when none
// exists.
func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "tikkit", "tikkit.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func loadFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("TIKKIT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TIKKIT_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TIKKIT_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TIKKIT_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}

// finalize computes derived values.
func finalize(cfg *Config) error {
	cfg.DataDir = expandPath(cfg.DataDir)
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "tikkit.db")
	} else {
		cfg.DBPath = expandPath(cfg.DBPath)
	}
	return nil
}

// expandPath expands a leading ~ to the user home directory.
func expandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if len(path) > 1 && (path[1] == '/' || path[1] == filepath.Separator) {
		return filepath.Join(home, path[2:])
	}
	return path
}
