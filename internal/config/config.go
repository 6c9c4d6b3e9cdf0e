// Package config provides XDG path helpers and TOML config parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Display DisplayConfig `toml:"display"`
	Export  ExportConfig  `toml:"export"`
}

// DisplayConfig maps display-related settings.
type DisplayConfig struct {
	Theme       *string `toml:"theme"`
	WindowWeeks *int    `toml:"window-weeks"`
}

// ExportConfig maps export-related settings.
type ExportConfig struct {
	Weeks *int `toml:"weeks"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "habitgrid", "config.toml")
}

// DefaultStorePath returns the default habit database location.
func DefaultStorePath() string {
	return filepath.Join(XDGConfigHome(), "habitgrid", "habitgrid.db")
}
