// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Launcher LauncherConfig `toml:"launcher"`
}

// LauncherConfig maps launcher-related settings.
type LauncherConfig struct {
	MatchGenericName *bool   `toml:"match-generic-name"`
	ShowGenericName  *bool   `toml:"show-generic-name"`
	NoSort           *bool   `toml:"no-sort"`
	SortByMatcher    *bool   `toml:"sort-by-matcher"`
	Tiebreak         *string `toml:"tiebreak"`
	Prompt           *string `toml:"prompt"`
	AccentColor      *string `toml:"accent-color"`
	Reverse          *bool   `toml:"reverse"`
	CommandPrefix    *string `toml:"command-prefix"`
	TerminalCommand  *string `toml:"terminal-command"`
	RecordRaw        *bool   `toml:"record-raw"`
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
