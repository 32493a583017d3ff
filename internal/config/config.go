// Package config loads pyqtrack's optional YAML configuration file and
// layers environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/pyqtrack/internal/llm"
)

// Config is the file configuration. Every section is optional.
type Config struct {
	LLM llm.Config `yaml:"llm"`
	Log LogConfig  `yaml:"log"`

	// DB overrides the database path. The --db flag and PYQTRACK_DB take
	// precedence.
	DB string `yaml:"db"`
}

// LogConfig configures the slog logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // default <data dir>/pyqtrack.log
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath resolves the config file location:
// $XDG_CONFIG_HOME/pyqtrack/config.yaml, falling back to
// ~/.config/pyqtrack/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pyqtrack", "config.yaml"), nil
}

// Load reads path (DefaultPath when empty) over the defaults, then applies
// PYQTRACK_ environment overrides. A missing file is not an error. When the
// selected provider still has no API key, the vendors' standard key
// variables are probed.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	cfg.LLM = llm.ApplyEnv(cfg.LLM)
	if cfg.LLM.Provider != llm.ProviderMock && cfg.LLM.APIKey() == "" {
		if found, ok := llm.DiscoverConfig(cfg.LLM); ok {
			cfg.LLM = found
		}
	}
	return cfg, nil
}
