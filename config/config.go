// Package config loads countdown-timer-cli settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/countdown-timer-cli/pkg/timeutil"
)

// Config holds the settings read from the config file.
type Config struct {
	// Duration is the configured countdown duration
	Duration timeutil.Duration `yaml:",inline"`
	// LogFile is where structured logs are written; empty disables logging
	LogFile string `yaml:"log_file"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
	// DBPath overrides the default database location
	DBPath string `yaml:"db_path"`
	// AltScreen runs the TUI in the terminal's alternate screen
	AltScreen bool `yaml:"alt_screen"`
	// History records countdown events to the database
	History bool `yaml:"history"`
}

// Default returns the built-in settings: a one hour countdown.
func Default() Config {
	return Config{
		Duration:  timeutil.Duration{Hours: 1},
		LogLevel:  "info",
		AltScreen: true,
		History:   true,
	}
}

// DefaultPath returns ~/.config/countdown-timer-cli/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "countdown-timer-cli", "config.yaml"), nil
}

// Load reads the config file at path on top of the defaults. A missing file
// yields the defaults; a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := c.Duration.Validate(); err != nil {
		return fmt.Errorf("duration %w", err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to an slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
