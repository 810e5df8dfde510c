// Package config resolves runtime settings from defaults, an optional YAML
// file, and CONTRACK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultHistoryKey is the store key the history lives under.
	DefaultHistoryKey = "contractions"

	appDirName     = ".contrack"
	dbFileName     = "contrack.db"
	configFileName = "config.yaml"
)

// Config holds all settings for the tracker and its presentation layer.
type Config struct {
	DBPath       string
	HistoryKey   string
	TickInterval time.Duration
	LogLevel     string
	LogCalls     bool
	ChartWindow  int
}

type fileConfig struct {
	DBPath      string `yaml:"db_path"`
	HistoryKey  string `yaml:"history_key"`
	TickMs      int    `yaml:"tick_ms"`
	LogLevel    string `yaml:"log_level"`
	LogCalls    *bool  `yaml:"log_calls"`
	ChartWindow int    `yaml:"chart_window"`
}

// DefaultConfig returns a Config with sensible defaults. DBPath is left
// empty when the home directory cannot be determined.
func DefaultConfig() Config {
	cfg := Config{
		HistoryKey:   DefaultHistoryKey,
		TickInterval: time.Second,
		LogLevel:     "info",
		ChartWindow:  20,
	}
	if dir, err := appDir(); err == nil {
		cfg.DBPath = filepath.Join(dir, dbFileName)
	}
	return cfg
}

// LoadConfig layers the YAML file and environment over the defaults. A
// missing file is not an error; a malformed one is.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("CONTRACK_CONFIG")
	if path == "" {
		if dir, err := appDir(); err == nil {
			path = filepath.Join(dir, configFileName)
		}
	}
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if cfg.DBPath == "" {
		return cfg, errors.New("no database path: set CONTRACK_DB or db_path")
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the tracker cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.HistoryKey) == "" {
		errs = append(errs, errors.New("history key must not be empty"))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %s", c.TickInterval))
	}
	if c.ChartWindow <= 0 {
		errs = append(errs, fmt.Errorf("chart window must be positive, got %d", c.ChartWindow))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level %q: %w", c.LogLevel, err))
	}
	return errors.Join(errs...)
}

// Level returns the configured zerolog level, falling back to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config yaml %s: %w", path, err)
	}

	if fc.DBPath != "" {
		cfg.DBPath = expandHome(fc.DBPath)
	}
	if fc.HistoryKey != "" {
		cfg.HistoryKey = fc.HistoryKey
	}
	if fc.TickMs > 0 {
		cfg.TickInterval = time.Duration(fc.TickMs) * time.Millisecond
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogCalls != nil {
		cfg.LogCalls = *fc.LogCalls
	}
	if fc.ChartWindow > 0 {
		cfg.ChartWindow = fc.ChartWindow
	}
	return nil
}

// applyEnv ignores values that do not parse.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CONTRACK_DB"); v != "" {
		cfg.DBPath = expandHome(v)
	}
	if v := os.Getenv("CONTRACK_HISTORY_KEY"); v != "" {
		cfg.HistoryKey = v
	}
	if v := os.Getenv("CONTRACK_TICK_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TickInterval = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("CONTRACK_LOG_LEVEL"); v != "" {
		if _, err := zerolog.ParseLevel(v); err == nil {
			cfg.LogLevel = v
		}
	}
	if v := os.Getenv("CONTRACK_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
	if v := os.Getenv("CONTRACK_CHART_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ChartWindow = n
		}
	}
}

func appDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, appDirName), nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
