// Package config loads tickbox settings from defaults, a TOML file, a .env
// file and TICKBOX_* environment variables, in that order of precedence
// (later sources win). CLI flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	DefaultBackend   = BackendJSON
	DefaultKey       = "todoItems"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	ConfigFileName = "config.toml"
	appDirName     = "tickbox"
)

// Config holds every tunable of the application.
type Config struct {
	Backend   string `toml:"backend"`
	DataDir   string `toml:"data_dir"`
	Key       string `toml:"key"`
	Theme     string `toml:"theme"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:   DefaultBackend,
		DataDir:   defaultDataDir(),
		Key:       DefaultKey,
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load builds a Config. path names an explicit TOML file; when empty the
// user config file is used if it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = UserConfigPath()
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TICKBOX_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TICKBOX_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TICKBOX_KEY"); v != "" {
		cfg.Key = v
	}
	if v := os.Getenv("TICKBOX_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TICKBOX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TICKBOX_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

// Validate normalizes names and rejects unknown values.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.Key = strings.TrimSpace(c.Key)

	switch c.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want json, sqlite or memory)", c.Backend)
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q (want classic, neon or mono)", c.Theme)
	}
	if c.Key == "" {
		return errors.New("storage key is empty")
	}
	if c.Backend != BackendMemory && c.DataDir == "" {
		return errors.New("data_dir is empty")
	}
	return nil
}

// UserConfigPath returns $XDG_CONFIG_HOME/tickbox/config.toml (or the OS
// equivalent), or "" when no config dir can be determined.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName, ConfigFileName)
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appDirName
	}
	return filepath.Join(home, ".local", "share", appDirName)
}
