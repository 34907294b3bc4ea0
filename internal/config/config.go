// Package config loads the taskboard YAML configuration
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverHTTP     = "http"
)

// Environment overrides
const (
	EnvConfigPath = "TASKBOARD_CONFIG"
	EnvStoreURL   = "TASKBOARD_STORE_URL"
)

// ErrUnknownDriver is returned for a store driver other than sqlite, postgres or http
var ErrUnknownDriver = errors.New("unknown store driver")

// Config represents the application configuration
type Config struct {
	Store       StoreConfig  `yaml:"store"`
	Server      ServerConfig `yaml:"server"`
	Drag        DragConfig   `yaml:"drag"`
	Log         LogConfig    `yaml:"log"`
	KeyMappings KeyMappings  `yaml:"key_mappings"`
}

// StoreConfig selects the remote store the board syncs with
type StoreConfig struct {
	Driver string `yaml:"driver"`
	// Path of the SQLite database file
	Path string `yaml:"path"`
	// DSN of the Postgres database
	DSN string `yaml:"dsn"`
	// URL of a taskboard server
	URL string `yaml:"url"`
}

// ServerConfig configures taskboard serve
type ServerConfig struct {
	Addr   string `yaml:"addr"`
	Socket string `yaml:"socket"`
}

// DragConfig tunes mouse dragging on the board
type DragConfig struct {
	ActivationDistance float64 `yaml:"activation_distance"`
}

// LogConfig configures the log file
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from TASKBOARD_CONFIG or the user's config directory.
// Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// Fall back to defaults if we can't determine the config path
		config := Default()
		config.applyEnv()
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path, falling back to defaults if it doesn't exist
func LoadFile(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	config.applyDefaults()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes the config to path, creating its directory
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks values that have no sensible default
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverPostgres, DriverHTTP:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Store.Driver)
	}
	if c.Store.Driver == DriverPostgres && c.Store.DSN == "" {
		return errors.New("store.dsn is required for the postgres driver")
	}
	if c.Drag.ActivationDistance < 0 {
		return errors.New("drag.activation_distance cannot be negative")
	}
	return nil
}

// Path returns the config file location: TASKBOARD_CONFIG, then
// $XDG_CONFIG_HOME/taskboard/config.yaml, then ~/.config/taskboard/config.yaml
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "taskboard", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "taskboard", "config.yaml"), nil
}

// DataDir returns ~/.taskboard, where the database, socket and logs live
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".taskboard"), nil
}

// applyEnv applies TASKBOARD_STORE_URL. A URL with a postgres scheme selects
// the postgres driver, anything else the http driver.
func (c *Config) applyEnv() {
	raw := os.Getenv(EnvStoreURL)
	if raw == "" {
		return
	}
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		c.Store.Driver = DriverPostgres
		c.Store.DSN = raw
		return
	}
	c.Store.Driver = DriverHTTP
	c.Store.URL = raw
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Store.Driver == "" {
		c.Store.Driver = DriverSQLite
	}

	dataDir, err := DataDir()
	if err != nil {
		dataDir = ".taskboard"
	}
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(dataDir, "taskboard.db")
	}
	if c.Store.URL == "" {
		c.Store.URL = "http://127.0.0.1:7420"
	}

	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:7420"
	}
	if c.Server.Socket == "" {
		c.Server.Socket = filepath.Join(dataDir, "taskboard.sock")
	}

	if c.Drag.ActivationDistance == 0 {
		c.Drag.ActivationDistance = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	c.KeyMappings.applyDefaults()
}
