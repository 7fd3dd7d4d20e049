// Package config loads the snipboard configuration file.
//
// The file lives at $XDG_CONFIG_HOME/snipboard/config.yaml (falling back to
// ~/.config/snipboard/config.yaml). A missing file is not an error: every
// field has a default, and a partial file is filled in from those defaults.
// Board settings such as columns and the persistence mode are user data and
// live in the local store, not here.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the file
const (
	EnvDataDir   = "SNIPBOARD_DATA_DIR"
	EnvRemoteURL = "SNIPBOARD_REMOTE_URL"
)

// Defaults for an empty configuration
const (
	DefaultLogLevel          = "info"
	DefaultRemoteTimeout     = 10 * time.Second
	DefaultRemoteMaxAttempts = 3
	DefaultRemoteBaseDelay   = time.Second
	DefaultMockAddr          = "127.0.0.1:8787"
	DefaultMockTokenTTL      = 8 * time.Hour
)

// Config represents the application configuration
type Config struct {
	DataDir     string       `yaml:"data_dir"`
	LogLevel    string       `yaml:"log_level"`
	Remote      RemoteConfig `yaml:"remote"`
	Mock        MockConfig   `yaml:"mock"`
	KeyMappings KeyMappings  `yaml:"key_mappings"`
	Theme       Theme        `yaml:"theme"`
}

// RemoteConfig tunes the HTTP persistence adapter.
// BaseURL is only a fallback: an endpoint stored in the board settings wins.
type RemoteConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
}

// MockConfig configures `snipboard serve-mock`
type MockConfig struct {
	Addr     string            `yaml:"addr"`
	Users    map[string]string `yaml:"users"`
	TokenTTL time.Duration     `yaml:"token_ttl"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile reads the configuration at path. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Path returns the path to the config file
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "snipboard", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "snipboard", "config.yaml"), nil
}

// SlogLevel maps LogLevel onto a slog level. Unknown names mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) applyEnv() {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		c.DataDir = dir
	}
	if url := os.Getenv(EnvRemoteURL); url != "" {
		c.Remote.BaseURL = url
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	if c.Remote.Timeout <= 0 {
		c.Remote.Timeout = DefaultRemoteTimeout
	}
	if c.Remote.MaxAttempts <= 0 {
		c.Remote.MaxAttempts = DefaultRemoteMaxAttempts
	}
	if c.Remote.BaseDelay <= 0 {
		c.Remote.BaseDelay = DefaultRemoteBaseDelay
	}

	if c.Mock.Addr == "" {
		c.Mock.Addr = DefaultMockAddr
	}
	if len(c.Mock.Users) == 0 {
		c.Mock.Users = map[string]string{"demo": "demo"}
	}
	if c.Mock.TokenTTL <= 0 {
		c.Mock.TokenTTL = DefaultMockTokenTTL
	}

	c.KeyMappings.applyDefaults()
	c.Theme.applyDefaults()
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".snipboard"
	}
	return filepath.Join(homeDir, ".snipboard")
}
