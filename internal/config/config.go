package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/horizon/internal/remote"
)

// Config is the resolved runtime configuration for horizon.
type Config struct {
	DatabasePath string          `yaml:"database_path"`
	UploadsDir   string          `yaml:"uploads_dir"`
	LogUseCases  bool            `yaml:"log_use_cases"`
	Remote       RemoteConfig    `yaml:"remote"`
	Dashboard    DashboardConfig `yaml:"dashboard"`
}

// RemoteConfig defines the optional REST backend used by `sync`.
type RemoteConfig struct {
	BaseURL    string `yaml:"base_url"`
	Token      string `yaml:"token"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	MaxRetries int    `yaml:"max_retries"`
	LogCalls   bool   `yaml:"log_calls"`
}

// DashboardConfig controls the live dashboard.
type DashboardConfig struct {
	RefreshSec int `yaml:"refresh_seconds"`
}

// HomeDir returns ~/.horizon, or a relative .horizon when the home
// directory cannot be determined.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".horizon"
	}
	return filepath.Join(home, ".horizon")
}

// DefaultPath returns the config file location: $HORIZON_CONFIG or
// ~/.horizon/config.yaml.
func DefaultPath() string {
	if v := os.Getenv("HORIZON_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(HomeDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults in case no configuration file is provided.
// The remote backend is disabled by default.
func DefaultConfig() Config {
	dir := HomeDir()
	rc := remote.DefaultConfig()
	return Config{
		DatabasePath: filepath.Join(dir, "horizon.db"),
		UploadsDir:   filepath.Join(dir, "uploads"),
		Remote: RemoteConfig{
			TimeoutMs:  rc.TimeoutMs,
			MaxRetries: rc.MaxRetries,
		},
		Dashboard: DashboardConfig{RefreshSec: 60},
	}
}

// Load reads configuration from a yaml file and applies HORIZON_* environment
// overrides on top. Missing files fall back to defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HORIZON_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("HORIZON_UPLOADS"); v != "" {
		cfg.UploadsDir = v
	}
	if v := os.Getenv("HORIZON_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("HORIZON_REMOTE_URL"); v != "" {
		cfg.Remote.BaseURL = v
	}
	if v := os.Getenv("HORIZON_REMOTE_TOKEN"); v != "" {
		cfg.Remote.Token = v
	}
	if v := os.Getenv("HORIZON_REMOTE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Remote.TimeoutMs = n
		}
	}
	if v := os.Getenv("HORIZON_REMOTE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Remote.MaxRetries = n
		}
	}
	if v := os.Getenv("HORIZON_REMOTE_LOG_CALLS"); v != "" {
		cfg.Remote.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("HORIZON_DANGER_REFRESH_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Dashboard.RefreshSec = n
		}
	}
}

// normalize restores defaults for values a config file left empty or invalid.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.DatabasePath == "" {
		c.DatabasePath = def.DatabasePath
	}
	if c.UploadsDir == "" {
		c.UploadsDir = def.UploadsDir
	}
	if c.Remote.TimeoutMs <= 0 {
		c.Remote.TimeoutMs = def.Remote.TimeoutMs
	}
	if c.Remote.MaxRetries < 0 {
		c.Remote.MaxRetries = def.Remote.MaxRetries
	}
	if c.Dashboard.RefreshSec <= 0 {
		c.Dashboard.RefreshSec = def.Dashboard.RefreshSec
	}
}

// RemoteClientConfig converts the remote section into a client config.
func (c Config) RemoteClientConfig() remote.Config {
	return remote.Config{
		BaseURL:    c.Remote.BaseURL,
		Token:      c.Remote.Token,
		TimeoutMs:  c.Remote.TimeoutMs,
		MaxRetries: c.Remote.MaxRetries,
		LogCalls:   c.Remote.LogCalls,
	}
}

// RefreshInterval is how often the live dashboard recomputes timelines.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.Dashboard.RefreshSec) * time.Second
}
