package remote

import (
	"strings"
	"time"
)

// Config holds the connection settings for the REST backend.
type Config struct {
	BaseURL    string
	Token      string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool
}

// DefaultConfig returns a Config with sensible defaults.
// The remote backend is disabled until BaseURL is set.
func DefaultConfig() Config {
	return Config{
		TimeoutMs:  10000,
		MaxRetries: 1,
	}
}

// Enabled reports whether a backend URL has been configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.BaseURL) != ""
}

// Timeout returns the per-call timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return time.Duration(DefaultConfig().TimeoutMs) * time.Millisecond
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c Config) apiURL(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/api" + path
}
