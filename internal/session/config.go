package session

import (
	"errors"
	"fmt"
)

// Config holds everything a Session needs to start.
type Config struct {
	ManifestPath string // .hcl file or directory, or a .yaml file

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	Ticks           int  // overrides the manifest's app.ticks when positive
	Trace           bool // export tick and system spans to the output writer
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}

	if cfg.Ticks < 0 {
		return nil, fmt.Errorf("invalid ticks %d: must not be negative", cfg.Ticks)
	}

	return &cfg, nil
}
