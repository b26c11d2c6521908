package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/specialistvlad/trafficgo/internal/executor"
	"github.com/specialistvlad/trafficgo/internal/report"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenarioPath string // .json, .yaml, .yml or .hcl

	LogFormat    string // text | json
	LogLevel     string // debug | info | warn | error
	ReportFormat string // text | json | yaml

	// Concurrency caps in-flight requests per wave. Zero defers to the
	// scenario rate.
	Concurrency        int
	DefaultTimeout     time.Duration
	InsecureSkipVerify bool
	PrintScenario      bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenarioPath == "" {
		return nil, errors.New("ScenarioPath is a required configuration field and cannot be empty")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.ReportFormat == "" {
		cfg.ReportFormat = string(report.FormatText)
	}
	f, err := report.ParseFormat(cfg.ReportFormat)
	if err != nil {
		return nil, err
	}
	cfg.ReportFormat = string(f)

	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("invalid concurrency %d: must not be negative", cfg.Concurrency)
	}
	if cfg.DefaultTimeout < 0 {
		return nil, fmt.Errorf("invalid timeout %s: must not be negative", cfg.DefaultTimeout)
	}
	if cfg.DefaultTimeout == 0 {
		cfg.DefaultTimeout = executor.DefaultTimeout
	}

	return &cfg, nil
}
