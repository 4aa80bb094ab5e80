// Package config holds the runtime configuration for graph evaluation:
// observability switches, visualization export defaults and gradient-check
// tolerances. Configuration is loaded with priority env > file > defaults.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Export formats understood by the export package.
const (
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

// Config is the top-level configuration.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after creation.
type Config struct {
	// Observability contains logging, tracing and metrics settings.
	Observability ObservabilityConfig `json:"observability" yaml:"observability"`

	// Export contains visualization export defaults.
	Export ExportConfig `json:"export" yaml:"export"`

	// GradCheck contains finite-difference gradient check settings.
	GradCheck GradCheckConfig `json:"gradcheck" yaml:"gradcheck"`
}

// ObservabilityConfig contains observability settings.
type ObservabilityConfig struct {
	TracingEnabled bool   `json:"tracing_enabled" yaml:"tracing_enabled"`
	MetricsEnabled bool   `json:"metrics_enabled" yaml:"metrics_enabled"`
	LogLevel       string `json:"log_level" yaml:"log_level"`
}

// ExportConfig contains visualization export settings.
type ExportConfig struct {
	Format        string `json:"format" yaml:"format"`
	ShowValues    bool   `json:"show_values" yaml:"show_values"`
	ShowGradients bool   `json:"show_gradients" yaml:"show_gradients"`
	Precision     int    `json:"precision" yaml:"precision"`
}

// GradCheckConfig contains gradient check settings.
type GradCheckConfig struct {
	// Epsilon is the central-difference step.
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`

	// Tolerance is ε in |analytic − numeric| < ε·(1+|analytic|).
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`

	// Workers is the number of goroutines probing finite differences.
	// 0 or 1 probes sequentially.
	Workers int `json:"workers" yaml:"workers"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Observability: ObservabilityConfig{
			TracingEnabled: true,
			MetricsEnabled: true,
			LogLevel:       "info",
		},
		Export: ExportConfig{
			Format:        FormatDOT,
			ShowValues:    true,
			ShowGradients: true,
			Precision:     4,
		},
		GradCheck: GradCheckConfig{
			Epsilon:   1e-6,
			Tolerance: 1e-4,
		},
	}
}

// Load loads configuration with priority: env > file > defaults.
//
// Inputs:
//   - path: Path to YAML/JSON config file (optional, can be empty).
//
// Outputs:
//   - Config: Merged configuration.
//   - error: Non-nil if the file exists but is invalid, or the result fails Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	loadEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}

	return nil
}

func loadEnv(cfg *Config) {
	// Observability
	if v := os.Getenv("VIZML_TRACING_ENABLED"); v != "" {
		cfg.Observability.TracingEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("VIZML_METRICS_ENABLED"); v != "" {
		cfg.Observability.MetricsEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("VIZML_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	// Export
	if v := os.Getenv("VIZML_EXPORT_FORMAT"); v != "" {
		cfg.Export.Format = strings.ToLower(v)
	}

	// GradCheck
	if v := os.Getenv("VIZML_GRADCHECK_EPSILON"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.GradCheck.Epsilon = f
		}
	}
	if v := os.Getenv("VIZML_GRADCHECK_TOLERANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.GradCheck.Tolerance = f
		}
	}
	if v := os.Getenv("VIZML_GRADCHECK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.GradCheck.Workers = n
		}
	}
}

// Validate checks that the configuration is valid.
func (c Config) Validate() error {
	if _, err := parseLevel(c.Observability.LogLevel); err != nil {
		return err
	}
	switch c.Export.Format {
	case FormatDOT, FormatMermaid, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("export format must be one of dot, mermaid, json, yaml; got %q", c.Export.Format)
	}
	if c.Export.Precision < -1 {
		return fmt.Errorf("export precision must be >= -1")
	}
	if c.GradCheck.Epsilon <= 0 {
		return fmt.Errorf("gradcheck epsilon must be > 0")
	}
	if c.GradCheck.Tolerance <= 0 {
		return fmt.Errorf("gradcheck tolerance must be > 0")
	}
	if c.GradCheck.Workers < 0 {
		return fmt.Errorf("gradcheck workers must be >= 0")
	}
	return nil
}

// SlogLevel returns the slog level for LogLevel, defaulting to Info.
func (o ObservabilityConfig) SlogLevel() slog.Level {
	level, err := parseLevel(o.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s, err)
	}
	return level, nil
}
