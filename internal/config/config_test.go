package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, FormatDOT, cfg.Export.Format)
	assert.Equal(t, slog.LevelInfo, cfg.Observability.SlogLevel())
}

func TestLoad_NoPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vizml.yaml")
	content := `
observability:
  tracing_enabled: false
  log_level: debug
export:
  format: mermaid
  show_gradients: false
  precision: 2
gradcheck:
  epsilon: 0.001
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Observability.TracingEnabled)
	assert.True(t, cfg.Observability.MetricsEnabled, "unset keys keep defaults")
	assert.Equal(t, slog.LevelDebug, cfg.Observability.SlogLevel())
	assert.Equal(t, FormatMermaid, cfg.Export.Format)
	assert.False(t, cfg.Export.ShowGradients)
	assert.Equal(t, 2, cfg.Export.Precision)
	assert.InDelta(t, 0.001, cfg.GradCheck.Epsilon, 0)
	assert.InDelta(t, 1e-4, cfg.GradCheck.Tolerance, 0)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vizml.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"export": {"format": "json", "precision": 3}}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Export.Format)
	assert.Equal(t, 3, cfg.Export.Precision)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vizml.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  format: mermaid\n"), 0o600))

	t.Setenv("VIZML_EXPORT_FORMAT", "YAML")
	t.Setenv("VIZML_TRACING_ENABLED", "0")
	t.Setenv("VIZML_GRADCHECK_TOLERANCE", "0.01")
	t.Setenv("VIZML_GRADCHECK_WORKERS", "4")
	t.Setenv("VIZML_GRADCHECK_EPSILON", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Export.Format)
	assert.False(t, cfg.Observability.TracingEnabled)
	assert.InDelta(t, 0.01, cfg.GradCheck.Tolerance, 0)
	assert.Equal(t, 4, cfg.GradCheck.Workers)
	assert.InDelta(t, 1e-6, cfg.GradCheck.Epsilon, 0, "invalid env values are ignored")
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad format", func(c *Config) { c.Export.Format = "png" }},
		{"bad level", func(c *Config) { c.Observability.LogLevel = "loud" }},
		{"bad precision", func(c *Config) { c.Export.Precision = -2 }},
		{"zero epsilon", func(c *Config) { c.GradCheck.Epsilon = 0 }},
		{"negative tolerance", func(c *Config) { c.GradCheck.Tolerance = -1 }},
		{"negative workers", func(c *Config) { c.GradCheck.Workers = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
