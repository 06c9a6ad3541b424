package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.CatalogSeedPath)
	assert.True(t, cfg.MetricsEnabled)
	assert.Empty(t, cfg.MetricsToken)
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(lookupFrom(map[string]string{
		"PORT":              "8080",
		"LOG_LEVEL":         "debug",
		"CATALOG_SEED_PATH": "/etc/bookstore/seed.yaml",
		"METRICS_ENABLED":   "false",
		"METRICS_TOKEN":     "scrape",
		"SHUTDOWN_TIMEOUT":  "3s",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/etc/bookstore/seed.yaml", cfg.CatalogSeedPath)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "scrape", cfg.MetricsToken)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_EmptyValueFallsBackToDefault(t *testing.T) {
	cfg, err := Load(lookupFrom(map[string]string{"PORT": ""}))
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad bool", map[string]string{"METRICS_ENABLED": "maybe"}},
		{"bad duration", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{"negative duration", map[string]string{"READ_HEADER_TIMEOUT": "-1s"}},
		{"bad port", map[string]string{"PORT": "http"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(lookupFrom(tt.env))
			assert.Error(t, err)
		})
	}
}
