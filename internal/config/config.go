// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     string
	LogLevel string

	// CatalogSeedPath points at a YAML catalog that replaces the embedded
	// seed. Empty means use the embedded one.
	CatalogSeedPath string

	MetricsEnabled bool
	MetricsToken   string

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Load reads the configuration using lookup for each key. Pass os.LookupEnv
// in production.
func Load(lookup func(string) (string, bool)) (Config, error) {
	get := func(k, def string) string {
		if v, ok := lookup(k); ok && v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:            get("PORT", "5000"),
		LogLevel:        get("LOG_LEVEL", "info"),
		CatalogSeedPath: get("CATALOG_SEED_PATH", ""),
		MetricsToken:    get("METRICS_TOKEN", ""),
	}

	var err error
	if cfg.MetricsEnabled, err = strconv.ParseBool(get("METRICS_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}
	if cfg.ReadHeaderTimeout, err = parseDuration(get("READ_HEADER_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("invalid READ_HEADER_TIMEOUT: %w", err)
	}
	if cfg.ShutdownTimeout, err = parseDuration(get("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return Config{}, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}

	return cfg, nil
}

func FromEnv() (Config, error) {
	return Load(os.LookupEnv)
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}
