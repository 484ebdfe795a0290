package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatasetPath string
	HTTPAddr    string
	LogLevel    string
	LogFormat   string

	ShutdownTimeout time.Duration

	// CacheSize bounds the request-result cache; 0 disables it.
	CacheSize int

	// PresetsPath points at an optional YAML file of named weight presets.
	PresetsPath string

	// Postgres export sink, off unless a DSN is set.
	ExportDSN     string
	ExportTable   string
	ExportEnabled bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseInt("CACHE_SIZE", 128)
	if err != nil {
		return nil, err
	}

	exportDSN := os.Getenv("EXPORT_DSN")
	exportEnabled := exportDSN != ""
	if v := os.Getenv("EXPORT_ENABLED"); v != "" {
		exportEnabled = v == "true"
	}

	cfg := &Config{
		DatasetPath:     envOrDefault("DATASET_PATH", "data/census.csv"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CacheSize:       cacheSize,
		PresetsPath:     os.Getenv("WEIGHT_PRESETS_PATH"),
		ExportDSN:       exportDSN,
		ExportTable:     envOrDefault("EXPORT_TABLE", "scored_counties"),
		ExportEnabled:   exportEnabled,
	}

	if cfg.DatasetPath == "" {
		return nil, errors.New("DATASET_PATH is required")
	}
	if cfg.ExportEnabled && cfg.ExportDSN == "" {
		return nil, errors.New("EXPORT_ENABLED is true but EXPORT_DSN is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
