package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/census.csv", cfg.DatasetPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 128, cfg.CacheSize)
	assert.Empty(t, cfg.PresetsPath)
	assert.Equal(t, "scored_counties", cfg.ExportTable)
	assert.False(t, cfg.ExportEnabled)
}

func TestLoad_CustomEnvironment(t *testing.T) {
	t.Setenv("DATASET_PATH", "/srv/data/acs.csv")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CACHE_SIZE", "16")
	t.Setenv("WEIGHT_PRESETS_PATH", "/etc/explorer/presets.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/data/acs.csv", cfg.DatasetPath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, "/etc/explorer/presets.yaml", cfg.PresetsPath)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-5s")

	_, err := Load()
	assert.ErrorContains(t, err, "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	t.Setenv("CACHE_SIZE", "-1")

	_, err := Load()
	assert.ErrorContains(t, err, "CACHE_SIZE")
}

func TestLoad_ExportDSNImpliesEnabled(t *testing.T) {
	t.Setenv("EXPORT_DSN", "postgres://explorer@localhost/markets?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.ExportEnabled)
	assert.Equal(t, "scored_counties", cfg.ExportTable)
}

func TestLoad_ExportEnabledOverride(t *testing.T) {
	t.Setenv("EXPORT_DSN", "postgres://explorer@localhost/markets?sslmode=disable")
	t.Setenv("EXPORT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.ExportEnabled)
}

func TestLoad_ExportEnabledWithoutDSN(t *testing.T) {
	t.Setenv("EXPORT_ENABLED", "true")

	_, err := Load()
	assert.ErrorContains(t, err, "EXPORT_DSN")
}

func TestLoadPresets_EmptyPathReturnsDefaults(t *testing.T) {
	presets, err := LoadPresets("")
	require.NoError(t, err)

	require.Len(t, presets, 3)
	assert.Equal(t, "balanced", presets[0].Name)
	assert.InDelta(t, 1.0, presets[0].Weights().Sum(), 1e-9)
}

func TestLoadPresets_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	yaml := `presets:
  - name: coastal
    description: Coastal metros
    income: 0.4
    education: 0.3
    diversity: 0.1
    population: 0.1
    age: 0.1
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	presets, err := LoadPresets(path)
	require.NoError(t, err)

	require.Len(t, presets, 1)
	assert.Equal(t, "coastal", presets[0].Name)
	assert.Equal(t, 0.4, presets[0].Income)
	assert.InDelta(t, 1.0, presets[0].Weights().Sum(), 1e-9)
}

func TestLoadPresets_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"no presets", "presets: []\n", "no presets"},
		{"empty name", "presets:\n  - income: 1\n", "empty name"},
		{"duplicate name", "presets:\n  - name: a\n    income: 1\n  - name: a\n    income: 1\n", "duplicate"},
		{"negative weight", "presets:\n  - name: a\n    income: -0.5\n", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "presets.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := LoadPresets(path)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadPresets_MissingFile(t *testing.T) {
	_, err := LoadPresets(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFindPreset(t *testing.T) {
	presets := DefaultPresets()

	p, ok := FindPreset(presets, "growth")
	require.True(t, ok)
	assert.Equal(t, "growth", p.Name)

	_, ok = FindPreset(presets, "unknown")
	assert.False(t, ok)
}
