package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig(zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1/search", cfg.Upstream.GeocodeURL)
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.Upstream.ForecastURL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.HTTPTimeout)
	assert.Equal(t, 3, cfg.CircuitBreaker.Threshold)
	assert.Equal(t, "London", cfg.Widget.DefaultCity)
	assert.Equal(t, "dark", cfg.Widget.DefaultTheme)
	assert.False(t, cfg.PrefersLight())
	assert.Equal(t, "skyline.db", cfg.Storage.PreferencesDB)
	assert.Empty(t, cfg.Scheduler.RefreshSchedule)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FIBER_PORT", "3000")
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("DEFAULT_CITY", "Tokyo")
	t.Setenv("DEFAULT_THEME", "light")
	t.Setenv("REFRESH_SCHEDULE", "@every 15m")
	t.Setenv("PREFERENCES_DB", "")

	cfg, err := LoadConfig(zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Upstream.HTTPTimeout)
	assert.Equal(t, "Tokyo", cfg.Widget.DefaultCity)
	assert.True(t, cfg.PrefersLight())
	assert.Equal(t, "@every 15m", cfg.Scheduler.RefreshSchedule)
	assert.Empty(t, cfg.Storage.PreferencesDB)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad theme", "DEFAULT_THEME", "sepia"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad url", "FORECAST_URL", "not a url"},
		{"zero threshold", "CIRCUIT_BREAKER_THRESHOLD", "0"},
		{"bad duration", "HTTP_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig(zaptest.NewLogger(t))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DEFAULT_CITY=Oslo\n"), 0o600))
	// godotenv never overrides a set variable; register cleanup, then unset.
	t.Setenv("DEFAULT_CITY", "")
	require.NoError(t, os.Unsetenv("DEFAULT_CITY"))

	cfg, err := LoadConfig(zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "Oslo", cfg.Widget.DefaultCity)
}

func TestLoadConfigReportsMissingDotenv(t *testing.T) {
	chdir(t, t.TempDir())
	core, logs := observer.New(zapcore.InfoLevel)

	_, err := LoadConfig(zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("No .env file found, using environment variables").Len())
}

func TestLoadConfigQuietWithDotenv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=info\n"), 0o600))
	// Already set, so godotenv leaves the process environment untouched.
	t.Setenv("LOG_LEVEL", "info")
	core, logs := observer.New(zapcore.InfoLevel)

	_, err := LoadConfig(zap.New(core))
	require.NoError(t, err)

	assert.Zero(t, logs.FilterMessage("No .env file found, using environment variables").Len())
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
