package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Server         ServerConfig
	Upstream       UpstreamConfig
	CircuitBreaker CircuitBreakerConfig
	Widget         WidgetConfig
	Storage        StorageConfig
	Scheduler      SchedulerConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"FIBER_PORT" default:"8080" validate:"required,numeric"`
	ReadTimeout  time.Duration `envconfig:"FIBER_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"FIBER_WRITE_TIMEOUT" default:"15s"`
}

type UpstreamConfig struct {
	GeocodeURL  string        `envconfig:"GEOCODE_URL" default:"https://geocoding-api.open-meteo.com/v1/search" validate:"required,url"`
	ForecastURL string        `envconfig:"FORECAST_URL" default:"https://api.open-meteo.com/v1/forecast" validate:"required,url"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`
	UserAgent   string        `envconfig:"USER_AGENT" default:"skyline/1.0"`
}

type CircuitBreakerConfig struct {
	Threshold int           `envconfig:"CIRCUIT_BREAKER_THRESHOLD" default:"3" validate:"min=1"`
	Timeout   time.Duration `envconfig:"CIRCUIT_BREAKER_TIMEOUT" default:"30s"`
}

type WidgetConfig struct {
	DefaultCity      string        `envconfig:"DEFAULT_CITY" default:"London" validate:"required"`
	DefaultTheme     string        `envconfig:"DEFAULT_THEME" default:"dark" validate:"oneof=light dark"`
	BootstrapTimeout time.Duration `envconfig:"BOOTSTRAP_TIMEOUT" default:"30s" validate:"gt=0"`
}

type StorageConfig struct {
	// Empty keeps preferences in memory only.
	PreferencesDB string `envconfig:"PREFERENCES_DB" default:"skyline.db"`
}

type SchedulerConfig struct {
	// Cron expression or descriptor such as "@every 15m". Empty disables refresh.
	RefreshSchedule string `envconfig:"REFRESH_SCHEDULE"`
}

// LoadConfig reads .env (if present) and the environment. logger receives
// loading diagnostics; it runs before the configured logger exists.
func LoadConfig(logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// PrefersLight reports whether the configured startup theme hint is light.
func (c *Config) PrefersLight() bool {
	return c.Widget.DefaultTheme == "light"
}
