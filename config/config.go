package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"valr/pkg/errors"
)

type Config struct {
	App       AppConfig
	API       APIConfig
	WebSocket WebSocketConfig
	Sentry    SentryConfig
}

type AppConfig struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type APIConfig struct {
	Key          string `envconfig:"VALR_API_KEY"`
	Secret       string `envconfig:"VALR_API_SECRET"`
	SubaccountID string `envconfig:"VALR_SUBACCOUNT_ID"`
	BaseURL      string `envconfig:"VALR_BASE_URL" default:"https://api.valr.com"`
}

type WebSocketConfig struct {
	BaseURL              string        `envconfig:"VALR_WS_BASE_URL" default:"wss://api.valr.com"`
	DisableAutoReconnect bool          `envconfig:"VALR_WS_DISABLE_AUTO_RECONNECT" default:"false"`
	ReconnectDelay       time.Duration `envconfig:"VALR_WS_RECONNECT_DELAY" default:"5s"`
	MaxReconnectAttempts int           `envconfig:"VALR_WS_MAX_RECONNECT_ATTEMPTS" default:"0"` // 0 = unlimited
	PingInterval         time.Duration `envconfig:"VALR_WS_PING_INTERVAL" default:"30s"`
}

type SentryConfig struct {
	DSN         string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables.
// It first tries to load a .env file (useful for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
