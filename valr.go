// Package valr is a typed client for the VALR cryptocurrency exchange:
// a REST client with deterministic HMAC-SHA512 request signing and
// resilient WebSocket sessions for the account and market-data streams.
package valr

import (
	"time"

	"valr/config"
	"valr/pkg/errors"
	"valr/pkg/errors/sentry"
	"valr/pkg/logger"
	"valr/pkg/ratelimit"
	"valr/rest"
	"valr/signing"
	"valr/ws"
)

// Config configures a Client. Credentials may be omitted entirely for a
// public-data-only client; a partial or malformed pair is rejected.
type Config struct {
	Credentials  signing.Credentials
	SubaccountID string

	// RESTBaseURL / WSBaseURL override the production hosts, mainly for tests.
	RESTBaseURL string
	WSBaseURL   string

	DisableAutoReconnect bool
	ReconnectDelay       time.Duration
	MaxReconnectAttempts int
	PingInterval         time.Duration

	Logger  *logger.Logger
	Tracker errors.Tracker
	Limiter *ratelimit.MultiLimiter
}

// Client bundles the REST client and WebSocket session constructors behind
// one validated credential set.
type Client struct {
	cfg  Config
	rest *rest.Client
}

// New creates a Client. Credentials are validated here, once, before any
// request or connection is possible.
func New(cfg Config) (*Client, error) {
	if !cfg.Credentials.IsZero() {
		if err := cfg.Credentials.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Get().With("component", "valr")
	}

	restClient, err := rest.NewClient(rest.Config{
		Credentials:  cfg.Credentials,
		SubaccountID: cfg.SubaccountID,
		BaseURL:      cfg.RESTBaseURL,
		Limiter:      cfg.Limiter,
		Logger:       cfg.Logger.With("component", "valr_rest"),
		Tracker:      cfg.Tracker,
	})
	if err != nil {
		return nil, err
	}

	return &Client{cfg: cfg, rest: restClient}, nil
}

// NewFromEnv builds a Client from environment variables (and an optional
// .env file), initializing the global logger and, when a DSN is configured,
// the Sentry error tracker.
func NewFromEnv() (*Client, error) {
	envCfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(envCfg.App.LogLevel, envCfg.App.Env); err != nil {
		return nil, err
	}

	cfg := Config{
		Credentials: signing.Credentials{
			APIKey:    envCfg.API.Key,
			APISecret: envCfg.API.Secret,
		},
		SubaccountID:         envCfg.API.SubaccountID,
		RESTBaseURL:          envCfg.API.BaseURL,
		WSBaseURL:            envCfg.WebSocket.BaseURL,
		DisableAutoReconnect: envCfg.WebSocket.DisableAutoReconnect,
		ReconnectDelay:       envCfg.WebSocket.ReconnectDelay,
		MaxReconnectAttempts: envCfg.WebSocket.MaxReconnectAttempts,
		PingInterval:         envCfg.WebSocket.PingInterval,
		Logger:               logger.Get().With("component", "valr"),
	}

	if envCfg.Sentry.DSN != "" {
		tracker, err := sentry.New(envCfg.Sentry.DSN, envCfg.Sentry.Environment)
		if err != nil {
			return nil, errors.Wrap(err, "init sentry tracker")
		}
		logger.SetErrorTracker(tracker)
		cfg.Tracker = tracker
	}

	return New(cfg)
}

// REST returns the REST client
func (c *Client) REST() *rest.Client {
	return c.rest
}

// NewAccountSession creates a session for the account event stream. Fails
// when the client was built without credentials.
func (c *Client) NewAccountSession(handlers ws.AccountHandlers, generic ws.Handlers) (*ws.AccountSession, error) {
	return ws.NewAccountSession(c.wsConfig(generic), handlers)
}

// NewMarketSession creates a session for the market-data stream with the
// given default subscriptions.
func (c *Client) NewMarketSession(subscriptions []ws.Subscription, handlers ws.MarketHandlers, generic ws.Handlers) (*ws.MarketSession, error) {
	return ws.NewMarketSession(c.wsConfig(generic), subscriptions, handlers)
}

func (c *Client) wsConfig(generic ws.Handlers) ws.Config {
	return ws.Config{
		BaseURL:              c.cfg.WSBaseURL,
		Credentials:          c.cfg.Credentials,
		SubaccountID:         c.cfg.SubaccountID,
		DisableAutoReconnect: c.cfg.DisableAutoReconnect,
		ReconnectDelay:       c.cfg.ReconnectDelay,
		MaxReconnectAttempts: c.cfg.MaxReconnectAttempts,
		PingInterval:         c.cfg.PingInterval,
		Logger:               c.cfg.Logger.With("component", "valr_ws"),
		Handlers:             generic,
	}
}
