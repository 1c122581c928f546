package rest

import (
	"net/http"
	"time"

	"valr/pkg/errors"
	"valr/pkg/logger"
	"valr/pkg/ratelimit"
	"valr/signing"
)

const (
	baseURL        = "https://api.valr.com"
	defaultTimeout = 10 * time.Second
)

// Config configures the REST client.
type Config struct {
	Credentials  signing.Credentials
	SubaccountID string

	// BaseURL overrides the production API host, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *ratelimit.MultiLimiter
	Logger     *logger.Logger
	Tracker    errors.Tracker
}

// Client is a typed client for the VALR REST API. Public endpoints work
// without credentials; account and order endpoints require a validated
// key pair and sign every request.
type Client struct {
	baseURL      string
	creds        signing.Credentials
	subaccountID string
	httpClient   *http.Client
	limiter      *ratelimit.MultiLimiter
	log          *logger.Logger
	tracker      errors.Tracker
}

// NewClient creates a new REST client. Credentials, when supplied, are
// validated here once; no request can be issued with a malformed pair.
func NewClient(cfg Config) (*Client, error) {
	if !cfg.Credentials.IsZero() {
		if err := cfg.Credentials.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.NewExchangeLimiter()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Get().With("component", "valr_rest")
	}

	return &Client{
		baseURL:      cfg.BaseURL,
		creds:        cfg.Credentials,
		subaccountID: cfg.SubaccountID,
		httpClient:   cfg.HTTPClient,
		limiter:      cfg.Limiter,
		log:          cfg.Logger,
		tracker:      cfg.Tracker,
	}, nil
}

// HasCredentials reports whether the client can issue signed requests
func (c *Client) HasCredentials() bool {
	return !c.creds.IsZero()
}
