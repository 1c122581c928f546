package rest

import (
	"context"
	"fmt"
	"net/http"
)

// GetServerTime returns the exchange wall clock.
func (c *Client) GetServerTime(ctx context.Context) (*ServerTime, error) {
	var res ServerTime
	if err := c.do(ctx, http.MethodGet, "/v1/public/time", nil, nil, false, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetCurrencies returns all listed currencies.
func (c *Client) GetCurrencies(ctx context.Context) ([]Currency, error) {
	var res []Currency
	if err := c.do(ctx, http.MethodGet, "/v1/public/currencies", nil, nil, false, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetPairs returns all tradable currency pairs.
func (c *Client) GetPairs(ctx context.Context) ([]CurrencyPair, error) {
	var res []CurrencyPair
	if err := c.do(ctx, http.MethodGet, "/v1/public/pairs", nil, nil, false, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetMarketSummary returns the 24h rollup for every pair.
func (c *Client) GetMarketSummary(ctx context.Context) ([]MarketSummary, error) {
	var res []MarketSummary
	if err := c.do(ctx, http.MethodGet, "/v1/public/marketsummary", nil, nil, false, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetMarketSummaryForPair returns the 24h rollup for one pair.
func (c *Client) GetMarketSummaryForPair(ctx context.Context, pair string) (*MarketSummary, error) {
	var res MarketSummary
	path := fmt.Sprintf("/v1/public/%s/marketsummary", pair)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, false, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
