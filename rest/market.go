package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// GetOrderBook returns the aggregated order book for a pair.
func (c *Client) GetOrderBook(ctx context.Context, pair string) (*OrderBook, error) {
	var res OrderBook
	path := fmt.Sprintf("/v1/marketdata/%s/orderbook", pair)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, true, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetTradeHistory returns recent trades for a pair, newest first.
// limit <= 0 uses the server default.
func (c *Client) GetTradeHistory(ctx context.Context, pair string, limit int) ([]Trade, error) {
	var res []Trade
	path := fmt.Sprintf("/v1/marketdata/%s/tradehistory", pair)

	var params url.Values
	if limit > 0 {
		params = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	if err := c.do(ctx, http.MethodGet, path, params, nil, true, &res); err != nil {
		return nil, err
	}
	return res, nil
}
