package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"valr/pkg/errors"
)

// PlaceLimitOrder submits a limit order. A missing CustomerOrderID is filled
// in with a fresh UUID so fills can always be correlated on the account
// WebSocket.
func (c *Client) PlaceLimitOrder(ctx context.Context, req LimitOrderRequest) (*OrderIDResponse, error) {
	if req.Pair == "" {
		return nil, errors.NewValidationError("pair", "must not be empty", req.Pair)
	}
	if req.Quantity.IsZero() || req.Price.IsZero() {
		return nil, errors.NewValidationError("quantity/price", "must be positive", nil)
	}
	if req.CustomerOrderID == "" {
		req.CustomerOrderID = uuid.NewString()
	}

	var res OrderIDResponse
	if err := c.do(ctx, http.MethodPost, "/v1/orders/limit", nil, req, true, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PlaceMarketOrder submits a market order. Exactly one of BaseAmount or
// QuoteAmount must be set.
func (c *Client) PlaceMarketOrder(ctx context.Context, req MarketOrderRequest) (*OrderIDResponse, error) {
	if req.Pair == "" {
		return nil, errors.NewValidationError("pair", "must not be empty", req.Pair)
	}
	if req.BaseAmount.IsZero() == req.QuoteAmount.IsZero() {
		return nil, errors.NewValidationError("baseAmount/quoteAmount", "exactly one must be set", nil)
	}
	if req.CustomerOrderID == "" {
		req.CustomerOrderID = uuid.NewString()
	}

	var res OrderIDResponse
	if err := c.do(ctx, http.MethodPost, "/v1/orders/market", nil, req, true, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CancelOrder cancels an open order by exchange order id.
func (c *Client) CancelOrder(ctx context.Context, pair, orderID string) error {
	payload := map[string]string{
		"orderId": orderID,
		"pair":    pair,
	}
	return c.do(ctx, http.MethodDelete, "/v1/orders/order", nil, payload, true, nil)
}

// GetOrderStatus returns the lifecycle state of an order by exchange order id.
func (c *Client) GetOrderStatus(ctx context.Context, pair, orderID string) (*OrderStatus, error) {
	var res OrderStatus
	path := fmt.Sprintf("/v1/orders/%s/orderid/%s", pair, orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, true, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetOpenOrders returns all currently open orders across pairs.
func (c *Client) GetOpenOrders(ctx context.Context) ([]OpenOrder, error) {
	var res []OpenOrder
	if err := c.do(ctx, http.MethodGet, "/v1/orders/open", nil, nil, true, &res); err != nil {
		return nil, err
	}
	return res, nil
}
