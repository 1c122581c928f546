package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// GetBalances returns wallet balances for every currency.
func (c *Client) GetBalances(ctx context.Context) ([]Balance, error) {
	var res []Balance
	if err := c.do(ctx, http.MethodGet, "/v1/account/balances", nil, nil, true, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetTransactionHistory returns account ledger records. skip/limit page
// through the history; limit <= 0 uses the server default.
func (c *Client) GetTransactionHistory(ctx context.Context, skip, limit int) ([]Transaction, error) {
	var res []Transaction

	params := url.Values{}
	if skip > 0 {
		params.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if len(params) == 0 {
		params = nil
	}

	if err := c.do(ctx, http.MethodGet, "/v1/account/transactionhistory", params, nil, true, &res); err != nil {
		return nil, err
	}
	return res, nil
}
