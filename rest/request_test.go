package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valr/pkg/errors"
	"valr/pkg/logger"
	"valr/signing"
)

var testCreds = signing.Credentials{
	APIKey:    strings.Repeat("a1b2c3d4", 8),
	APISecret: strings.Repeat("e5f6a7b8", 8),
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		Credentials: testCreds,
		BaseURL:     srv.URL,
		Logger:      logger.Nop(),
	})
	require.NoError(t, err)
	return client, srv
}

func TestNewClientRejectsBadCredentials(t *testing.T) {
	_, err := NewClient(Config{
		Credentials: signing.Credentials{APIKey: "short", APISecret: "short"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestSignedRequestHeaders(t *testing.T) {
	var gotHeaders http.Header
	var gotRequestURI string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotRequestURI = r.URL.RequestURI()
		w.Write([]byte(`[]`))
	})

	_, err := client.GetBalances(context.Background())
	require.NoError(t, err)

	apiKey := gotHeaders.Get(signing.HeaderAPIKey)
	sig := gotHeaders.Get(signing.HeaderSignature)
	tsHeader := gotHeaders.Get(signing.HeaderTimestamp)

	assert.Equal(t, testCreds.APIKey, apiKey)
	assert.Len(t, sig, 128)
	require.NotEmpty(t, tsHeader)
	assert.Empty(t, gotHeaders.Get(signing.HeaderSubaccountID))

	// The signature must verify over the path exactly as it arrived.
	ts, err := strconv.ParseInt(tsHeader, 10, 64)
	require.NoError(t, err)
	expected := signing.Sign(testCreds.APISecret, ts, http.MethodGet, gotRequestURI, "", "")
	assert.Equal(t, expected, sig)
}

func TestSignedQueryByteIdentity(t *testing.T) {
	var gotRequestURI string
	var gotHeaders http.Header

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRequestURI = r.URL.RequestURI()
		gotHeaders = r.Header.Clone()
		w.Write([]byte(`[]`))
	})

	_, err := client.GetTransactionHistory(context.Background(), 5, 10)
	require.NoError(t, err)

	// The wire path must be the one string that was signed, query included.
	require.Equal(t, "/v1/account/transactionhistory?limit=10&skip=5", gotRequestURI)

	ts, err := strconv.ParseInt(gotHeaders.Get(signing.HeaderTimestamp), 10, 64)
	require.NoError(t, err)
	expected := signing.Sign(testCreds.APISecret, ts, http.MethodGet, gotRequestURI, "", "")
	assert.Equal(t, expected, gotHeaders.Get(signing.HeaderSignature))
}

func TestSubaccountHeaderAndSignature(t *testing.T) {
	var gotHeaders http.Header
	var gotRequestURI string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotRequestURI = r.URL.RequestURI()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{
		Credentials:  testCreds,
		SubaccountID: "9175430",
		BaseURL:      srv.URL,
		Logger:       logger.Nop(),
	})
	require.NoError(t, err)

	_, err = client.GetBalances(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "9175430", gotHeaders.Get(signing.HeaderSubaccountID))

	ts, err := strconv.ParseInt(gotHeaders.Get(signing.HeaderTimestamp), 10, 64)
	require.NoError(t, err)
	expected := signing.Sign(testCreds.APISecret, ts, http.MethodGet, gotRequestURI, "", "9175430")
	assert.Equal(t, expected, gotHeaders.Get(signing.HeaderSignature))
}

func TestSignedPostBodySignature(t *testing.T) {
	var gotHeaders http.Header
	var gotBody string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"id":"order-1"}`))
	})

	res, err := client.PlaceMarketOrder(context.Background(), MarketOrderRequest{
		Side:            SideBuy,
		Pair:            "BTCUSDC",
		QuoteAmount:     decimal.RequireFromString("80000"),
		CustomerOrderID: "ORDER-000001",
	})
	require.NoError(t, err)
	assert.Equal(t, "order-1", res.ID)

	ts, err := strconv.ParseInt(gotHeaders.Get(signing.HeaderTimestamp), 10, 64)
	require.NoError(t, err)
	expected := signing.Sign(testCreds.APISecret, ts, http.MethodPost, "/v1/orders/market", gotBody, "")
	assert.Equal(t, expected, gotHeaders.Get(signing.HeaderSignature))
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		check      func(t *testing.T, err error)
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"code":-10,"message":"API key invalid"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, errors.ErrAuthentication))
				assert.Contains(t, err.Error(), "API key invalid")
			},
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			body:       `{"code":-23,"message":"too many requests"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, errors.ErrRateLimited))
			},
		},
		{
			name:       "validation failure",
			statusCode: http.StatusBadRequest,
			body:       `{"code":-21,"message":"Invalid currency pair"}`,
			check: func(t *testing.T, err error) {
				var v *errors.ValidationError
				require.True(t, errors.As(err, &v))
				assert.Equal(t, "Invalid currency pair", v.Message)
			},
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       `{"code":-1,"message":"internal"}`,
			check: func(t *testing.T, err error) {
				var apiErr *errors.APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
				assert.Equal(t, -1, apiErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			})

			_, err := client.GetBalances(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestRateLimitRetryAfterHeader(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"code":-23,"message":"too many requests"}`))
	})

	_, err := client.GetBalances(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRateLimited))
	assert.Contains(t, err.Error(), "retry after 7s")
}

func TestNetworkErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client, err := NewClient(Config{
		Credentials: testCreds,
		BaseURL:     srv.URL,
		Logger:      logger.Nop(),
	})
	require.NoError(t, err)

	_, err = client.GetBalances(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNetwork))
}

func TestSignedRequestWithoutCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, Logger: logger.Nop()})
	require.NoError(t, err)

	_, err = client.GetBalances(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestPublicEndpointUnsigned(t *testing.T) {
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.Write([]byte(`[{"symbol":"BTCUSDC","active":true}]`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, Logger: logger.Nop()})
	require.NoError(t, err)

	pairs, err := client.GetPairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "BTCUSDC", pairs[0].Symbol)
	assert.Empty(t, gotHeaders.Get(signing.HeaderAPIKey))
	assert.Empty(t, gotHeaders.Get(signing.HeaderSignature))
}
