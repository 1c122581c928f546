package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"valr/metrics"
	"valr/pkg/errors"
	"valr/signing"
)

// Header the exchange sets on 429 responses with the wait in seconds.
const rateLimitRetryHeader = "Retry-After"

func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload interface{}, signed bool, out interface{}) error {
	if err := c.limiter.Wait(ctx, limiterKeys(path)...); err != nil {
		return err
	}

	var body io.Reader
	var bodyString string
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		bodyString = string(raw)
		body = strings.NewReader(bodyString)
	}

	// Build the path-with-query string exactly once. The same bytes go into
	// the signature and onto the wire; letting the transport re-encode the
	// query after signing would invalidate every signed request.
	requestPath := path
	if len(params) > 0 {
		requestPath += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	if i := strings.IndexByte(requestPath, '?'); i >= 0 {
		req.URL.RawQuery = requestPath[i+1:]
	}
	req.Header.Set("Content-Type", "application/json")

	if signed {
		if c.creds.IsZero() {
			return errors.Wrapf(errors.ErrInvalidCredentials, "%s %s requires api credentials", method, path)
		}
		ts := signing.Timestamp()
		sig := signing.Sign(c.creds.APISecret, ts, method, requestPath, bodyString, c.subaccountID)

		req.Header.Set(signing.HeaderAPIKey, c.creds.APIKey)
		req.Header.Set(signing.HeaderSignature, sig)
		req.Header.Set(signing.HeaderTimestamp, strconv.FormatInt(ts, 10))
		if c.subaccountID != "" {
			req.Header.Set(signing.HeaderSubaccountID, c.subaccountID)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RESTErrors.WithLabelValues(path, "network").Inc()
		return errors.Wrapf(errors.ErrNetwork, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RESTErrors.WithLabelValues(path, "network").Inc()
		return errors.Wrapf(errors.ErrNetwork, "%s %s: read response: %v", method, path, err)
	}

	if resp.StatusCode >= 400 {
		apiErr := c.classifyError(resp, respBody)
		metrics.RESTErrors.WithLabelValues(path, errorKind(apiErr)).Inc()
		if c.tracker != nil && resp.StatusCode >= 500 {
			_ = c.tracker.CaptureError(ctx, apiErr, map[string]string{"endpoint": path})
		}
		return apiErr
	}

	metrics.RESTCalls.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}

// classifyError maps a non-2xx response to one of the typed error kinds.
// Classification happens exactly once, here; callers match with errors.Is/As.
func (c *Client) classifyError(resp *http.Response, body []byte) error {
	var payload struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	message := payload.Message
	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Wrapf(errors.ErrAuthentication, "http %d: %s", resp.StatusCode, message)
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get(rateLimitRetryHeader)
		if retryAfter != "" {
			return errors.Wrapf(errors.ErrRateLimited, "retry after %ss: %s", retryAfter, message)
		}
		return errors.Wrapf(errors.ErrRateLimited, "%s", message)
	case http.StatusBadRequest:
		return errors.NewValidationError("", message, payload.Code)
	default:
		return &errors.APIError{
			StatusCode: resp.StatusCode,
			Code:       payload.Code,
			Message:    payload.Message,
			Body:       string(body),
		}
	}
}

func limiterKeys(path string) []string {
	if strings.HasPrefix(path, "/v1/orders") {
		return []string{"global", "orders"}
	}
	return []string{"global"}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, errors.ErrAuthentication):
		return "auth"
	case errors.Is(err, errors.ErrRateLimited):
		return "rate_limited"
	default:
		var v *errors.ValidationError
		if errors.As(err, &v) {
			return "validation"
		}
		return "api"
	}
}
