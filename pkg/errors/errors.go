package errors

import (
	"errors"
	"fmt"
)

// Domain error kinds for the client library

var (
	// ErrInvalidCredentials indicates a malformed API key or secret
	ErrInvalidCredentials = errors.New("invalid api credentials")

	// ErrAuthentication indicates the server rejected a signed request
	ErrAuthentication = errors.New("authentication rejected by server")

	// ErrRateLimited indicates the server is throttling requests
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNetwork indicates no HTTP response was received at all
	ErrNetwork = errors.New("network error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrInternal indicates an internal library error
	ErrInternal = errors.New("internal error")
)

// WebSocket-specific errors

var (
	// ErrWSNotConnected indicates WebSocket is not connected
	ErrWSNotConnected = errors.New("websocket not connected")

	// ErrWSCredentialsRequired indicates a session kind that cannot be used anonymously
	ErrWSCredentialsRequired = errors.New("websocket session requires api credentials")

	// ErrWSMessageParse indicates an inbound frame could not be parsed
	ErrWSMessageParse = errors.New("websocket message parse failure")

	// ErrWSMaxReconnectAttempts indicates max reconnection attempts reached
	ErrWSMaxReconnectAttempts = errors.New("max websocket reconnection attempts reached")
)

// APIError carries a non-2xx HTTP outcome from the exchange.
type APIError struct {
	StatusCode int
	Code       int    // exchange-assigned error code, 0 when absent
	Message    string // exchange-supplied message
	Body       string // raw response body
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (http %d, code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error (http %d): %s", e.StatusCode, e.Body)
}

// ValidationError represents a server-side validation failure with field detail
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
