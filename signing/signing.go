package signing

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"valr/pkg/errors"
)

// Authentication headers expected by the exchange. The same set is used for
// signed REST requests and for the WebSocket handshake.
const (
	HeaderAPIKey       = "X-VALR-API-KEY"
	HeaderSignature    = "X-VALR-SIGNATURE"
	HeaderTimestamp    = "X-VALR-TIMESTAMP"
	HeaderSubaccountID = "X-VALR-SUB-ACCOUNT-ID"
)

// Sign computes the request signature: lowercase hex HMAC-SHA512 over the
// concatenation of timestamp, upper-cased verb, path (including any query
// string, exactly as sent on the wire), body and subaccount id.
//
// The same input always yields the same signature; the caller must reuse one
// timestamp for both the signature and the timestamp header, since server-side
// verification is time-window bound.
func Sign(secret string, timestampMillis int64, verb, path, body, subaccountID string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestampMillis, 10)))
	mac.Write([]byte(strings.ToUpper(verb)))
	mac.Write([]byte(path))
	mac.Write([]byte(body))
	mac.Write([]byte(subaccountID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Timestamp returns the current wall-clock time in milliseconds since epoch
func Timestamp() int64 {
	return time.Now().UnixMilli()
}

// Credentials holds an API key pair. Validated once at client construction
// and never mutated; build a new client to rotate keys.
type Credentials struct {
	APIKey    string
	APISecret string
}

// IsZero reports whether no credentials were supplied
func (c Credentials) IsZero() bool {
	return c.APIKey == "" && c.APISecret == ""
}

// Validate checks credential shape: both key and secret must be exactly
// 64 hex characters. It performs no network calls.
func (c Credentials) Validate() error {
	if err := checkHex64("api key", c.APIKey); err != nil {
		return err
	}
	return checkHex64("api secret", c.APISecret)
}

func checkHex64(field, value string) error {
	if value == "" {
		return errors.Wrapf(errors.ErrInvalidCredentials, "%s is empty", field)
	}
	if len(value) != 64 {
		return errors.Wrapf(errors.ErrInvalidCredentials, "%s must be 64 characters, got %d", field, len(value))
	}
	for _, r := range value {
		if !isHexDigit(r) {
			return errors.Wrapf(errors.ErrInvalidCredentials, "%s contains non-hex characters", field)
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
