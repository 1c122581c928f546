package signing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valr/pkg/errors"
)

const testSecret = "4961b74efac86b25cce8fbe4c9811c4c7a787b7a5996660afcc2e287ad864363"

func TestSignKnownVectors(t *testing.T) {
	tests := []struct {
		name      string
		timestamp int64
		verb      string
		path      string
		body      string
		expected  string
	}{
		{
			name:      "get balances",
			timestamp: 1558014486185,
			verb:      "GET",
			path:      "/v1/account/balances",
			body:      "",
			expected:  "9d52c181ed69460b49307b7891f04658e938b21181173844b5018b2fe783a6d4c62b8e67a03de4d099e7437ebfabe12c56233b73c6a0cc0f7ae87e05f6289928",
		},
		{
			name:      "post market order",
			timestamp: 1558017528946,
			verb:      "POST",
			path:      "/v1/orders/market",
			body:      `{"customerOrderId":"ORDER-000001","pair":"BTCUSDC","side":"BUY","quoteAmount":"80000"}`,
			expected:  "09f536e3dfdad58443f16010a97a0a21ad27486b7b8d6d4103170d885410ed77f037f1fa628474190d4f5c08ca12c1acc850901f1c2e75c6d906ec3b32b008d0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sign(testSecret, tt.timestamp, tt.verb, tt.path, tt.body, "")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSignDeterministic(t *testing.T) {
	first := Sign(testSecret, 1558014486185, "GET", "/v1/account/balances", "", "")
	second := Sign(testSecret, 1558014486185, "GET", "/v1/account/balances", "", "")
	assert.Equal(t, first, second)
	assert.Len(t, first, 128)
}

func TestSignVerbCaseInsensitive(t *testing.T) {
	upper := Sign(testSecret, 1558014486185, "GET", "/v1/account/balances", "", "")
	lower := Sign(testSecret, 1558014486185, "get", "/v1/account/balances", "", "")
	assert.Equal(t, upper, lower)
}

func TestSignSubaccountChangesSignature(t *testing.T) {
	without := Sign(testSecret, 1558014486185, "GET", "/v1/account/balances", "", "")
	with := Sign(testSecret, 1558014486185, "GET", "/v1/account/balances", "", "1234567890")
	assert.NotEqual(t, without, with)
}

func TestCredentialsValidate(t *testing.T) {
	valid := strings.Repeat("ab12CD34", 8)
	require.Len(t, valid, 64)

	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{"valid pair", Credentials{APIKey: valid, APISecret: valid}, false},
		{"empty key", Credentials{APIKey: "", APISecret: valid}, true},
		{"empty secret", Credentials{APIKey: valid, APISecret: ""}, true},
		{"short key", Credentials{APIKey: valid[:63], APISecret: valid}, true},
		{"long secret", Credentials{APIKey: valid, APISecret: valid + "a"}, true},
		{"non-hex key", Credentials{APIKey: strings.Repeat("zz12CD34", 8), APISecret: valid}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCredentialsIsZero(t *testing.T) {
	assert.True(t, Credentials{}.IsZero())
	assert.False(t, Credentials{APIKey: "x"}.IsZero())
}
