package token_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/undefinedlabs/go-mpatch"

	"shopauth/internal/session/domain/entities"
	"shopauth/internal/session/token"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecode(t *testing.T) {
	validToken := mintToken(t, jwt.MapClaims{
		"userId":      "user-123",
		"displayName": "Test User",
		"role":        "customer",
	})

	notJSONPayload := "header." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig"

	tests := []struct {
		name     string
		raw      string
		expected *entities.Claims
	}{
		{
			name: "success - valid token decoded",
			raw:  validToken,
			expected: &entities.Claims{
				UserID:      "user-123",
				DisplayName: "Test User",
				Role:        entities.RoleCustomer,
			},
		},
		{
			name:     "nil - empty token",
			raw:      "",
			expected: nil,
		},
		{
			name:     "nil - two segments",
			raw:      "aaaa.bbbb",
			expected: nil,
		},
		{
			name:     "nil - four segments",
			raw:      "aaaa.bbbb.cccc.dddd",
			expected: nil,
		},
		{
			name:     "nil - payload is not base64url",
			raw:      "aaaa.!!!!.cccc",
			expected: nil,
		},
		{
			name:     "nil - payload is not JSON",
			raw:      notJSONPayload,
			expected: nil,
		},
		{
			name: "nil - missing userId",
			raw: mintToken(t, jwt.MapClaims{
				"displayName": "Test User",
				"role":        "customer",
			}),
			expected: nil,
		},
		{
			name: "nil - missing displayName",
			raw: mintToken(t, jwt.MapClaims{
				"userId": "user-123",
				"role":   "admin",
			}),
			expected: nil,
		},
		{
			name: "nil - unknown role",
			raw: mintToken(t, jwt.MapClaims{
				"userId":      "user-123",
				"displayName": "Test User",
				"role":        "superuser",
			}),
			expected: nil,
		},
	}

	decoder := token.NewDecoder()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decoder.Decode(tt.raw))
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	originalUserID := "af3c1f90-48e2-4f11-9f2f-0d5c1a2b3c4d"
	raw := mintToken(t, jwt.MapClaims{
		"userId":      originalUserID,
		"displayName": "Round Trip",
		"role":        "guest",
	})

	claims := token.NewDecoder().Decode(raw)
	require.NotNil(t, claims)
	assert.Equal(t, originalUserID, claims.UserID)
}

func TestDecodeExpired(t *testing.T) {
	raw := mintToken(t, jwt.MapClaims{
		"userId":      "user-123",
		"displayName": "Test User",
		"role":        "customer",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	decoder := token.NewDecoder()
	require.NotNil(t, decoder.Decode(raw), "token must be valid before expiry")

	future := time.Now().Add(2 * time.Hour)
	patch, err := mpatch.PatchMethod(time.Now, func() time.Time { return future })
	require.NoError(t, err)
	defer func() { require.NoError(t, patch.Unpatch()) }()

	assert.Nil(t, decoder.Decode(raw), "expired token must decode to nil")
}
