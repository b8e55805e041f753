package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyRejects(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewJWTIssuer("secret", time.Hour)
	issuer.now = fixedClock(start)

	valid, err := issuer.Issue("user-1")
	require.NoError(t, err)

	other := NewJWTIssuer("another-secret", time.Hour)
	other.now = fixedClock(start)
	foreign, err := other.Issue("user-1")
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(`{"id":"attacker","exp":4102444800}`))
	tampered := strings.Join(parts, ".")

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		UserID:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(start.Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		now   time.Time
	}{
		{name: "expired", token: valid, now: start.Add(time.Hour + time.Second)},
		{name: "tampered payload", token: tampered, now: start},
		{name: "wrong secret", token: foreign, now: start},
		{name: "alg none", token: unsigned, now: start},
		{name: "garbage", token: "not-a-token", now: start},
		{name: "empty", token: "", now: start},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer.now = fixedClock(tt.now)
			_, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyWithinValidityWindow(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewJWTIssuer("secret", 0)
	issuer.now = fixedClock(start)

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	issuer.now = fixedClock(start.Add(59 * time.Minute))
	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestIssueRequiresUserID(t *testing.T) {
	_, err := NewJWTIssuer("secret", time.Hour).Issue("")
	assert.Error(t, err)
}
