package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.NewToken(42)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AdminID)
	assert.Equal(t, "bionutrex", claims.Issuer)
}

func TestParseRejectsBadTokens(t *testing.T) {
	m := NewManager("secret", time.Hour)
	valid, err := m.NewToken(1)
	require.NoError(t, err)

	expired, err := NewManager("secret", -time.Minute).NewToken(1)
	require.NoError(t, err)

	otherKey, err := NewManager("other", time.Hour).NewToken(1)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{AdminID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	cases := map[string]string{
		"garbage":   "not-a-token",
		"expired":   expired,
		"wrong key": otherKey,
		"alg none":  none,
		"tampered":  tampered,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	PasswordCost = 4
	t.Cleanup(func() { PasswordCost = 12 })

	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)
	assert.True(t, CheckPassword(hash, "admin123"))
	assert.False(t, CheckPassword(hash, "admin124"))
}
