package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestSessionManager_GenerateAndValidate(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)

	token, err := m.Generate("mod@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "mod@example.com", claims.Email)
	assert.Equal(t, "mod@example.com", claims.Subject)
	assert.Equal(t, "review-service", claims.Issuer)
}

func TestSessionManager_Validate_Expired(t *testing.T) {
	m := NewSessionManager(testSecret, -time.Minute)

	token, err := m.Generate("mod@example.com")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestSessionManager_Validate_WrongSecret(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)
	other := NewSessionManager("another-secret-that-is-long-enough!", time.Hour)

	token, err := m.Generate("mod@example.com")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestSessionManager_Validate_RejectsUnsignedToken(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{Email: "mod@example.com"})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Validate(tokenString)
	assert.Error(t, err)
}

func TestSessionManager_Validate_Garbage(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)

	_, err := m.Validate("not-a-jwt")
	assert.Error(t, err)
}

func TestNewLoginToken_UniqueAndURLSafe(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token, err := NewLoginToken()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(token), 40)
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "=")

		_, dup := seen[token]
		assert.False(t, dup, "token generated twice")
		seen[token] = struct{}{}
	}
}
