package api

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unchecked"))
	require.NoError(t, err)
	return token
}

func TestIdentityFromAuthHeader(t *testing.T) {
	log := zap.NewNop()

	t.Run("empty header", func(t *testing.T) {
		assert.Empty(t, identityFromAuthHeader("", log))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Empty(t, identityFromAuthHeader("Bearer zzz.not.base64", log))
	})

	t.Run("email claim", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"email": "user@example.org", "sub": "12345"})
		assert.Equal(t, "user@example.org", identityFromAuthHeader("Bearer "+token, log))
	})

	t.Run("sub fallback", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "12345"})
		assert.Equal(t, "12345", identityFromAuthHeader("Bearer "+token, log))
	})

	t.Run("bare token without scheme", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"email": "user@example.org"})
		assert.Equal(t, "user@example.org", identityFromAuthHeader(token, log))
	})

	t.Run("no usable claims", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"aud": "firecam"})
		assert.Empty(t, identityFromAuthHeader("Bearer "+token, log))
	})
}
