package api

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// identityFromAuthHeader extracts a best-effort user identity from a
// bearer token. The signature is deliberately not verified: the
// identity is client-asserted and informational only, and must never
// gate authorization. Any decode failure yields the empty identity.
func identityFromAuthHeader(header string, logger *zap.Logger) string {
	if header == "" {
		return ""
	}

	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	raw := fields[len(fields)-1]

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		logger.Debug("could not decode authorization token", zap.Error(err))
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
