package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken issues a token carrying the acting tenant. User accounts
// and sessions live in a separate identity service; this issuer exists
// for tooling and tests.
func GenerateToken(tenantID string, secret []byte, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"tenant_id": tenantID,
		"exp":       time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken returns the tenant id carried by a token.
func ParseToken(tokenStr string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["tenant_id"] == nil {
		return "", errors.New("invalid claims")
	}

	tenantID, ok := claims["tenant_id"].(string)
	if !ok {
		return "", errors.New("invalid claims")
	}
	return tenantID, nil
}
