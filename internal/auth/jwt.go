package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned when signing is attempted without a key.
var ErrEmptySecret = errors.New("auth: empty signing secret")

// SessionClaims binds a session id to an expiry. The id travels as the jti.
type SessionClaims struct {
	jwt.RegisteredClaims
}

func MintSessionToken(sessionID, issuer, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies tokenStr and returns the session id it carries.
func ParseSessionToken(tokenStr, issuer, secret string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	t, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return "", err
	}
	c, ok := t.Claims.(*SessionClaims)
	if !ok || !t.Valid || c.ID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return c.ID, nil
}
