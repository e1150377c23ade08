// pkg/authtoken/authtoken.go
package authtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrNoExpiry       = errors.New("token carries no expiry claim")
)

// Claims is the subset of the bearer token's claims the client reads.
// The token is issued and verified by the server; this side only
// inspects it.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Decode parses the token's claims segment without verifying the
// signature. The client holds no signing key, so the result is a
// local heuristic only; the server stays the source of truth.
func Decode(token string) (*Claims, error) {
	parser := jwt.NewParser()

	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if exp == nil {
		return nil, ErrNoExpiry
	}

	sub, _ := parsed.Claims.GetSubject()

	return &Claims{
		Subject:   sub,
		ExpiresAt: exp.Time,
	}, nil
}

// Valid reports whether the token is well-formed and its expiry lies
// strictly after now. Absent, malformed and expired tokens are all
// reported as invalid.
func Valid(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims, err := Decode(token)
	if err != nil {
		return false
	}
	return claims.ExpiresAt.After(now)
}
