package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken is returned when the token is not a parseable JWT.
	ErrMalformedToken = errors.New("token is not a well-formed JWT")
	// ErrNoExpiry is returned when the token carries no exp claim.
	ErrNoExpiry = errors.New("token has no expiry claim")
)

// parser skips claim validation entirely; only structure is checked.
var parser = jwtlib.NewParser(jwtlib.WithoutClaimsValidation())

// Claims parses the token without verifying its signature and returns the
// raw claims map.
func Claims(token string) (jwtlib.MapClaims, error) {
	claims := jwtlib.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}
	return claims, nil
}

// ExpiresAt returns the exp claim of the token.
func ExpiresAt(token string) (time.Time, error) {
	claims, err := Claims(token)
	if err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// IsExpired reports whether the token expires within the given leeway.
// Tokens that are not JWTs or carry no exp claim report false, leaving the
// caller to rely on server-side rejection instead.
func IsExpired(token string, leeway time.Duration) bool {
	exp, err := ExpiresAt(token)
	if err != nil {
		return false
	}
	return time.Now().Add(leeway).After(exp)
}
