package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken wraps token parsing failures.
var ErrMalformedToken = errors.New("malformed bearer token")

// TokenExpiry reads the exp claim of a backend-issued JWT. The signature is
// not checked here; the backend verifies it on every request. ok is false when
// the token carries no expiry.
func TokenExpiry(token string) (exp time.Time, ok bool, err error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if expiry == nil {
		return time.Time{}, false, nil
	}
	return expiry.Time, true, nil
}

// tokenUsable reports whether token is absent or not yet expired at now.
func tokenUsable(token string, now time.Time) bool {
	exp, ok, err := TokenExpiry(token)
	if err != nil {
		return false
	}
	return !ok || now.Before(exp)
}
