// Package authinfo decodes the stored access token for display. The client
// holds no signing secret, so tokens are parsed without verification; the
// backend remains the authority on whether a token is actually valid.
package authinfo

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token fields griha surfaces in `auth status` and the
// status bar.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Plan  string `json:"plan"`
	jwt.RegisteredClaims
}

// Inspect decodes a token without verifying its signature.
func Inspect(token string) (*Claims, error) {
	if token == "" {
		return nil, errors.New("authinfo: empty token")
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Expired reports whether the token carries an exp claim in the past.
// Tokens without an exp claim are treated as unexpired.
func (c *Claims) Expired() bool {
	return c.ExpiresAt != nil && time.Now().After(c.ExpiresAt.Time)
}

// ExpiresIn returns the time until expiry, zero when already expired or
// when the token has no exp claim.
func (c *Claims) ExpiresIn() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	d := time.Until(c.ExpiresAt.Time)
	if d < 0 {
		return 0
	}
	return d
}
