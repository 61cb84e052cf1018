package jwtx

import (
	"time"

	"github.com/aussiebroadwan/claims/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL applies when no token lifetime is configured. There
// is no refresh flow, so a session lasts exactly this long.
const DefaultAccessTokenTTL = 7 * 24 * time.Hour

// Claims identify the caller only. Role and active state live in the store
// and are looked up again on every request.
type Claims struct {
	jwt.RegisteredClaims

	// Email at issue time, informational only.
	Email string `json:"email,omitempty"`
}

// NewAccessClaims stamps iat and nbf with now and expires the token after ttl.
func NewAccessClaims(subject, email, issuer string, ttl time.Duration, now time.Time) Claims {
	issued := jwt.NewNumericDate(now)
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        cryptox.GenerateTokenOrEmpty(cryptox.TokenSize128),
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  issued,
			NotBefore: issued,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
}

// ValidateIssuer is a no-op when expected is empty.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateSubject requires the sub claim that names the identity.
func (c *Claims) ValidateSubject() error {
	if c.Subject == "" {
		return ErrInvalidClaim
	}
	return nil
}

func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway checks exp and nbf against the current time,
// stretching both bounds by leeway for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	return c.validAt(time.Now(), leeway)
}

func (c *Claims) validAt(now time.Time, leeway time.Duration) error {
	if exp := c.ExpiresAt; exp != nil && now.After(exp.Add(leeway)) {
		return ErrExpired
	}
	if nbf := c.NotBefore; nbf != nil && now.Before(nbf.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
