package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/pkg/jwtx"
)

// TokenService issues and verifies stateless access tokens. Nothing about an
// issued token is stored, so there is no revocation list.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	Issuer     string
	TTL        time.Duration
}

// Issue signs a token for the identity with a key chosen by the key manager.
func (s *TokenService) Issue(i domain.Identity, now time.Time) (domain.AccessToken, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	signer := s.KeyManager.GetSigner()
	if signer == nil {
		return domain.AccessToken{}, errors.New("no signing key available")
	}

	claims := jwtx.NewAccessClaims(i.ID, i.Email, s.Issuer, ttl, now)
	token, err := signer.Sign(claims)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}

	return domain.AccessToken{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Verify checks signature, algorithm, issuer, expiry and not-before. Every
// failure is reported as ErrTokenInvalid.
func (s *TokenService) Verify(raw string) (jwtx.Claims, error) {
	if raw == "" {
		return jwtx.Claims{}, ErrTokenInvalid
	}

	claims, err := s.KeyManager.Verifier.Verify(raw)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if err := claims.ValidateSubject(); err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return claims, nil
}
