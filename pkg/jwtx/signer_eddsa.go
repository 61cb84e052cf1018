package jwtx

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSASigner signs access tokens with one Ed25519 key. Tokens carry the
// key's kid so verifiers can pick the matching public key.
type EdDSASigner struct {
	kid  string
	priv ed25519.PrivateKey
}

var _ Signer = (*EdDSASigner)(nil)

// newEdDSASigner decodes pemKey and wraps it. An empty kid is replaced by
// KeyID of the public half.
func newEdDSASigner(kid string, pemKey []byte) (*EdDSASigner, error) {
	priv, err := parseEd25519PEM(pemKey)
	if err != nil {
		return nil, err
	}
	if kid == "" {
		kid = KeyID(priv.Public().(ed25519.PublicKey))
	}

	s := &EdDSASigner{kid: kid, priv: priv}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// parseEd25519PEM accepts a single PKCS8 "PRIVATE KEY" block.
func parseEd25519PEM(pemKey []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(pemKey)
	switch {
	case block == nil:
		return nil, errors.New("jwtx: no PEM block in signing key")
	case block.Type != "PRIVATE KEY":
		return nil, fmt.Errorf("jwtx: signing key is %q, want PKCS8 PRIVATE KEY", block.Type)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}
	priv, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("jwtx: signing key is %T, want ed25519", parsed)
	}
	return priv, nil
}

func (s *EdDSASigner) Alg() string { return AlgorithmEdDSA }
func (s *EdDSASigner) KID() string { return s.kid }

func (s *EdDSASigner) PublicKey() ed25519.PublicKey {
	return s.priv.Public().(ed25519.PublicKey)
}

// Sign returns the compact serialisation of claims.
func (s *EdDSASigner) Sign(claims Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	tok.Header["kid"] = s.kid
	return tok.SignedString(s.priv)
}

func (s *EdDSASigner) Validate() error {
	if s.kid == "" {
		return errors.New("jwtx: signer has no kid")
	}
	if len(s.priv) != ed25519.PrivateKeySize {
		return fmt.Errorf("jwtx: Ed25519 private key is %d bytes, want %d", len(s.priv), ed25519.PrivateKeySize)
	}
	return nil
}
