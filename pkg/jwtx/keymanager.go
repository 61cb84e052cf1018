package jwtx

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aussiebroadwan/claims/pkg/cryptox"
)

// AlgorithmEdDSA is the only signing algorithm issued tokens use.
const AlgorithmEdDSA = "EdDSA"

// KeyManager owns the signing keys of an instance and the verifier that
// accepts tokens signed by any of them. Signing picks a key at random.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	signers []Signer
	mu      sync.RWMutex
}

// KeyManagerOptions configures the KeyManager.
type KeyManagerOptions struct {
	// Issuer is the issuer claim (iss) that will be validated in tokens.
	Issuer string

	// NumKeys specifies how many ephemeral signing keys to generate.
	// Defaults to 3 if not specified. Minimum is 1, maximum is 10.
	NumKeys int
}

// NewEphemeralKeyManager creates a KeyManager with keys that only exist in
// memory. All tokens become invalid when the service restarts.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = 3
	}
	if numKeys > 10 {
		numKeys = 10
	}

	pems := make([][]byte, 0, numKeys)
	for i := range numKeys {
		pemBytes, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate signer %d: %w", i+1, err)
		}
		pems = append(pems, pemBytes)
	}

	return NewKeyManager(opts.Issuer, pems...)
}

// NewKeyManager creates a KeyManager from PEM encoded Ed25519 private keys.
// Key ids are derived from the public key, so the same PEM always yields the
// same kid and tokens survive restarts.
func NewKeyManager(issuer string, pems ...[]byte) (*KeyManager, error) {
	if issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}
	if len(pems) == 0 {
		return nil, errors.New("jwtx: at least one signing key is required")
	}

	keyset := NewKeySet()
	km := &KeyManager{
		Verifier: NewVerifierEdDSA(keyset, issuer),
		KeySet:   keyset,
	}

	for i, pemBytes := range pems {
		signer, err := newEdDSASigner("", pemBytes)
		if err != nil {
			return nil, fmt.Errorf("jwtx: signing key %d: %w", i+1, err)
		}
		if err := km.AddSigner(signer); err != nil {
			return nil, err
		}
	}

	return km, nil
}

// KeyID derives the kid for a public key.
func KeyID(pub []byte) string {
	return "claims-" + cryptox.Fingerprint(pub)[:16]
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string {
	return AlgorithmEdDSA
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady() && km.NumSigners() > 0
}

// GetSigner returns a randomly selected signer from the available signing
// keys, or nil when none are loaded.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	default:
		return km.signers[rand.IntN(len(km.signers))]
	}
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// AddSigner adds a signing key to both the active signers and the KeySet.
func (km *KeyManager) AddSigner(signer Signer) error {
	if signer == nil {
		return errors.New("jwtx: signer cannot be nil")
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	if err := km.KeySet.AddSigner(signer); err != nil {
		return fmt.Errorf("jwtx: failed to add signer to keyset: %w", err)
	}
	km.signers = append(km.signers, signer)

	return nil
}
