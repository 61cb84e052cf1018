package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/claims/pkg/cryptox"
	"github.com/aussiebroadwan/claims/pkg/jwtx"
)

// InitKeys creates the KeyManager that signs and verifies access tokens.
//
// With a signing key file the key is loaded (or generated and written on
// first start) so tokens survive restarts. Without one, NumKeys ephemeral keys
// are generated and every token dies with the process.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	if cfg.SigningKeyFile == "" {
		km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
			Issuer:  cfg.Issuer,
			NumKeys: cfg.NumKeys,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
		}

		logger.Info("generated ephemeral signing keys",
			"algorithm", km.Algorithm(),
			"num_keys", km.NumSigners(),
			"issuer", cfg.Issuer,
		)
		logger.Warn("tokens issued by this instance will not survive a restart")
		return km, nil
	}

	pemBytes, created, err := cryptox.LoadOrGenerateEd25519Key(cfg.SigningKeyFile)
	if err != nil {
		return nil, err
	}

	km, err := jwtx.NewKeyManager(cfg.Issuer, pemBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	logger.Info("signing key loaded",
		"algorithm", km.Algorithm(),
		"path", cfg.SigningKeyFile,
		"created", created,
		"issuer", cfg.Issuer,
	)
	return km, nil
}
