package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/claims/pkg/jwtx"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

// EnvVarPrefix maps --store-driver to CLAIMS_STORE_DRIVER and so on.
const EnvVarPrefix = "CLAIMS"

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

type Config struct {
	Issuer              string        // issuer claim for tokens (default: claims)
	TokenTTL            time.Duration // access token lifetime (default: 168h)
	SigningKeyFile      string        // PEM Ed25519 key, created on first start; empty means ephemeral keys
	NumKeys             int           // number of ephemeral signing keys (default: 3, min: 1, max: 10)
	StoreDriver         string        // sqlite or bolt (default: sqlite)
	DatabaseFile        string        // path to the database file (default: ./claims.db)
	PepperFile          string        // path to the password pepper (default: ./pepper)
	Env                 string        // dev, staging, prod (default: dev)
	LogLevel            string        // debug, info, warn, error (default: info)
	LogFormat           string        // json, text (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // graceful shutdown timeout (default: 10s)
}

// LoadConfig parses args and CLAIMS_* environment variables. Flags win over
// the environment. Parse errors, ff.ErrHelp included, carry the usage text.
func LoadConfig(args []string) (Config, error) {
	fs := ff.NewFlagSet("claims")
	var (
		issuer      = fs.StringLong("issuer", "claims", "issuer claim for access tokens")
		tokenTTL    = fs.DurationLong("token-ttl", jwtx.DefaultAccessTokenTTL, "access token lifetime")
		signingKey  = fs.StringLong("signing-key-file", "", "Ed25519 PEM signing key, generated if missing (empty: ephemeral keys)")
		numKeys     = fs.IntLong("num-keys", 3, "number of ephemeral signing keys")
		storeDriver = fs.StringLong("store-driver", DriverSQLite, "store driver: 'sqlite' or 'bolt'")
		dbFile      = fs.StringLong("database-file", "claims.db", "database file path")
		pepperFile  = fs.StringLong("pepper-file", "pepper", "password pepper file path")
		env         = fs.StringLong("env", "dev", "environment (dev, staging, prod)")
		logLevel    = fs.StringLong("log-level", "info", "log level (debug, info, warn, error)")
		logFormat   = fs.StringLong("log-format", "json", "log format (json, text)")
		port        = fs.IntLong("port", 8080, "HTTP server port")
		grace       = fs.DurationLong("shutdown-grace-period", 10*time.Second, "graceful shutdown timeout")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix(EnvVarPrefix)); err != nil {
		return Config{}, fmt.Errorf("%w\n\n%s", err, ffhelp.Flags(fs))
	}

	cfg := Config{
		Issuer:              *issuer,
		TokenTTL:            *tokenTTL,
		SigningKeyFile:      *signingKey,
		NumKeys:             *numKeys,
		StoreDriver:         *storeDriver,
		DatabaseFile:        *dbFile,
		PepperFile:          *pepperFile,
		Env:                 *env,
		LogLevel:            *logLevel,
		LogFormat:           *logFormat,
		Port:                *port,
		ShutdownGracePeriod: *grace,
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error

	if c.Issuer == "" {
		errs = append(errs, errors.New("issuer must not be empty"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL))
	}
	if c.StoreDriver != DriverSQLite && c.StoreDriver != DriverBolt {
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.StoreDriver))
	}
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("database file must not be empty"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}

	return errors.Join(errs...)
}
