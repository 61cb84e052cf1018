package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpapi "github.com/aussiebroadwan/claims/internal/claims/http"
	"github.com/aussiebroadwan/claims/internal/claims/service"
	"github.com/aussiebroadwan/claims/internal/claims/store"
	"github.com/aussiebroadwan/claims/internal/claims/store/drivers/bolt"
	"github.com/aussiebroadwan/claims/internal/claims/store/drivers/sqlite"
	"github.com/aussiebroadwan/claims/pkg/cryptox"
	"github.com/aussiebroadwan/claims/pkg/jwtx"
	"github.com/aussiebroadwan/claims/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application wires the claims service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager

	identityService  *service.IdentityService
	expenseService   *service.ExpenseService
	analyticsService *service.AnalyticsService

	server *http.Server
	router *httpapi.Router
}

// New loads the pepper, opens and migrates the store, prepares signing keys
// and builds the router. Nothing listens until Run.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "claims-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("load pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("signing keys: %w", err)
	}
	app.keyManager = keyManager

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves HTTP until ctx is cancelled or the listener fails, then drains
// in-flight requests and closes the store.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("claims service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
	)

	listenErr := make(chan error, 1)
	go func() { listenErr <- app.server.ListenAndServe() }()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		_ = app.db.Close()
		return fmt.Errorf("listen on :%d: %w", app.cfg.Port, err)
	case <-ctx.Done():
		app.logger.Info("stop requested", "cause", context.Cause(ctx))
	}

	return app.Shutdown()
}

// Shutdown stops accepting connections, waits up to the grace period for
// handlers to finish and then closes the store.
func (app *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	var errs []error
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Warn("grace period elapsed, forcing connections closed", "error", err)
		errs = append(errs, err, app.server.Close())
	}
	if err := app.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	app.logger.Info("claims service stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.StoreDriver {
	case DriverBolt:
		db, err = bolt.NewStore(app.cfg.DatabaseFile)
	default:
		db, err = sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("open %s store: %w", app.cfg.StoreDriver, err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate %s store: %w", app.cfg.StoreDriver, err)
	}

	app.logger.Info("database ready", "driver", app.cfg.StoreDriver, "path", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initServices() {
	tokens := &service.TokenService{
		KeyManager: app.keyManager,
		Issuer:     app.cfg.Issuer,
		TTL:        app.cfg.TokenTTL,
	}

	app.identityService = &service.IdentityService{
		Store:  app.db,
		Tokens: tokens,
		Hasher: &cryptox.Argon2id{},
	}
	app.expenseService = &service.ExpenseService{Store: app.db}
	app.analyticsService = &service.AnalyticsService{Store: app.db}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.keyManager, BuildVersion, app.db, app.logger)
	router.IdentityService = app.identityService
	router.ExpenseService = app.expenseService
	router.AnalyticsService = app.analyticsService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
