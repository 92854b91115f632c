package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/cipware/securepay/internal/bank/http"
	"github.com/cipware/securepay/internal/bank/service"
	"github.com/cipware/securepay/internal/bank/store"
	"github.com/cipware/securepay/internal/bank/store/drivers/sqlite"
	"github.com/cipware/securepay/pkg/httpx"
	"github.com/cipware/securepay/pkg/jwtx"
	"github.com/cipware/securepay/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the bank service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.HS256

	accountService *service.AccountService
	ledgerService  *service.LedgerService
	adminService   *service.AdminService
	mfaService     *service.MFAService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "bank-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	signer, err := jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("bank service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down bank service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("bank service stopped")
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.accountService = &service.AccountService{
		Store:                app.db,
		Signer:               app.signer,
		Issuer:               app.cfg.Issuer,
		StartingBalanceCents: app.cfg.StartingBalanceCents,
		SessionTTL:           app.cfg.SessionTTL,
	}
	app.ledgerService = &service.LedgerService{
		Store:              app.db,
		MinWithdrawalCents: app.cfg.MinWithdrawalCents,
		DefaultCurrency:    app.cfg.DefaultCurrency,
	}
	app.adminService = &service.AdminService{
		Store:    app.db,
		Accounts: app.accountService,
	}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	limits := httpapi.Limits{
		Strict:          httpx.NewSlidingWindowLimiter(app.cfg.StrictLimit, app.cfg.RateLimitWindow),
		Lenient:         httpx.NewSlidingWindowLimiter(app.cfg.LenientLimit, app.cfg.RateLimitWindow),
		GlobalPerWindow: app.cfg.GlobalLimit,
		GlobalWindow:    app.cfg.RateLimitWindow,
	}

	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
		limits,
	)

	router.AccountService = app.accountService
	router.LedgerService = app.ledgerService
	router.AdminService = app.adminService
	router.MFAService = app.mfaService

	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
