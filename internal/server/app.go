// Package server wires the studio backend together: database, migrations,
// services and the HTTP API, and runs it until a stop signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/yogastudio/internal/logging"
	"github.com/dmitrijs2005/yogastudio/internal/server/auth"
	"github.com/dmitrijs2005/yogastudio/internal/server/config"
	"github.com/dmitrijs2005/yogastudio/internal/server/httpapi"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/yogastudio/internal/server/services"
)

const startupTimeout = 30 * time.Second

// Seams for tests.
var (
	openDB         = repomanager.Open
	newRepoManager = func() repomanager.RepositoryManager { return repomanager.NewPostgresRepositoryManager() }
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *HTTPServer
}

// NewApp opens the database, applies migrations and assembles the HTTP API.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, "json")

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	db, err := openDB(startCtx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(startCtx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migrate error: %w", err)
	}

	hasher := auth.NewPasswordHasher(c.BcryptCost)
	tokens := auth.NewTokenCodec([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	h := &httpapi.Handler{
		Auth:     services.NewAuthService(db, rm, hasher, tokens),
		Sessions: services.NewSessionService(db, rm),
		Ledger:   services.NewParticipationService(db, rm),
		Teachers: services.NewTeacherService(db, rm),
		Users:    services.NewUserService(db, rm, hasher),
		Health:   db,
	}
	router := httpapi.NewRouter(h, services.NewAuthorizer(db, rm, tokens), httpapi.Options{
		APIPrefix:          c.APIPrefix,
		CORSAllowedOrigins: c.CORSAllowedOrigins,
		AuthRateLimit: httpapi.RateLimitConfig{
			RequestsPerSecond: c.LoginRateLimit,
			Burst:             c.LoginRateBurst,
		},
	}, logger.With("module", "httpapi"))

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: NewHTTPServer(c.EndpointAddrHTTP, router, logger, c.ShutdownTimeout),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a stop signal arrives, then closes
// the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "address", app.config.EndpointAddrHTTP, "api_prefix", app.config.APIPrefix)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
