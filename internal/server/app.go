// Package server wires configuration, storage, the auth service and the gRPC
// endpoint together and runs them until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userboarding/internal/logging"
	"github.com/dmitrijs2005/userboarding/internal/server/config"
	"github.com/dmitrijs2005/userboarding/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userboarding/internal/server/services"
	"github.com/dmitrijs2005/userboarding/internal/tracing"

	gs "github.com/dmitrijs2005/userboarding/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authService *services.AuthService
}

// NewApp validates c and opens the database pool. Nothing is migrated or
// served until Run.
func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(c, db, repomanager.NewPostgresRepositoryManager(), logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) (*App, error) {
	svc, err := services.NewAuthService(db, m, c, logger)
	if err != nil {
		return nil, err
	}
	return &App{config: c, logger: logger, db: db, repomanager: m, authService: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run applies migrations and serves gRPC until ctx is cancelled or a
// termination signal arrives. The database pool is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	shutdownTracing, err := tracing.Setup(ctx, "userboarding-server", app.config.OtelEndpoint)
	if err != nil {
		app.logger.Error(ctx, "tracing setup failed", "error", err)
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			app.logger.Warn(ctx, "tracing shutdown failed", "error", err)
		}
	}()

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
		return err
	}

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.authService, app.config.RequestTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
