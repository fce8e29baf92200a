// Package server wires the application together: configuration, logging,
// database pool, migrations, services, and the HTTP boundary, plus graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/toolly/toolly/internal/logging"
	"github.com/toolly/toolly/internal/server/blob"
	"github.com/toolly/toolly/internal/server/config"
	"github.com/toolly/toolly/internal/server/httpapi"
	"github.com/toolly/toolly/internal/server/repositories/repomanager"
	"github.com/toolly/toolly/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	rm     repomanager.RepositoryManager
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger := logging.NewZerologLogger(zl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	var store blob.Store
	if cfg.AttachmentStore == "s3" {
		store, err = blob.NewS3Store(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
	}

	srv := httpapi.NewServer(cfg, logger,
		services.NewUserService(db, rm, cfg),
		services.NewFolderService(db, rm, cfg),
		services.NewTodoService(db, rm, cfg, store, logger),
		services.NewPostitService(db, rm, cfg),
	)

	return &App{config: cfg, logger: logger, db: db, rm: rm, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	if err := app.rm.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	defer app.db.Close()
	if err := app.server.Serve(ctx); err != nil {
		return fmt.Errorf("http server error: %w", err)
	}
	app.logger.Info(ctx, "app stopped")
	return nil
}
