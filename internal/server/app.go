// Package server wires the inkwell core together: it opens the database,
// applies pending schema migrations, resolves the token signing secret and
// serves the gRPC API until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/auth"
	"github.com/dmitrijs2005/inkwell/internal/server/config"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/inkwell/internal/server/secrets"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
	"github.com/pressly/goose/v3"

	gs "github.com/dmitrijs2005/inkwell/internal/server/grpc"
)

// Seams for tests.
var (
	openDB          = sql.Open
	newRepoManager  = repomanager.NewRepositoryManager
	secretsProvider = secrets.FromConfig
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewJSON(os.Stdout, c.LogLevel))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	dialect, err := repomanager.ParseDialect(c.MigrationsDialect)
	if err != nil {
		return nil, err
	}
	// The repositories scan pgx types and classify *pgconn.PgError codes.
	if dialect != goose.DialectPostgres {
		return nil, fmt.Errorf("server requires postgres, got dialect %q: %w", c.MigrationsDialect, common.ErrValidation)
	}

	db, err := openDB(repomanager.DriverName(dialect), c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	srv, err := buildServer(ctx, c, logger, db, newRepoManager(dialect))
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func buildServer(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*gs.GRPCServer, error) {

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Migrations applied")

	provider, err := secretsProvider(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("secret provider: %w", err)
	}
	secret, err := provider.Secret(ctx)
	if err != nil {
		return nil, fmt.Errorf("load token secret: %w", err)
	}

	tokens, err := auth.NewTokenService(secret, c.AccessTokenValidityDuration, auth.SystemClock{})
	if err != nil {
		return nil, err
	}

	accounts, err := services.NewAccountService(db, rm, auth.NewHasher(auth.DefaultArgon2Params), tokens)
	if err != nil {
		return nil, err
	}
	posts := services.NewPostService(db, rm)

	return gs.NewGRPCServer(c.EndpointAddrGRPC, logger, accounts, posts, auth.NewGate(tokens)), nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the database pool.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "close db", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}
