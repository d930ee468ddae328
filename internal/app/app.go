// Package app assembles the modules repository from configuration and runs a
// single command against it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/trainingkeeper/internal/assets"
	"github.com/dmitrijs2005/trainingkeeper/internal/cli"
	"github.com/dmitrijs2005/trainingkeeper/internal/config"
	"github.com/dmitrijs2005/trainingkeeper/internal/identity"
	"github.com/dmitrijs2005/trainingkeeper/internal/instance"
	"github.com/dmitrijs2005/trainingkeeper/internal/logging"
	"github.com/dmitrijs2005/trainingkeeper/internal/repositories/modules"
	"github.com/dmitrijs2005/trainingkeeper/internal/storage"
	"github.com/dmitrijs2005/trainingkeeper/internal/storage/memory"
	"github.com/dmitrijs2005/trainingkeeper/internal/storage/postgres"
	"github.com/dmitrijs2005/trainingkeeper/internal/storage/redis"
	"github.com/dmitrijs2005/trainingkeeper/internal/storage/sqlite"
	"github.com/dmitrijs2005/trainingkeeper/internal/translation"
	"github.com/google/uuid"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repo    *modules.Repository
	closers []func() error
}

// NewApp logs JSON to stderr; stdout is reserved for command output.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stderr, slog.LevelInfo).With("run_id", uuid.NewString())
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: c, logger: logger}

	kv, err := app.openStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	httpClient := &http.Client{Timeout: c.HTTPTimeout}

	fetcher, err := newFetcher(ctx, c, httpClient)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("assets init error: %w", err)
	}

	var translations translation.Provider
	if c.PoEditorToken != "" {
		translations = translation.NewPoEditor(c.PoEditorEndpoint, c.PoEditorToken, httpClient)
	}

	var inst instance.Context = instance.NewStaticContext(c.InstanceVersion, c.InstalledApps)
	if c.InstanceURL != "" {
		inst = instance.NewDHIS2(c.InstanceURL, c.InstanceUser, c.InstancePassword, httpClient)
	}

	app.repo = modules.NewRepository(modules.Deps{
		Store:          storage.NewClient(kv),
		Assets:         fetcher,
		Translations:   translations,
		Users:          identity.ContextProvider{Fallback: identity.NewTokenProvider(c.AuthToken, []byte(c.TokenSecret))},
		Instance:       inst,
		Logger:         logger,
		Defaults:       modules.NewDefaultSet(c.DefaultModules...),
		MaxConcurrency: c.MaxConcurrency,
	})

	return app, nil
}

func (app *App) openStore(ctx context.Context) (storage.KV, error) {
	switch app.config.StoreDriver {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, app.config.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, db.Close)
		return sqlite.New(db), nil
	case config.StorePostgres:
		db, err := postgres.Open(ctx, app.config.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, db.Close)
		return postgres.New(db), nil
	case config.StoreRedis:
		rdb, err := redis.Open(ctx, app.config.RedisAddr)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, rdb.Close)
		return redis.New(rdb, app.config.RedisPrefix), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", app.config.StoreDriver)
}

// newFetcher returns a nil Fetcher for the "none" source, which disables
// bootstrap and reset.
func newFetcher(ctx context.Context, c *config.Config, client *http.Client) (assets.Fetcher, error) {
	switch c.AssetSource {
	case config.AssetsNone:
		return nil, nil
	case config.AssetsHTTP:
		return assets.NewHTTPFetcher(c.AssetBaseURL, client), nil
	case config.AssetsS3:
		f, err := assets.NewS3Fetcher(ctx, assets.S3Settings{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
			Prefix:       c.S3Prefix,
		})
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, fmt.Errorf("unknown asset source %q", c.AssetSource)
}

func (app *App) Repository() *modules.Repository {
	return app.repo
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run executes one command. A signal cancels the command's context.
func (app *App) Run(ctx context.Context, args []string) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	return cli.NewApp(app.repo, app.logger).Run(ctx, args)
}

// Close releases the store connection.
func (app *App) Close() error {
	var errs []error
	for _, c := range app.closers {
		errs = append(errs, c())
	}
	app.closers = nil
	return errors.Join(errs...)
}
