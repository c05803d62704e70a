package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"machcat/internal/catalog"
	"machcat/internal/config"
	"machcat/internal/db"
	"machcat/internal/db/mock"
	applog "machcat/internal/log"
	"machcat/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	loadStoredShard     = db.LoadShard
	openShardFile       = catalog.Open
	embeddedShard       = catalog.Default
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	shard, err := loadShard(ctx, cfg)
	if err != nil {
		applog.Error(ctx, "failed to load catalog", "error", err)
		return 1
	}

	if errs := shard.Validate(); len(errs) > 0 {
		for _, e := range errs {
			applog.Warn(ctx, "catalog validation problem",
				"record", e.RecordID,
				"field", e.Field,
				"kind", string(e.Kind),
				"message", e.Message,
			)
		}
		if cfg.Catalog.Strict {
			applog.Error(ctx, "refusing to serve invalid catalog", "violations", len(errs))
			return 1
		}
	}

	srv, err := newServerFunc(server.Config{
		Addr:              cfg.Server.Addr,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		Shard:             shard,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr, "materials", shard.Len())
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
		if err := srv.Stop(); err != nil {
			applog.Error(ctx, "graceful shutdown failed", "error", err)
			return 1
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	}
}

// loadShard picks the catalog source: the mock database, then DATABASE_URL,
// then CATALOG_PATH, then the shard embedded in the binary.
func loadShard(ctx context.Context, cfg config.Config) (*catalog.Shard, error) {
	var (
		database *gorm.DB
		err      error
	)

	switch {
	case cfg.Database.UseMock:
		applog.Debug(ctx, "serving catalog from mock database")
		database, err = newMockDatabaseFunc(ctx)
	case cfg.Database.URL != "":
		applog.Debug(ctx, "serving catalog from database", "category", cfg.Catalog.Category)
		database, err = configureDatabase(cfg.Database)
	case cfg.Catalog.Path != "":
		applog.Debug(ctx, "serving catalog from file", "path", cfg.Catalog.Path)
		return openShardFile(cfg.Catalog.Path)
	default:
		applog.Debug(ctx, "serving embedded catalog")
		return embeddedShard()
	}
	if err != nil {
		return nil, err
	}
	return loadStoredShard(ctx, database, cfg.Catalog.Category)
}
