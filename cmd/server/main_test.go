package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"gorm.io/gorm"

	"machcat/internal/catalog"
	"machcat/internal/config"
	"machcat/internal/server"
	"machcat/models"
)

type stubServer struct {
	startErr       error
	stopErr        error
	blockUntilStop bool

	startCalled bool
	stopCalled  bool
	config      server.Config

	startGate   chan struct{}
	startNotify chan struct{}
}

func newStubServer(startErr, stopErr error, block bool) *stubServer {
	s := &stubServer{
		startErr:       startErr,
		stopErr:        stopErr,
		blockUntilStop: block,
		startNotify:    make(chan struct{}),
	}
	if block {
		s.startGate = make(chan struct{})
	}
	return s
}

func (s *stubServer) Start() error {
	s.startCalled = true
	close(s.startNotify)
	if s.blockUntilStop {
		<-s.startGate
	}
	return s.startErr
}

func (s *stubServer) Stop() error {
	s.stopCalled = true
	if s.blockUntilStop {
		close(s.startGate)
	}
	return s.stopErr
}

// restoreDependencies resets every injectable function when the test ends.
func restoreDependencies(t *testing.T) {
	t.Helper()

	originalLoadConfig := loadConfigFunc
	originalSetLogLevel := setLogLevelFunc
	originalMock := newMockDatabaseFunc
	originalConfigure := configureDatabase
	originalLoadStored := loadStoredShard
	originalOpen := openShardFile
	originalEmbedded := embeddedShard
	originalNewServer := newServerFunc
	originalSubscribe := subscribeShutdownSig

	t.Cleanup(func() {
		loadConfigFunc = originalLoadConfig
		setLogLevelFunc = originalSetLogLevel
		newMockDatabaseFunc = originalMock
		configureDatabase = originalConfigure
		loadStoredShard = originalLoadStored
		openShardFile = originalOpen
		embeddedShard = originalEmbedded
		newServerFunc = originalNewServer
		subscribeShutdownSig = originalSubscribe
	})
}

// serveUntilSignal wires a blocking stub server that receives SIGTERM once
// it has started.
func serveUntilSignal(t *testing.T) *stubServer {
	t.Helper()

	serverStub := newStubServer(http.ErrServerClosed, nil, true)
	newServerFunc = func(cfg server.Config) (serverLifecycle, error) {
		serverStub.config = cfg
		return serverStub, nil
	}

	shutdownCh := make(chan os.Signal, 1)
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return shutdownCh, func() {}
	}

	go func() {
		<-serverStub.startNotify
		shutdownCh <- syscall.SIGTERM
	}()
	return serverStub
}

func TestRunUsesMockDatabaseWhenConfigured(t *testing.T) {
	restoreDependencies(t)

	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{UseMock: true},
		Logging:  config.LoggingConfig{Level: "debug"},
		Catalog:  config.CatalogConfig{Category: models.CategoryStainless, Strict: true},
	}

	var mockCalled bool
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(level string) error { return nil }
	newMockDatabaseFunc = func(ctx context.Context) (*gorm.DB, error) {
		mockCalled = true
		return &gorm.DB{}, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		t.Fatal("configureDatabase should not be called when mock is enabled")
		return nil, nil
	}
	loadStoredShard = func(_ context.Context, _ *gorm.DB, category string) (*catalog.Shard, error) {
		if category != models.CategoryStainless {
			t.Fatalf("category = %q, want %q", category, models.CategoryStainless)
		}
		return catalog.Default()
	}

	serverStub := serveUntilSignal(t)

	code := run(context.Background())
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !mockCalled {
		t.Fatal("expected mock database to be used")
	}
	if !serverStub.startCalled || !serverStub.stopCalled {
		t.Fatal("expected server start and stop to be invoked")
	}
	if serverStub.config.Shard == nil || serverStub.config.Shard.Len() != 50 {
		t.Fatal("expected server to receive the loaded shard")
	}
}

func TestRunServesEmbeddedShardByDefault(t *testing.T) {
	restoreDependencies(t)

	cfg := config.Config{
		Server:  config.ServerConfig{Addr: ":8080"},
		Logging: config.LoggingConfig{Level: "info"},
		Catalog: config.CatalogConfig{Strict: true},
	}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	openShardFile = func(string) (*catalog.Shard, error) {
		t.Fatal("openShardFile should not be called without CATALOG_PATH")
		return nil, nil
	}

	var embeddedCalled bool
	embeddedShard = func() (*catalog.Shard, error) {
		embeddedCalled = true
		return catalog.Default()
	}

	serveUntilSignal(t)

	if code := run(context.Background()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !embeddedCalled {
		t.Fatal("expected embedded shard to be used")
	}
}

func TestRunServesShardFile(t *testing.T) {
	restoreDependencies(t)

	shard, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "stainless.yaml")
	if err := catalog.Save(path, shard); err != nil {
		t.Fatalf("catalog.Save() error = %v", err)
	}

	cfg := config.Config{
		Server:  config.ServerConfig{Addr: ":8080"},
		Logging: config.LoggingConfig{Level: "info"},
		Catalog: config.CatalogConfig{Path: path, Strict: true},
	}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }

	serverStub := serveUntilSignal(t)

	if code := run(context.Background()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if got := serverStub.config.Shard.Digest(); got != shard.Digest() {
		t.Fatalf("served digest = %s, want %s", got, shard.Digest())
	}
}

func invalidShard(t *testing.T) *catalog.Shard {
	t.Helper()
	base, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	entries := base.Entries()
	entries[3].Record.Physical.MeltingPoint.Solidus = 5000
	return catalog.New(base.Metadata(), entries)
}

func TestRunRefusesInvalidShardWhenStrict(t *testing.T) {
	restoreDependencies(t)

	cfg := config.Config{
		Server:  config.ServerConfig{Addr: ":8080"},
		Logging: config.LoggingConfig{Level: "info"},
		Catalog: config.CatalogConfig{Strict: true},
	}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	embeddedShard = func() (*catalog.Shard, error) { return invalidShard(t), nil }
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		t.Fatal("server should not be built for an invalid shard")
		return nil, nil
	}

	if code := run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunServesInvalidShardWhenLenient(t *testing.T) {
	restoreDependencies(t)

	cfg := config.Config{
		Server:  config.ServerConfig{Addr: ":8080"},
		Logging: config.LoggingConfig{Level: "info"},
		Catalog: config.CatalogConfig{Strict: false},
	}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	embeddedShard = func() (*catalog.Shard, error) { return invalidShard(t), nil }

	serverStub := serveUntilSignal(t)

	if code := run(context.Background()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !serverStub.startCalled {
		t.Fatal("expected server to start in lenient mode")
	}
}

func TestRunReturnsErrorWhenServerStartFails(t *testing.T) {
	restoreDependencies(t)

	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{UseMock: true},
		Logging:  config.LoggingConfig{Level: "info"},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil }
	loadStoredShard = func(context.Context, *gorm.DB, string) (*catalog.Shard, error) { return catalog.Default() }

	serverStub := newStubServer(errors.New("listener failure"), nil, false)
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		return serverStub, nil
	}

	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return make(chan os.Signal), func() {}
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if serverStub.stopCalled {
		t.Fatal("server stop should not be called on start error")
	}
}

func TestRunHandlesDatabaseConfigurationError(t *testing.T) {
	restoreDependencies(t)

	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{URL: "postgres://example", UseMock: false},
		Logging:  config.LoggingConfig{Level: "info"},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) {
		t.Fatal("mock database should not be used when URL is configured")
		return nil, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		return nil, errors.New("db connection refused")
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 on database configuration failure, got %d", code)
	}
}

func TestRunReturnsErrorWhenLogLevelInvalid(t *testing.T) {
	restoreDependencies(t)

	cfg := config.Config{Logging: config.LoggingConfig{Level: "invalid"}}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return errors.New("invalid level") }

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 for invalid log level, got %d", code)
	}
}
