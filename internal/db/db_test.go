package db

import (
	"testing"

	"machcat/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestInitializeRequiresURL(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: ""})
	if err == nil {
		t.Fatal("expected error when database URL is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestAutoMigrateWithSQLite(t *testing.T) {
	t.Parallel()

	sqliteDB, err := gorm.Open(sqlite.Open("file:memdb?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}

	if err := AutoMigrate(sqliteDB); err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}
}

func TestConfigurePropagatesInitializationError(t *testing.T) {
	t.Parallel()

	if _, err := Configure(config.DatabaseConfig{}); err == nil {
		t.Fatal("expected configuration error when initialize fails")
	}
}

func TestMustConfigurePanicsOnError(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when configuration fails")
		}
	}()

	MustConfigure(config.DatabaseConfig{})
}

func TestInitializeRejectsUnknownScheme(t *testing.T) {
	t.Parallel()

	if _, err := Initialize(config.DatabaseConfig{URL: "mysql://catalog"}); err == nil {
		t.Fatal("expected error for unsupported database URL")
	}
}

func TestDialectorFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"postgres://user@localhost/catalog", "postgres"},
		{"postgresql://user@localhost/catalog", "postgres"},
		{"host=localhost user=catalog dbname=catalog", "postgres"},
		{"sqlite://catalog.db", "sqlite"},
		{"file:catalog?mode=memory", "sqlite"},
		{"/var/lib/machcat/catalog.sqlite", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			dialector, err := dialectorFor(tt.url)
			if err != nil {
				t.Fatalf("dialectorFor(%q) error = %v", tt.url, err)
			}
			if got := dialector.Name(); got != tt.want {
				t.Fatalf("dialectorFor(%q) = %s, want %s", tt.url, got, tt.want)
			}
		})
	}
}

func TestConfigureWithSQLiteURL(t *testing.T) {
	database, err := Configure(config.DatabaseConfig{URL: "file:configure-test?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if Get() != database {
		t.Fatal("expected Get to return the configured handle")
	}
}
