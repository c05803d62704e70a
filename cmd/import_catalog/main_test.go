package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"machcat/internal/catalog"
	"machcat/internal/config"
	"machcat/internal/db"
	"machcat/models"
)

func TestRunImportsShardIntoSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	t.Setenv("DATABASE_URL", "sqlite://"+dbPath)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CATALOG_STRICT", "")

	shardPath := filepath.Join("..", "..", "data", "m_stainless_051_100.json")
	if err := run(context.Background(), shardPath); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	// A second run updates rows in place.
	if err := run(context.Background(), shardPath); err != nil {
		t.Fatalf("second run() error = %v", err)
	}

	database, err := db.Initialize(config.DatabaseConfig{URL: "sqlite://" + dbPath})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	var count int64
	if err := database.Model(&models.MaterialEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("count materials: %v", err)
	}
	if count != 50 {
		t.Fatalf("imported materials = %d, want 50", count)
	}

	shard, err := db.LoadShard(context.Background(), database, models.CategoryStainless)
	if err != nil {
		t.Fatalf("LoadShard() error = %v", err)
	}
	embedded, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	if shard.Digest() != embedded.Digest() {
		t.Fatalf("stored digest = %s, want %s", shard.Digest(), embedded.Digest())
	}
}

func TestRunRejectsInvalidShard(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://"+filepath.Join(t.TempDir(), "catalog.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CATALOG_STRICT", "true")

	base, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	meta := base.Metadata()
	meta.MaterialCount = 7
	path := filepath.Join(t.TempDir(), "bad.cbor")
	if err := catalog.Save(path, catalog.New(meta, base.Entries())); err != nil {
		t.Fatalf("catalog.Save() error = %v", err)
	}

	err = run(context.Background(), path)
	var verrs catalog.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("run() error = %v, want ValidationErrors", err)
	}
	if len(verrs.ByKind(catalog.KindKeyConsistency)) != 1 {
		t.Fatalf("violations = %v, want one key consistency problem", verrs)
	}
}

func TestRunRequiresPath(t *testing.T) {
	if err := run(context.Background(), " "); err == nil {
		t.Fatal("expected error for blank shard path")
	}
	if err := run(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing shard file")
	}
}
