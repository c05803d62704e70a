package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"machcat/data"
	"machcat/internal/catalog"
	"machcat/internal/config"
	"machcat/internal/db"
	applog "machcat/internal/log"
)

func main() {
	shardPath := filepath.Join("data", data.StainlessFile)
	if len(os.Args) > 1 {
		shardPath = os.Args[1]
	}

	if err := run(context.Background(), shardPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, shardPath string) error {
	if strings.TrimSpace(shardPath) == "" {
		return fmt.Errorf("shard path must not be empty")
	}

	if _, err := os.Stat(shardPath); err != nil {
		return fmt.Errorf("locate shard: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}

	shard, err := catalog.Open(shardPath)
	if err != nil {
		return fmt.Errorf("read shard: %w", err)
	}

	if errs := shard.Validate(); len(errs) > 0 {
		for _, e := range errs {
			applog.Warn(ctx, "shard validation problem",
				"record", e.RecordID,
				"field", e.Field,
				"kind", string(e.Kind),
				"message", e.Message,
			)
		}
		if cfg.Catalog.Strict {
			return fmt.Errorf("validate shard: %w", errs)
		}
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.SaveShard(ctx, database, shard); err != nil {
		return fmt.Errorf("save shard: %w", err)
	}

	meta := shard.Metadata()
	fmt.Fprintf(os.Stdout, "Imported %d materials (%s) from %s\n", shard.Len(), meta.Category, filepath.Base(shardPath))
	return nil
}
