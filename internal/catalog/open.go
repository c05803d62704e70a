package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"machcat/data"
	applog "machcat/internal/log"
)

// Open reads and decodes the shard at path, picking the format from the
// file extension.
func Open(path string) (*Shard, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return OpenFormat(path, format)
}

// OpenFormat reads and decodes the shard at path in an explicit format.
func OpenFormat(path string, format Format) (*Shard, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shard: %w", err)
	}
	shard, err := Decode(raw, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	applog.Debug(context.Background(), "catalog shard loaded",
		"path", path,
		"format", string(format),
		"materials", shard.Len(),
		"digest", shard.Digest(),
	)
	return shard, nil
}

// Save encodes s to path, picking the format from the file extension.
func Save(path string, s *Shard) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, s, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write shard: %w", err)
	}
	applog.Debug(context.Background(), "catalog shard saved",
		"path", path,
		"format", string(format),
		"bytes", buf.Len(),
	)
	return nil
}

var defaultShard = sync.OnceValues(func() (*Shard, error) {
	shard, err := Decode(data.Stainless, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", data.StainlessFile, err)
	}
	return shard, nil
})

// Default returns the stainless shard embedded in the binary. It is decoded
// once and shared.
func Default() (*Shard, error) {
	return defaultShard()
}
