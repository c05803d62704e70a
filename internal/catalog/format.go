package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names a shard encoding.
type Format string

const (
	FormatJSON Format = "json"
	// FormatJSONC is JSON with comments and trailing commas, for
	// hand-edited shards. It is written back out as plain JSON.
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
	// FormatCBOR is a deterministic binary snapshot.
	FormatCBOR Format = "cbor"
	// FormatCBORZstd is FormatCBOR compressed with zstd.
	FormatCBORZstd Format = "cbor.zst"
)

// Formats lists every supported encoding.
var Formats = []Format{FormatJSON, FormatJSONC, FormatYAML, FormatCBOR, FormatCBORZstd}

// ParseFormat resolves a format name, accepting "yml" and "zst" aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "jsonc":
		return FormatJSONC, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	case "cbor.zst", "zst", "zstd":
		return FormatCBORZstd, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the encoding from a file name's extension.
func FormatFromPath(path string) (Format, error) {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".cbor.zst") {
		return FormatCBORZstd, nil
	}
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}
