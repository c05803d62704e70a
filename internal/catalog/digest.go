package catalog

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	applog "machcat/internal/log"
)

// digestKey separates shard digests from any other BLAKE3 use of the same
// bytes.
var digestKey = [32]byte{
	'm', 'a', 'c', 'h', 'c', 'a', 't', '.', 's', 'h', 'a', 'r', 'd', '.', 'd', 'i',
	'g', 'e', 's', 't', '.', 'v', '1',
}

// Digest returns the hex BLAKE3 hash of the shard's deterministic CBOR
// encoding. Equal shards hash equally whatever format they were read from.
// It returns "" when the shard cannot be encoded; the failure is logged.
func (s *Shard) Digest() string {
	s.digestOnce.Do(func() {
		data, err := encodeCBOR(s)
		if err != nil {
			applog.Error(context.Background(), "shard digest failed",
				"category", s.meta.Category, "stage", "encode", "error", err)
			return
		}
		digest, err := keyedDigest(digestKey[:], data)
		if err != nil {
			applog.Error(context.Background(), "shard digest failed",
				"category", s.meta.Category, "stage", "hash", "error", err)
			return
		}
		s.digest = digest
	})
	return s.digest
}

func keyedDigest(key, data []byte) (string, error) {
	h, err := blake3.NewKeyed(key)
	if err != nil {
		return "", fmt.Errorf("keyed hash: %w", err)
	}
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
