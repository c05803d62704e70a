package catalog

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// cborEnc uses Core Deterministic Encoding so the same shard always yields
// the same bytes, which the content digest relies on.
var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

// zstd coders are shared; EncodeAll and DecodeAll are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error

	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("catalog: CBOR encoder initialization failed: " + err.Error())
	}

	cborDec, err = cbor.DecOptions{
		// Generic decoding feeds the shape checker, which expects string keys.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("catalog: CBOR decoder initialization failed: " + err.Error())
	}

	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("catalog: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("catalog: zstd decoder initialization failed: " + err.Error())
	}
}

func compress(data []byte) []byte {
	return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/4))
}

func decompress(data []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}

// snapshot is the CBOR layout. Materials is a list rather than a map so
// authored order survives deterministic encoding, which sorts map keys.
type snapshot struct {
	Metadata  cbor.RawMessage `cbor:"metadata"`
	Materials []snapshotEntry `cbor:"materials"`
}

type snapshotEntry struct {
	Key    string          `cbor:"key"`
	Record cbor.RawMessage `cbor:"record"`
}
