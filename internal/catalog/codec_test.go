package catalog

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"machcat/data"
)

func TestRoundTripEveryFormat(t *testing.T) {
	t.Parallel()

	shard := defaultShardForTest(t)

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, shard, format))

			decoded, err := Decode(buf.Bytes(), format)
			require.NoError(t, err)

			if diff := cmp.Diff(shard.Metadata(), decoded.Metadata()); diff != "" {
				t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(shard.Entries(), decoded.Entries()); diff != "" {
				t.Fatalf("entries mismatch (-want +got):\n%s", diff)
			}
			if errs := decoded.Validate(); len(errs) != 0 {
				t.Fatalf("Validate() after round trip = %v", errs)
			}
			if decoded.Digest() != shard.Digest() {
				t.Fatalf("Digest() = %s, want %s", decoded.Digest(), shard.Digest())
			}
		})
	}
}

func TestEncodeJSONKeepsAuthoredOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, defaultShardForTest(t), FormatJSON))
	out := buf.String()

	require.True(t, strings.HasSuffix(out, "}\n"), "output should end with a newline")
	require.Less(t, strings.Index(out, `"metadata"`), strings.Index(out, `"materials"`))
	require.Less(t, strings.Index(out, `"M-SS-051": {`), strings.Index(out, `"M-SS-100": {`))
	require.Contains(t, out, `"rockwell_c": null`)
}

func TestEncodeCompressesSnapshot(t *testing.T) {
	t.Parallel()

	shard := defaultShardForTest(t)
	var plain, packed bytes.Buffer
	require.NoError(t, Encode(&plain, shard, FormatCBOR))
	require.NoError(t, Encode(&packed, shard, FormatCBORZstd))
	require.Less(t, packed.Len(), plain.Len())
	require.Less(t, plain.Len(), len(data.Stainless))
}

func TestEncodeIsDeterministic(t *testing.T) {
	t.Parallel()

	shard := defaultShardForTest(t)
	for _, format := range Formats {
		var a, b bytes.Buffer
		require.NoError(t, Encode(&a, shard, format))
		require.NoError(t, Encode(&b, shard, format))
		require.True(t, bytes.Equal(a.Bytes(), b.Bytes()), "%s encoding differs between runs", format)
	}
}

func TestDecodeJSONC(t *testing.T) {
	t.Parallel()

	const doc = `{
	// empty shard kept for tooling tests
	"metadata": {
		"file": "empty.jsonc",
		"category": "M_STAINLESS",
		"materialCount": 0,
		"idRange": {"start": "", "end": ""},
		"schemaVersion": "3.1.0",
		"created": "2024-03-12",
		"lastUpdated": "2024-03-12", /* trailing comma */
	},
	"materials": {},
}`

	shard, err := Decode([]byte(doc), FormatJSONC)
	require.NoError(t, err)
	require.Equal(t, 0, shard.Len())
	require.Equal(t, "empty.jsonc", shard.Metadata().File)
	require.Empty(t, shard.Validate())
}

func TestDecodeUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := Decode(data.Stainless, Format("toml"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Decode() error = %v, want ErrUnknownFormat", err)
	}
	if err := Encode(&bytes.Buffer{}, defaultShardForTest(t), Format("toml")); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Encode() error = %v, want ErrUnknownFormat", err)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "json", want: FormatJSON},
		{input: "JSONC", want: FormatJSONC},
		{input: "yml", want: FormatYAML},
		{input: " yaml ", want: FormatYAML},
		{input: "cbor", want: FormatCBOR},
		{input: "zst", want: FormatCBORZstd},
		{input: "cbor.zst", want: FormatCBORZstd},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) error = nil, want error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "data/m_stainless_051_100.json", want: FormatJSON},
		{path: "edits/shard.jsonc", want: FormatJSONC},
		{path: "shard.YAML", want: FormatYAML},
		{path: "/tmp/shard.cbor", want: FormatCBOR},
		{path: "/tmp/shard.cbor.zst", want: FormatCBORZstd},
		{path: "README", wantErr: true},
		{path: "shard.txt", wantErr: true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			if err == nil {
				t.Errorf("FormatFromPath(%q) error = nil, want error", tt.path)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v, want %q", tt.path, got, err, tt.want)
		}
	}
}

func TestSaveAndOpen(t *testing.T) {
	t.Parallel()

	shard := defaultShardForTest(t)
	dir := t.TempDir()

	for _, name := range []string{"shard.json", "shard.yaml", "shard.cbor", "shard.cbor.zst"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, shard))

		opened, err := Open(path)
		require.NoError(t, err, name)
		require.Equal(t, shard.IDs(), opened.IDs(), name)
		require.Equal(t, shard.Digest(), opened.Digest(), name)
	}
}

func TestOpenMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Open(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("Open() error = nil, want error for missing file")
	}
}

func TestDigestTracksContent(t *testing.T) {
	t.Parallel()

	shard := defaultShardForTest(t)
	digest := shard.Digest()
	require.Len(t, digest, 64)
	require.Equal(t, digest, shard.Digest())

	entries := shard.Entries()
	entries[0].Record.Notes += " revised"
	changed := New(shard.Metadata(), entries)
	require.NotEqual(t, digest, changed.Digest())
}

func TestKeyedDigest(t *testing.T) {
	t.Parallel()

	shard := defaultShardForTest(t)
	data, err := encodeCBOR(shard)
	require.NoError(t, err)

	got, err := keyedDigest(digestKey[:], data)
	require.NoError(t, err)
	require.Equal(t, shard.Digest(), got)

	_, err = keyedDigest([]byte("short key"), data)
	require.Error(t, err)
}
