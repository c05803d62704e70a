package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"machcat/models"
)

// Decode parses a shard in the given format. Only syntax errors abort the
// load; missing fields, wrong types and inconsistent keys are kept on the
// shard and reported by Validate, so every problem surfaces in one pass.
func Decode(data []byte, format Format) (*Shard, error) {
	var (
		raw *rawShard
		err error
	)

	switch format {
	case FormatJSON, FormatJSONC:
		raw, err = decodeJSON(data)
	case FormatYAML:
		raw, err = decodeYAML(data)
	case FormatCBOR:
		raw, err = decodeCBOR(data)
	case FormatCBORZstd:
		var plain []byte
		plain, err = decompress(data)
		if err == nil {
			raw, err = decodeCBOR(plain)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s shard: %w", format, err)
	}

	return raw.assemble(), nil
}

// rawValue is a decoded-but-untyped document fragment: its generic form for
// shape checking plus a way to decode it into a typed value.
type rawValue struct {
	generic any
	decode  func(v any) error
}

type rawEntry struct {
	key   string
	value rawValue
}

type rawShard struct {
	meta         *rawValue
	hasMaterials bool
	entries      []rawEntry
	issues       ValidationErrors
}

func (r *rawShard) schemaIssue(field, msg string) {
	r.issues = append(r.issues, ValidationError{Field: field, Kind: KindSchema, Message: msg})
}

func (r *rawShard) assemble() *Shard {
	issues := r.issues

	var meta models.ShardMetadata
	if r.meta == nil {
		issues = append(issues, ValidationError{Field: "metadata", Kind: KindSchema, Message: "missing required field"})
	} else {
		shape := checkShape("", "metadata", r.meta.generic, metadataSchema)
		if err := r.meta.decode(&meta); err != nil && len(shape) == 0 {
			shape = append(shape, ValidationError{Field: "metadata", Kind: KindSchema, Message: err.Error()})
		}
		issues = append(issues, shape...)
	}
	if !r.hasMaterials {
		issues = append(issues, ValidationError{Field: "materials", Kind: KindSchema, Message: "missing required field"})
	}

	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		shape := checkShape(e.key, "", e.value.generic, recordSchema)
		var rec models.MaterialRecord
		if err := e.value.decode(&rec); err != nil && len(shape) == 0 {
			shape = append(shape, ValidationError{RecordID: e.key, Field: "<record>", Kind: KindSchema, Message: err.Error()})
		}
		issues = append(issues, shape...)
		entries = append(entries, Entry{Key: e.key, Record: rec})
	}

	return newShard(meta, entries, issues)
}

func decodeJSON(data []byte) (*rawShard, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("expected top-level object, got %v", tok)
	}

	raw := &rawShard{}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		var msg json.RawMessage
		if err := dec.Decode(&msg); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "metadata":
			value, err := jsonValue(msg)
			if err != nil {
				return nil, fmt.Errorf("metadata: %w", err)
			}
			raw.meta = &value
		case "materials":
			raw.hasMaterials = true
			if err := raw.jsonMaterials(msg); err != nil {
				return nil, fmt.Errorf("materials: %w", err)
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after shard object")
	}

	return raw, nil
}

func (r *rawShard) jsonMaterials(msg json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(msg))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		r.schemaIssue("materials", "expected object keyed by material id")
		return nil
	}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		var record json.RawMessage
		if err := dec.Decode(&record); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		value, err := jsonValue(record)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		r.entries = append(r.entries, rawEntry{key: key, value: value})
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func jsonValue(msg json.RawMessage) (rawValue, error) {
	var generic any
	if err := json.Unmarshal(msg, &generic); err != nil {
		return rawValue{}, err
	}
	return rawValue{
		generic: generic,
		decode: func(v any) error {
			return json.Unmarshal(msg, v)
		},
	}, nil
}

func decodeYAML(data []byte) (*rawShard, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected top-level mapping at line %d", root.Line)
	}

	raw := &rawShard{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, node := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "metadata":
			value, err := yamlValue(node)
			if err != nil {
				return nil, fmt.Errorf("metadata: %w", err)
			}
			raw.meta = &value
		case "materials":
			raw.hasMaterials = true
			if node.Kind != yaml.MappingNode {
				raw.schemaIssue("materials", "expected mapping keyed by material id")
				continue
			}
			for j := 0; j+1 < len(node.Content); j += 2 {
				id := node.Content[j].Value
				value, err := yamlValue(node.Content[j+1])
				if err != nil {
					return nil, fmt.Errorf("%s: %w", id, err)
				}
				raw.entries = append(raw.entries, rawEntry{key: id, value: value})
			}
		}
	}

	return raw, nil
}

func yamlValue(node *yaml.Node) (rawValue, error) {
	var generic any
	if err := node.Decode(&generic); err != nil {
		return rawValue{}, err
	}
	return rawValue{generic: generic, decode: node.Decode}, nil
}

func decodeCBOR(data []byte) (*rawShard, error) {
	var snap snapshot
	if err := cborDec.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	raw := &rawShard{hasMaterials: snap.Materials != nil}
	if len(snap.Metadata) > 0 {
		value, err := cborValue(snap.Metadata)
		if err != nil {
			return nil, fmt.Errorf("metadata: %w", err)
		}
		raw.meta = &value
	}
	for _, entry := range snap.Materials {
		value, err := cborValue(entry.Record)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Key, err)
		}
		raw.entries = append(raw.entries, rawEntry{key: entry.Key, value: value})
	}

	return raw, nil
}

func cborValue(msg cbor.RawMessage) (rawValue, error) {
	var generic any
	if err := cborDec.Unmarshal(msg, &generic); err != nil {
		return rawValue{}, err
	}
	return rawValue{
		generic: generic,
		decode: func(v any) error {
			return cborDec.Unmarshal(msg, v)
		},
	}, nil
}
