package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Encode writes s in the given format, keeping metadata first and materials
// in authored order. JSONC output is plain JSON.
func Encode(w io.Writer, s *Shard, format Format) error {
	var (
		out []byte
		err error
	)

	switch format {
	case FormatJSON, FormatJSONC:
		out, err = encodeJSON(s)
	case FormatYAML:
		out, err = encodeYAML(s)
	case FormatCBOR:
		out, err = encodeCBOR(s)
	case FormatCBORZstd:
		out, err = encodeCBOR(s)
		if err == nil {
			out = compress(out)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encode %s shard: %w", format, err)
	}

	_, err = w.Write(out)
	return err
}

func encodeJSON(s *Shard) ([]byte, error) {
	var compact bytes.Buffer
	enc := json.NewEncoder(&compact)
	enc.SetEscapeHTML(false)

	compact.WriteString(`{"metadata":`)
	if err := enc.Encode(s.meta); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	compact.WriteString(`,"materials":{`)
	for i, id := range s.ids {
		if i > 0 {
			compact.WriteByte(',')
		}
		if err := enc.Encode(id); err != nil {
			return nil, err
		}
		compact.WriteByte(':')
		if err := enc.Encode(s.records[id]); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
	}
	compact.WriteString("}}")

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func encodeYAML(s *Shard) ([]byte, error) {
	var meta yaml.Node
	if err := meta.Encode(s.meta); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}

	materials := &yaml.Node{Kind: yaml.MappingNode}
	for _, id := range s.ids {
		rec := &yaml.Node{}
		if err := rec.Encode(s.records[id]); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		materials.Content = append(materials.Content, yamlKey(id), rec)
	}

	root := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{yamlKey("metadata"), &meta, yamlKey("materials"), materials},
	}

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func yamlKey(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func encodeCBOR(s *Shard) ([]byte, error) {
	meta, err := cborEnc.Marshal(s.meta)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}

	snap := snapshot{
		Metadata:  meta,
		Materials: make([]snapshotEntry, 0, len(s.ids)),
	}
	for _, id := range s.ids {
		rec, err := cborEnc.Marshal(s.records[id])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		snap.Materials = append(snap.Materials, snapshotEntry{Key: id, Record: rec})
	}

	return cborEnc.Marshal(snap)
}
