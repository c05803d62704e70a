// Package catalog holds an immutable materials catalog shard: an ordered
// mapping from alloy id to record plus the metadata header that describes it.
//
// A Shard is never mutated after construction, so any number of goroutines
// may call Get, IDs, Records and Validate concurrently.
package catalog

import (
	"iter"
	"slices"
	"sync"

	"machcat/models"
)

// Entry is one keyed record in authored order.
type Entry struct {
	Key    string
	Record models.MaterialRecord
}

// Shard is a decoded catalog shard.
type Shard struct {
	meta    models.ShardMetadata
	ids     []string
	records map[string]models.MaterialRecord
	issues  ValidationErrors // problems found while decoding

	digestOnce sync.Once
	digest     string
}

// New builds a shard from metadata and entries in authored order. Duplicate
// keys keep their first occurrence and are reported by Validate. Issues are
// problems already found in the shard's source, as returned by Issues, and
// are reported by Validate as well.
func New(meta models.ShardMetadata, entries []Entry, issues ...ValidationError) *Shard {
	return newShard(meta, entries, slices.Clone(issues))
}

func newShard(meta models.ShardMetadata, entries []Entry, issues ValidationErrors) *Shard {
	s := &Shard{
		meta:    meta,
		ids:     make([]string, 0, len(entries)),
		records: make(map[string]models.MaterialRecord, len(entries)),
		issues:  issues,
	}
	for _, entry := range entries {
		if _, dup := s.records[entry.Key]; dup {
			s.issues = append(s.issues, ValidationError{
				RecordID: entry.Key,
				Field:    "id",
				Kind:     KindKeyConsistency,
				Message:  "duplicate key in materials; first occurrence kept",
			})
			continue
		}
		s.ids = append(s.ids, entry.Key)
		s.records[entry.Key] = entry.Record.Clone()
	}
	return s
}

// Issues returns the problems recorded while building the shard: decode-time
// shape errors and duplicate keys. Record and metadata checks are not
// included; Validate runs those.
func (s *Shard) Issues() ValidationErrors {
	return slices.Clone(s.issues)
}

// Metadata returns the shard header as authored.
func (s *Shard) Metadata() models.ShardMetadata {
	return s.meta
}

// Len reports the number of distinct keys in the shard.
func (s *Shard) Len() int {
	return len(s.ids)
}

// Get returns a copy of the record stored under id. A miss returns a
// *NotFoundError carrying the nearest known ids.
func (s *Shard) Get(id string) (models.MaterialRecord, error) {
	rec, ok := s.records[id]
	if !ok {
		return models.MaterialRecord{}, &NotFoundError{ID: id, Suggestions: Suggest(id, s.ids, maxSuggestions)}
	}
	return rec.Clone(), nil
}

// Has reports whether id is present.
func (s *Shard) Has(id string) bool {
	_, ok := s.records[id]
	return ok
}

// IDs returns every key in authored order. Each call returns a fresh slice.
func (s *Shard) IDs() []string {
	return slices.Clone(s.ids)
}

// Records iterates over keys and record copies in authored order.
func (s *Shard) Records() iter.Seq2[string, models.MaterialRecord] {
	return func(yield func(string, models.MaterialRecord) bool) {
		for _, id := range s.ids {
			if !yield(id, s.records[id].Clone()) {
				return
			}
		}
	}
}

// Entries returns the keyed records in authored order.
func (s *Shard) Entries() []Entry {
	entries := make([]Entry, 0, len(s.ids))
	for id, rec := range s.Records() {
		entries = append(entries, Entry{Key: id, Record: rec})
	}
	return entries
}

// Validate checks every shard invariant and returns all problems found,
// including those recorded while decoding. An empty result means the shard
// is consistent.
func (s *Shard) Validate() ValidationErrors {
	errs := slices.Clone(s.issues)
	for _, id := range s.ids {
		errs = append(errs, validateRecord(id, s.records[id])...)
	}
	errs = append(errs, validateMetadata(s.meta, s.ids)...)
	return errs
}
