package models

import (
	"gorm.io/gorm"
)

// MaterialEntry is the relational row for one catalog record. The full record
// lives in Payload as JSON; the remaining columns are indexed copies used for
// ordering and filtering. Ids are unique within a category; the same id may be
// stored under several categories.
type MaterialEntry struct {
	gorm.Model
	Category        string `gorm:"uniqueIndex:idx_material_category_id,priority:1;not null" json:"category"`
	MaterialID      string `gorm:"uniqueIndex:idx_material_category_id,priority:2;not null" json:"material_id"`
	Position        int    `gorm:"not null" json:"position"` // authored order within the shard
	Name            string `gorm:"not null" json:"name"`
	ISOGroup        string `gorm:"type:varchar(1)" json:"iso_group"`
	MaterialClass   string `gorm:"index" json:"material_class"`
	Condition       string `json:"condition"`
	DifficultyClass int    `gorm:"index" json:"difficulty_class"`
	Payload         string `gorm:"type:text;not null" json:"payload"`
}

// ShardHeader persists the metadata header of one shard, keyed by category.
type ShardHeader struct {
	gorm.Model
	Category      string `gorm:"uniqueIndex;not null" json:"category"`
	File          string `json:"file"`
	MaterialCount int    `gorm:"not null" json:"material_count"`
	IDStart       string `json:"id_start"`
	IDEnd         string `json:"id_end"`
	SchemaVersion string `json:"schema_version"`
	Created       string `json:"created"`
	LastUpdated   string `json:"last_updated"`
	// Issues holds the decode-time validation problems of the saved shard as
	// a JSON list, so a reload reports them again.
	Issues string `gorm:"type:text" json:"issues"`
}

// Metadata converts the header back into shard metadata.
func (h ShardHeader) Metadata() ShardMetadata {
	return ShardMetadata{
		File:          h.File,
		Category:      h.Category,
		MaterialCount: h.MaterialCount,
		IDRange:       IDRange{Start: h.IDStart, End: h.IDEnd},
		SchemaVersion: h.SchemaVersion,
		Created:       h.Created,
		LastUpdated:   h.LastUpdated,
	}
}

// NewShardHeader builds a header row from shard metadata.
func NewShardHeader(meta ShardMetadata) ShardHeader {
	return ShardHeader{
		Category:      meta.Category,
		File:          meta.File,
		MaterialCount: meta.MaterialCount,
		IDStart:       meta.IDRange.Start,
		IDEnd:         meta.IDRange.End,
		SchemaVersion: meta.SchemaVersion,
		Created:       meta.Created,
		LastUpdated:   meta.LastUpdated,
	}
}
