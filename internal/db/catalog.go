package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"machcat/internal/catalog"
	applog "machcat/internal/log"
	"machcat/models"
)

// ErrShardNotFound is returned by LoadShard when no header exists for the
// requested category.
var ErrShardNotFound = errors.New("shard not stored")

// SaveShard writes the shard header and one row per record in a single
// transaction. Rows of the same category that are no longer in the shard are
// removed, so the table mirrors the shard exactly.
func SaveShard(ctx context.Context, database *gorm.DB, shard *catalog.Shard) error {
	if database == nil {
		return fmt.Errorf("database handle is nil")
	}
	meta := shard.Metadata()
	if strings.TrimSpace(meta.Category) == "" {
		return fmt.Errorf("shard category must not be empty")
	}

	header := models.NewShardHeader(meta)
	if issues := shard.Issues(); len(issues) > 0 {
		encoded, err := json.Marshal(issues)
		if err != nil {
			return fmt.Errorf("encode issues of %s: %w", meta.Category, err)
		}
		header.Issues = string(encoded)
	}

	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveHeader(tx, header); err != nil {
			return err
		}

		keep := make([]string, 0, shard.Len())
		position := 0
		for id, rec := range shard.Records() {
			entry, err := newMaterialEntry(meta.Category, position, id, rec)
			if err != nil {
				return err
			}
			if err := saveEntry(tx, entry); err != nil {
				return err
			}
			keep = append(keep, id)
			position++
		}

		prune := tx.Unscoped().Where("category = ?", meta.Category)
		if len(keep) > 0 {
			prune = prune.Where("material_id NOT IN ?", keep)
		}
		result := prune.Delete(&models.MaterialEntry{})
		if result.Error != nil {
			return fmt.Errorf("prune materials of %s: %w", meta.Category, result.Error)
		}

		applog.Debug(ctx, "shard stored",
			"category", meta.Category,
			"materials", len(keep),
			"pruned", result.RowsAffected,
		)
		return nil
	})
}

func saveHeader(tx *gorm.DB, header models.ShardHeader) error {
	var existing models.ShardHeader
	err := tx.Unscoped().Where("category = ?", header.Category).First(&existing).Error
	switch {
	case err == nil:
		header.ID = existing.ID
		header.CreatedAt = existing.CreatedAt
		if err := tx.Unscoped().Save(&header).Error; err != nil {
			return fmt.Errorf("update shard header %s: %w", header.Category, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&header).Error; err != nil {
			return fmt.Errorf("create shard header %s: %w", header.Category, err)
		}
	default:
		return fmt.Errorf("find shard header %s: %w", header.Category, err)
	}
	return nil
}

func saveEntry(tx *gorm.DB, entry models.MaterialEntry) error {
	var existing models.MaterialEntry
	err := tx.Unscoped().
		Where("category = ? AND material_id = ?", entry.Category, entry.MaterialID).
		First(&existing).Error
	switch {
	case err == nil:
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		if err := tx.Unscoped().Save(&entry).Error; err != nil {
			return fmt.Errorf("update material %s/%s: %w", entry.Category, entry.MaterialID, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create material %s/%s: %w", entry.Category, entry.MaterialID, err)
		}
	default:
		return fmt.Errorf("find material %s/%s: %w", entry.Category, entry.MaterialID, err)
	}
	return nil
}

func newMaterialEntry(category string, position int, key string, rec models.MaterialRecord) (models.MaterialEntry, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return models.MaterialEntry{}, fmt.Errorf("encode material %s: %w", key, err)
	}
	return models.MaterialEntry{
		MaterialID:      key,
		Category:        category,
		Position:        position,
		Name:            rec.Name,
		ISOGroup:        rec.ISOGroup,
		MaterialClass:   rec.MaterialClass,
		Condition:       rec.Condition,
		DifficultyClass: rec.Machinability.DifficultyClass,
		Payload:         string(payload),
	}, nil
}

// LoadShard rebuilds the stored shard for category with records in their
// original order. Issues recorded when the shard was saved come back with it.
func LoadShard(ctx context.Context, database *gorm.DB, category string) (*catalog.Shard, error) {
	if database == nil {
		return nil, fmt.Errorf("database handle is nil")
	}

	var header models.ShardHeader
	if err := database.WithContext(ctx).Where("category = ?", category).First(&header).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrShardNotFound, category)
		}
		return nil, fmt.Errorf("find shard header %s: %w", category, err)
	}

	var rows []models.MaterialEntry
	if err := database.WithContext(ctx).
		Where("category = ?", category).
		Order("position asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list materials of %s: %w", category, err)
	}

	var issues catalog.ValidationErrors
	if header.Issues != "" {
		if err := json.Unmarshal([]byte(header.Issues), &issues); err != nil {
			return nil, fmt.Errorf("decode issues of %s: %w", category, err)
		}
	}

	entries := make([]catalog.Entry, 0, len(rows))
	for _, row := range rows {
		var rec models.MaterialRecord
		if err := json.Unmarshal([]byte(row.Payload), &rec); err != nil {
			return nil, fmt.Errorf("decode material %s: %w", row.MaterialID, err)
		}
		entries = append(entries, catalog.Entry{Key: row.MaterialID, Record: rec})
	}

	applog.Debug(ctx, "shard loaded from database", "category", category, "materials", len(entries))
	return catalog.New(header.Metadata(), entries, issues...), nil
}
