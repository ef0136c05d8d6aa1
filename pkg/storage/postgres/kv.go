package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stocktracker/pkg/storage/kv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time check to ensure PostgresClient implements kv.Storage
var _ kv.Storage = (*PostgresClient)(nil)

// Get returns the value stored under key, or kv.ErrNotFound.
func (p *PostgresClient) Get(ctx context.Context, key string) ([]byte, error) {
	var rec KVRecord
	err := p.DB.WithContext(ctx).
		Where("key = ?", key).
		First(&rec).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(rec.Value), nil
}

// Put upserts value under key.
func (p *PostgresClient) Put(ctx context.Context, key string, value []byte) error {
	rec := &KVRecord{Key: key, Value: string(value), UpdatedAt: time.Now()}

	tx := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rec)

	if tx.Error != nil {
		return fmt.Errorf("put %s: %w", key, tx.Error)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (p *PostgresClient) Delete(ctx context.Context, key string) error {
	return p.DB.WithContext(ctx).
		Where("key = ?", key).
		Delete(&KVRecord{}).Error
}
