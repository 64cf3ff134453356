package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps keys as rows of the kv_entries table
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry model.KVEntry
	err := s.db.WithContext(ctx).Where("storage_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		logger.Error("Failed to read key from database", err, map[string]interface{}{
			"key": key,
		})
		return "", false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	entry := model.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		logger.Error("Failed to write key to database", err, map[string]interface{}{
			"key": key,
		})
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Remove(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("storage_key = ?", key).Delete(&model.KVEntry{}).Error
	if err != nil {
		logger.Error("Failed to delete key from database", err, map[string]interface{}{
			"key": key,
		})
		return fmt.Errorf("kv remove %s: %w", key, err)
	}
	return nil
}
