package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wordvault/internal/model"
)

// SettingsRepository is the lightweight key-based store behind user settings
// and the study progress cursor.
type SettingsRepository interface {
	Get(ctx context.Context, db *gorm.DB, key string) (string, error)
	Put(ctx context.Context, tx *gorm.DB, key, value string) error
	Delete(ctx context.Context, tx *gorm.DB, key string) error
}

type gormSettingsRepository struct{}

func NewGormSettingsRepository() SettingsRepository {
	return &gormSettingsRepository{}
}

func (r *gormSettingsRepository) Get(ctx context.Context, db *gorm.DB, key string) (string, error) {
	var setting model.Setting
	result := db.WithContext(ctx).Where("key = ?", key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("gormSettingsRepository.Get: %w", result.Error)
	}
	return setting.Value, nil
}

// Put upserts: exactly one value exists per key at a time.
func (r *gormSettingsRepository) Put(ctx context.Context, tx *gorm.DB, key, value string) error {
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&model.Setting{Key: key, Value: value})
	if result.Error != nil {
		return fmt.Errorf("gormSettingsRepository.Put: %w", result.Error)
	}
	return nil
}

func (r *gormSettingsRepository) Delete(ctx context.Context, tx *gorm.DB, key string) error {
	result := tx.WithContext(ctx).Where("key = ?", key).Delete(&model.Setting{})
	if result.Error != nil {
		return fmt.Errorf("gormSettingsRepository.Delete: %w", result.Error)
	}
	return nil
}
