package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"wordvault/internal/middleware"
	"wordvault/internal/model"
)

// CollectionRepository is the data access layer for collections. Methods
// take the *gorm.DB handle explicitly so services can pass a transaction.
type CollectionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, collection *model.Collection) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Collection, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Collection, error)
	List(ctx context.Context, db *gorm.DB) ([]*model.Collection, error)
	Rename(ctx context.Context, tx *gorm.DB, id uint, name string) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	First(ctx context.Context, db *gorm.DB) (*model.Collection, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type gormCollectionRepository struct{}

func NewGormCollectionRepository() CollectionRepository {
	return &gormCollectionRepository{}
}

func (r *gormCollectionRepository) Create(ctx context.Context, tx *gorm.DB, collection *model.Collection) error {
	result := tx.WithContext(ctx).Create(collection)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error creating collection in DB",
			"error", result.Error,
			"name", collection.Name,
		)
		return fmt.Errorf("gormCollectionRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCollectionRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Collection, error) {
	var collection model.Collection
	result := db.WithContext(ctx).First(&collection, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCollectionRepository.FindByID: %w", result.Error)
	}
	return &collection, nil
}

func (r *gormCollectionRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Collection, error) {
	var collection model.Collection
	result := db.WithContext(ctx).Where("name = ?", name).First(&collection)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCollectionRepository.FindByName: %w", result.Error)
	}
	return &collection, nil
}

func (r *gormCollectionRepository) List(ctx context.Context, db *gorm.DB) ([]*model.Collection, error) {
	var collections []*model.Collection
	result := db.WithContext(ctx).Order("id ASC").Find(&collections)
	if result.Error != nil {
		return nil, fmt.Errorf("gormCollectionRepository.List: %w", result.Error)
	}
	return collections, nil
}

func (r *gormCollectionRepository) Rename(ctx context.Context, tx *gorm.DB, id uint, name string) error {
	result := tx.WithContext(ctx).Model(&model.Collection{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("gormCollectionRepository.Rename: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCollectionRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := tx.WithContext(ctx).Delete(&model.Collection{}, id)
	if result.Error != nil {
		return fmt.Errorf("gormCollectionRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// First returns the oldest collection, used as the default target for words
// created without an explicit collection.
func (r *gormCollectionRepository) First(ctx context.Context, db *gorm.DB) (*model.Collection, error) {
	var collection model.Collection
	result := db.WithContext(ctx).Order("id ASC").First(&collection)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCollectionRepository.First: %w", result.Error)
	}
	return &collection, nil
}

func (r *gormCollectionRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	result := tx.WithContext(ctx).Where("1 = 1").Delete(&model.Collection{})
	if result.Error != nil {
		return fmt.Errorf("gormCollectionRepository.DeleteAll: %w", result.Error)
	}
	return nil
}
