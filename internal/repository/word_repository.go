package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"wordvault/internal/middleware"
	"wordvault/internal/model"
)

// WordRepository is the data access layer for word records. The composite
// (headword, collection_id) unique index backs the dedup lookups.
type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Word, error)
	FindByHeadword(ctx context.Context, db *gorm.DB, headword string, collectionID uint) (*model.Word, error)
	FindAll(ctx context.Context, db *gorm.DB, collectionID *uint) ([]*model.Word, error)
	FindMistakes(ctx context.Context, db *gorm.DB, collectionID *uint) ([]*model.Word, error)
	FindAfter(ctx context.Context, db *gorm.DB, cursor uint, collectionID *uint) ([]*model.Word, error)
	Save(ctx context.Context, tx *gorm.DB, word *model.Word) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByCollection(ctx context.Context, tx *gorm.DB, collectionID uint) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error creating word in DB",
			"error", result.Error,
			"headword", word.Headword,
			"collection_id", word.CollectionID,
		)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Word, error) {
	var word model.Word
	result := db.WithContext(ctx).First(&word, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormWordRepository.FindByID: %w", result.Error)
	}
	return &word, nil
}

// FindByHeadword is the uniqueness-index lookup behind the import dedup
// contract. Headword matching is case-sensitive, whatever case the lookup
// collaborator returned.
func (r *gormWordRepository) FindByHeadword(ctx context.Context, db *gorm.DB, headword string, collectionID uint) (*model.Word, error) {
	var word model.Word
	result := db.WithContext(ctx).Where("headword = ? AND collection_id = ?", headword, collectionID).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormWordRepository.FindByHeadword: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) FindAll(ctx context.Context, db *gorm.DB, collectionID *uint) ([]*model.Word, error) {
	var words []*model.Word
	query := db.WithContext(ctx).Order("id ASC")
	if collectionID != nil {
		query = query.Where("collection_id = ?", *collectionID)
	}
	result := query.Find(&words)
	if result.Error != nil {
		return nil, fmt.Errorf("gormWordRepository.FindAll: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) FindMistakes(ctx context.Context, db *gorm.DB, collectionID *uint) ([]*model.Word, error) {
	var words []*model.Word
	query := db.WithContext(ctx).Where("mistake_count > 0").Order("id ASC")
	if collectionID != nil {
		query = query.Where("collection_id = ?", *collectionID)
	}
	result := query.Find(&words)
	if result.Error != nil {
		return nil, fmt.Errorf("gormWordRepository.FindMistakes: %w", result.Error)
	}
	return words, nil
}

// FindAfter returns words with id strictly greater than cursor, ascending.
// This is the resumable "all" study queue.
func (r *gormWordRepository) FindAfter(ctx context.Context, db *gorm.DB, cursor uint, collectionID *uint) ([]*model.Word, error) {
	var words []*model.Word
	query := db.WithContext(ctx).Where("id > ?", cursor).Order("id ASC")
	if collectionID != nil {
		query = query.Where("collection_id = ?", *collectionID)
	}
	result := query.Find(&words)
	if result.Error != nil {
		return nil, fmt.Errorf("gormWordRepository.FindAfter: %w", result.Error)
	}
	return words, nil
}

// Save writes the full record back. Callers fetch the word inside the same
// transaction first, so unrelated concurrent writes cannot be clobbered and
// the JSON-serialized fields round-trip through the field serializers.
func (r *gormWordRepository) Save(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	result := tx.WithContext(ctx).Save(word)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error saving word in DB",
			"error", result.Error,
			"word_id", word.ID,
		)
		return fmt.Errorf("gormWordRepository.Save: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := tx.WithContext(ctx).Delete(&model.Word{}, id)
	if result.Error != nil {
		return fmt.Errorf("gormWordRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) DeleteByCollection(ctx context.Context, tx *gorm.DB, collectionID uint) error {
	result := tx.WithContext(ctx).Where("collection_id = ?", collectionID).Delete(&model.Word{})
	if result.Error != nil {
		return fmt.Errorf("gormWordRepository.DeleteByCollection: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	result := tx.WithContext(ctx).Where("1 = 1").Delete(&model.Word{})
	if result.Error != nil {
		return fmt.Errorf("gormWordRepository.DeleteAll: %w", result.Error)
	}
	return nil
}
