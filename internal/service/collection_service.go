package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"wordvault/internal/middleware"
	"wordvault/internal/model"
	"wordvault/internal/repository"
)

type CollectionService interface {
	CreateCollection(ctx context.Context, name string) (*model.Collection, error)
	ListCollections(ctx context.Context) ([]*model.Collection, error)
	RenameCollection(ctx context.Context, id uint, name string) (*model.Collection, error)
	DeleteCollection(ctx context.Context, id uint) error
}

type collectionService struct {
	db             *gorm.DB
	collectionRepo repository.CollectionRepository
	wordRepo       repository.WordRepository
}

func NewCollectionService(db *gorm.DB, collectionRepo repository.CollectionRepository, wordRepo repository.WordRepository) CollectionService {
	return &collectionService{
		db:             db,
		collectionRepo: collectionRepo,
		wordRepo:       wordRepo,
	}
}

func (s *collectionService) CreateCollection(ctx context.Context, name string) (*model.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "Collection name must not be empty.", "name", model.ErrInvalidInput)
	}

	collection := &model.Collection{Name: name}
	if err := s.collectionRepo.Create(ctx, s.db, collection); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create collection.", "", model.ErrInternalServer)
	}
	return collection, nil
}

func (s *collectionService) ListCollections(ctx context.Context) ([]*model.Collection, error) {
	collections, err := s.collectionRepo.List(ctx, s.db)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing collections", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to list collections.", "", model.ErrInternalServer)
	}
	return collections, nil
}

func (s *collectionService) RenameCollection(ctx context.Context, id uint, name string) (*model.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "Collection name must not be empty.", "name", model.ErrInvalidInput)
	}

	var renamed *model.Collection
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.collectionRepo.Rename(ctx, tx, id, name); err != nil {
			return err
		}
		var err error
		renamed, err = s.collectionRepo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Collection not found.", "", model.ErrNotFound)
		}
		middleware.GetLogger(ctx).Error("Error renaming collection", "error", err, "collection_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to rename collection.", "", model.ErrInternalServer)
	}
	return renamed, nil
}

// DeleteCollection removes the collection and every word it owns in one
// transaction. A partial cascade (collection gone, orphan words remaining)
// would violate the store invariant, so both deletes commit or neither does.
func (s *collectionService) DeleteCollection(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.collectionRepo.FindByID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.wordRepo.DeleteByCollection(ctx, tx, id); err != nil {
			return err
		}
		return s.collectionRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "Collection not found.", "", model.ErrNotFound)
		}
		middleware.GetLogger(ctx).Error("Error deleting collection", "error", err, "collection_id", id)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to delete collection.", "", model.ErrInternalServer)
	}
	return nil
}
