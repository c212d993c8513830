package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"wordvault/internal/middleware"
	"wordvault/internal/model"
	"wordvault/internal/repository"
)

type WordService interface {
	// AddWord persists a draft. A duplicate (headword, collection) pair is a
	// silent no-op: the existing record is returned untouched and created is
	// false. This is the import-dedup contract.
	AddWord(ctx context.Context, draft *model.WordDraft) (word *model.Word, created bool, err error)
	GetWord(ctx context.Context, id uint) (*model.Word, error)
	ListWords(ctx context.Context, collectionID *uint, mistakesOnly bool) ([]*model.Word, error)
	UpdateWord(ctx context.Context, id uint, req *model.UpdateWordRequest) (*model.Word, error)
	DeleteWord(ctx context.Context, id uint) error
	RecordMistake(ctx context.Context, id uint, kind model.MistakeKind) error
	ClearMistake(ctx context.Context, id uint) error
}

type wordService struct {
	db             *gorm.DB
	wordRepo       repository.WordRepository
	collectionRepo repository.CollectionRepository
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository, collectionRepo repository.CollectionRepository) WordService {
	return &wordService{
		db:             db,
		wordRepo:       wordRepo,
		collectionRepo: collectionRepo,
	}
}

func (s *wordService) AddWord(ctx context.Context, draft *model.WordDraft) (*model.Word, bool, error) {
	headword := strings.TrimSpace(draft.Headword)
	if headword == "" {
		return nil, false, model.NewAppError("VALIDATION_ERROR", "Headword must not be empty.", "headword", model.ErrInvalidInput)
	}

	var (
		word    *model.Word
		created bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		collectionID := draft.CollectionID
		if collectionID == 0 {
			first, err := s.collectionRepo.First(ctx, tx)
			if err != nil {
				return err
			}
			collectionID = first.ID
		} else if _, err := s.collectionRepo.FindByID(ctx, tx, collectionID); err != nil {
			return err
		}

		existing, err := s.wordRepo.FindByHeadword(ctx, tx, headword, collectionID)
		if err == nil {
			// First write wins; attributes are not overwritten.
			word = existing
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		word = &model.Word{
			Headword:     headword,
			CollectionID: collectionID,
			Phonetic:     draft.Phonetic,
			Definitions:  draft.Definitions,
			Examples:     draft.Examples,
			Audio:        draft.Audio,
		}
		if err := s.wordRepo.Create(ctx, tx, word); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, false, model.NewAppError("NOT_FOUND", "Collection not found.", "collection_id", model.ErrNotFound)
		}
		middleware.GetLogger(ctx).Error("Error adding word", "error", err, "headword", headword)
		return nil, false, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to add word.", "", model.ErrInternalServer)
	}
	return word, created, nil
}

func (s *wordService) GetWord(ctx context.Context, id uint) (*model.Word, error) {
	word, err := s.wordRepo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Word not found.", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to fetch word.", "", model.ErrInternalServer)
	}
	return word, nil
}

func (s *wordService) ListWords(ctx context.Context, collectionID *uint, mistakesOnly bool) ([]*model.Word, error) {
	var (
		words []*model.Word
		err   error
	)
	if mistakesOnly {
		words, err = s.wordRepo.FindMistakes(ctx, s.db, collectionID)
	} else {
		words, err = s.wordRepo.FindAll(ctx, s.db, collectionID)
	}
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to list words.", "", model.ErrInternalServer)
	}
	return words, nil
}

// UpdateWord merges the given fields into the existing record. Unspecified
// fields are left as they are (partial update, not a full replace).
func (s *wordService) UpdateWord(ctx context.Context, id uint, req *model.UpdateWordRequest) (*model.Word, error) {
	var updated *model.Word
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := s.wordRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.Phonetic != nil {
			word.Phonetic = *req.Phonetic
		}
		if req.Definitions != nil {
			word.Definitions = *req.Definitions
		}
		if req.Examples != nil {
			word.Examples = *req.Examples
		}
		if req.Audio != nil {
			word.Audio = *req.Audio
		}
		if err := s.wordRepo.Save(ctx, tx, word); err != nil {
			return err
		}

		updated = word
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Word not found.", "", model.ErrNotFound)
		}
		middleware.GetLogger(ctx).Error("Error updating word", "error", err, "word_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update word.", "", model.ErrInternalServer)
	}
	return updated, nil
}

func (s *wordService) DeleteWord(ctx context.Context, id uint) error {
	err := s.wordRepo.Delete(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "Word not found.", "", model.ErrNotFound)
		}
		middleware.GetLogger(ctx).Error("Error deleting word", "error", err, "word_id", id)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to delete word.", "", model.ErrInternalServer)
	}
	return nil
}

// RecordMistake bumps the mistake counter, stamps the review time and adds
// kind to the mistake-kind set. A missing id is tolerated with a warning:
// the word may legitimately have been deleted mid-session, and an in-flight
// review must not crash over it.
func (s *wordService) RecordMistake(ctx context.Context, id uint, kind model.MistakeKind) error {
	logger := middleware.GetLogger(ctx).With("word_id", id, "kind", string(kind))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := s.wordRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if !word.HasMistakeKind(kind) {
			word.MistakeKinds = append(word.MistakeKinds, kind)
		}
		word.MistakeCount++
		word.LastReviewedAt = time.Now().UnixMilli()
		return s.wordRepo.Save(ctx, tx, word)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("RecordMistake on missing word, ignoring")
			return nil
		}
		logger.Error("Error recording mistake", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to record mistake.", "", model.ErrInternalServer)
	}
	return nil
}

// ClearMistake resets the progress fields and nothing else.
func (s *wordService) ClearMistake(ctx context.Context, id uint) error {
	logger := middleware.GetLogger(ctx).With("word_id", id)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := s.wordRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		word.MistakeCount = 0
		word.MistakeKinds = []model.MistakeKind{}
		word.LastReviewedAt = time.Now().UnixMilli()
		return s.wordRepo.Save(ctx, tx, word)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("ClearMistake on missing word, ignoring")
			return nil
		}
		logger.Error("Error clearing mistake", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to clear mistake.", "", model.ErrInternalServer)
	}
	return nil
}
