package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"wordvault/internal/middleware"
	"wordvault/internal/model"
	"wordvault/internal/repository"
)

// BackupService implements the snapshot dump/merge used for backup and
// restore, and the nuclear clearAll.
type BackupService interface {
	Export(ctx context.Context) (*model.Snapshot, error)
	Import(ctx context.Context, snapshot *model.Snapshot) (*model.RestoreReport, error)
	ClearAll(ctx context.Context) error
}

type backupService struct {
	db             *gorm.DB
	collectionRepo repository.CollectionRepository
	wordRepo       repository.WordRepository
	settingsRepo   repository.SettingsRepository
}

func NewBackupService(db *gorm.DB, collectionRepo repository.CollectionRepository, wordRepo repository.WordRepository, settingsRepo repository.SettingsRepository) BackupService {
	return &backupService{
		db:             db,
		collectionRepo: collectionRepo,
		wordRepo:       wordRepo,
		settingsRepo:   settingsRepo,
	}
}

func (s *backupService) Export(ctx context.Context) (*model.Snapshot, error) {
	snapshot := &model.Snapshot{
		Collections: []model.Collection{},
		Words:       []model.Word{},
	}

	collections, err := s.collectionRepo.List(ctx, s.db)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error exporting collections", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to export data.", "", model.ErrInternalServer)
	}
	for _, c := range collections {
		snapshot.Collections = append(snapshot.Collections, *c)
	}

	words, err := s.wordRepo.FindAll(ctx, s.db, nil)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error exporting words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to export data.", "", model.ErrInternalServer)
	}
	for _, w := range words {
		snapshot.Words = append(snapshot.Words, *w)
	}

	return snapshot, nil
}

// Import merges a snapshot into the existing data, never wiping. Collections
// are matched by name (the snapshot's id is remapped onto the existing one);
// words follow the same first-write-wins (headword, collection) rule as
// AddWord, with their original content and review statistics preserved.
func (s *backupService) Import(ctx context.Context, snapshot *model.Snapshot) (*model.RestoreReport, error) {
	if snapshot == nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "Snapshot must not be empty.", "", model.ErrInvalidInput)
	}

	report := &model.RestoreReport{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		idMap := make(map[uint]uint, len(snapshot.Collections))

		for _, c := range snapshot.Collections {
			existing, err := s.collectionRepo.FindByName(ctx, tx, c.Name)
			if err == nil {
				idMap[c.ID] = existing.ID
				continue
			}
			if !errors.Is(err, model.ErrNotFound) {
				return err
			}
			created := &model.Collection{Name: c.Name, CreatedAt: c.CreatedAt}
			if err := s.collectionRepo.Create(ctx, tx, created); err != nil {
				return err
			}
			idMap[c.ID] = created.ID
			report.Collections++
		}

		for _, w := range snapshot.Words {
			collectionID, ok := idMap[w.CollectionID]
			if !ok {
				// Word referencing a collection absent from the snapshot:
				// fall back to the default collection rather than dropping it.
				first, err := s.collectionRepo.First(ctx, tx)
				if err != nil {
					return err
				}
				collectionID = first.ID
			}

			_, err := s.wordRepo.FindByHeadword(ctx, tx, w.Headword, collectionID)
			if err == nil {
				report.Skipped++
				continue
			}
			if !errors.Is(err, model.ErrNotFound) {
				return err
			}

			restored := w
			restored.ID = 0 // let the store assign a fresh id
			restored.CollectionID = collectionID
			if err := s.wordRepo.Create(ctx, tx, &restored); err != nil {
				return err
			}
			report.Words++
		}
		return nil
	})
	if err != nil {
		middleware.GetLogger(ctx).Error("Error importing snapshot", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to import snapshot.", "", model.ErrInternalServer)
	}
	return report, nil
}

// ClearAll atomically empties both entity sets, drops the progress cursor
// and re-seeds the default collection so the "at least one collection"
// invariant holds afterwards. Irreversible.
func (s *backupService) ClearAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.wordRepo.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := s.collectionRepo.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := s.settingsRepo.Delete(ctx, tx, model.SettingProgressCursor); err != nil {
			return err
		}
		return s.collectionRepo.Create(ctx, tx, &model.Collection{Name: model.DefaultCollectionName})
	})
	if err != nil {
		middleware.GetLogger(ctx).Error("Error clearing store", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to clear data.", "", model.ErrInternalServer)
	}
	return nil
}
