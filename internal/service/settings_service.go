package service

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"wordvault/internal/middleware"
	"wordvault/internal/model"
	"wordvault/internal/repository"
)

// SettingsService fronts the key-based settings store: review defaults,
// display toggles and the global study progress cursor.
type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, req *model.UpdateSettingsRequest) (*model.Settings, error)
	Cursor(ctx context.Context) (uint, error)
	SetCursor(ctx context.Context, wordID uint) error
	ResetCursor(ctx context.Context) error
}

type settingsService struct {
	db           *gorm.DB
	settingsRepo repository.SettingsRepository
	defaultMode  model.StudyMode
}

func NewSettingsService(db *gorm.DB, settingsRepo repository.SettingsRepository, defaultMode model.StudyMode) SettingsService {
	if defaultMode == "" {
		defaultMode = model.ModeRecognition
	}
	return &settingsService{
		db:           db,
		settingsRepo: settingsRepo,
		defaultMode:  defaultMode,
	}
}

func (s *settingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings := &model.Settings{
		DefaultMode:  s.defaultMode,
		ShowPhonetic: true,
	}

	if v, err := s.get(ctx, model.SettingProgressCursor); err != nil {
		return nil, err
	} else if v != "" {
		n, convErr := strconv.ParseUint(v, 10, 64)
		if convErr == nil {
			settings.ProgressCursor = uint(n)
		}
	}
	if v, err := s.get(ctx, model.SettingDefaultMode); err != nil {
		return nil, err
	} else if v != "" {
		settings.DefaultMode = model.StudyMode(v)
	}
	if v, err := s.get(ctx, model.SettingShowPhonetic); err != nil {
		return nil, err
	} else if v != "" {
		settings.ShowPhonetic = v == "true"
	}
	if v, err := s.get(ctx, model.SettingAutoplayAudio); err != nil {
		return nil, err
	} else if v != "" {
		settings.AutoplayAudio = v == "true"
	}
	return settings, nil
}

// get treats an absent key as the empty string; only storage failures error.
func (s *settingsService) get(ctx context.Context, key string) (string, error) {
	v, err := s.settingsRepo.Get(ctx, s.db, key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", nil
		}
		middleware.GetLogger(ctx).Error("Error reading setting", "error", err, "key", key)
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to read settings.", "", model.ErrInternalServer)
	}
	return v, nil
}

func (s *settingsService) Update(ctx context.Context, req *model.UpdateSettingsRequest) (*model.Settings, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.DefaultMode != nil {
			if err := s.settingsRepo.Put(ctx, tx, model.SettingDefaultMode, string(*req.DefaultMode)); err != nil {
				return err
			}
		}
		if req.ShowPhonetic != nil {
			if err := s.settingsRepo.Put(ctx, tx, model.SettingShowPhonetic, strconv.FormatBool(*req.ShowPhonetic)); err != nil {
				return err
			}
		}
		if req.AutoplayAudio != nil {
			if err := s.settingsRepo.Put(ctx, tx, model.SettingAutoplayAudio, strconv.FormatBool(*req.AutoplayAudio)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		middleware.GetLogger(ctx).Error("Error updating settings", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update settings.", "", model.ErrInternalServer)
	}
	return s.Get(ctx)
}

func (s *settingsService) Cursor(ctx context.Context) (uint, error) {
	v, err := s.get(ctx, model.SettingProgressCursor)
	if err != nil {
		return 0, err
	}
	if v == "" {
		return 0, nil
	}
	n, convErr := strconv.ParseUint(v, 10, 64)
	if convErr != nil {
		middleware.GetLogger(ctx).Warn("Corrupt progress cursor value, treating as unset", "value", v)
		return 0, nil
	}
	return uint(n), nil
}

// SetCursor overwrites the single global cursor value.
func (s *settingsService) SetCursor(ctx context.Context, wordID uint) error {
	if err := s.settingsRepo.Put(ctx, s.db, model.SettingProgressCursor, strconv.FormatUint(uint64(wordID), 10)); err != nil {
		middleware.GetLogger(ctx).Error("Error saving progress cursor", "error", err, "word_id", wordID)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save study progress.", "", model.ErrInternalServer)
	}
	return nil
}

func (s *settingsService) ResetCursor(ctx context.Context) error {
	if err := s.settingsRepo.Delete(ctx, s.db, model.SettingProgressCursor); err != nil {
		middleware.GetLogger(ctx).Error("Error resetting progress cursor", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to reset study progress.", "", model.ErrInternalServer)
	}
	return nil
}
