package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wordvault/internal/model"
	"wordvault/internal/repository"
)

// setupTestDB opens a fresh in-memory database per test. The unique name
// keeps tests isolated while cache=shared keeps the schema visible across
// the connection pool.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Collection{}, &model.Word{}, &model.Setting{}))
	require.NoError(t, db.Create(&model.Collection{Name: model.DefaultCollectionName}).Error)
	return db
}

type testEnv struct {
	db          *gorm.DB
	collections CollectionService
	words       WordService
	settings    SettingsService
	backup      BackupService
	study       StudyService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	collectionRepo := repository.NewGormCollectionRepository()
	wordRepo := repository.NewGormWordRepository()
	settingsRepo := repository.NewGormSettingsRepository()

	words := NewWordService(db, wordRepo, collectionRepo)
	settings := NewSettingsService(db, settingsRepo, model.ModeRecognition)

	return &testEnv{
		db:          db,
		collections: NewCollectionService(db, collectionRepo, wordRepo),
		words:       words,
		settings:    settings,
		backup:      NewBackupService(db, collectionRepo, wordRepo, settingsRepo),
		study:       NewStudyService(db, wordRepo, words, settings, time.Hour),
	}
}
