package repository

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wordvault/internal/model"
)

// NewDB opens the database named by databaseURL, migrates the schema and
// seeds the default collection. SQLite is the normal, embedded backend; a
// postgres:// URL selects the Postgres driver instead. Safe to call again
// on an existing database: migration and seeding are both idempotent.
func NewDB(databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	gormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithSlowThreshold(500 * time.Millisecond),
	)

	var dialector gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		appLogger.Error("Failed to open database", slog.Any("error", err))
		return nil, fmt.Errorf("repository.NewDB: %w", err)
	}

	if err := db.AutoMigrate(&model.Collection{}, &model.Word{}, &model.Setting{}); err != nil {
		appLogger.Error("Failed to migrate schema", slog.Any("error", err))
		return nil, fmt.Errorf("repository.NewDB: migrate: %w", err)
	}

	if err := seedDefaultCollection(db); err != nil {
		appLogger.Error("Failed to seed default collection", slog.Any("error", err))
		return nil, fmt.Errorf("repository.NewDB: seed: %w", err)
	}

	appLogger.Info("Database ready", slog.String("url", databaseURL))
	return db, nil
}

// seedDefaultCollection guarantees the "at least one collection" invariant.
// The count check runs inside the insert transaction so concurrent openers
// cannot both seed.
func seedDefaultCollection(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Collection{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&model.Collection{Name: model.DefaultCollectionName}).Error
	})
}
