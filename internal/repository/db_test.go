package repository

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordvault/internal/model"
)

func testDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewDB_SeedsDefaultCollection(t *testing.T) {
	db, err := NewDB(testDSN(), discardLogger())
	require.NoError(t, err)

	var collections []model.Collection
	require.NoError(t, db.Find(&collections).Error)
	require.Len(t, collections, 1)
	assert.Equal(t, model.DefaultCollectionName, collections[0].Name)
}

func TestNewDB_OpenIsIdempotent(t *testing.T) {
	dsn := testDSN()

	db, err := NewDB(dsn, discardLogger())
	require.NoError(t, err)

	// A second open against the same database must not duplicate the seed.
	_, err = NewDB(dsn, discardLogger())
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Collection{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNewDB_SeedSkippedWhenCollectionsExist(t *testing.T) {
	dsn := testDSN()

	db, err := NewDB(dsn, discardLogger())
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Collection{Name: "Unit 1"}).Error)

	_, err = NewDB(dsn, discardLogger())
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Collection{}).Count(&count).Error)
	assert.Equal(t, int64(2), count, "reopening never seeds into a non-empty store")
}
