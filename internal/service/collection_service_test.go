package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordvault/internal/model"
)

func Test_collectionService_CreateCollection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantName string
	}{
		{name: "valid name", input: "Unit 1", wantName: "Unit 1"},
		{name: "name is trimmed", input: "  Unit 2  ", wantName: "Unit 2"},
		{name: "empty name", input: "", wantErr: model.ErrInvalidInput},
		{name: "whitespace only", input: "   ", wantErr: model.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collection, err := env.collections.CreateCollection(ctx, tt.input)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, collection.Name)
			assert.NotZero(t, collection.ID)
			assert.Greater(t, collection.CreatedAt, int64(0))
		})
	}
}

func Test_collectionService_ListCollections_SeededDefault(t *testing.T) {
	env := newTestEnv(t)

	collections, err := env.collections.ListCollections(context.Background())
	require.NoError(t, err)
	require.Len(t, collections, 1, "default collection is seeded on initialization")
	assert.Equal(t, model.DefaultCollectionName, collections[0].Name)
}

func Test_collectionService_RenameCollection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	collection, err := env.collections.CreateCollection(ctx, "Old Name")
	require.NoError(t, err)

	renamed, err := env.collections.RenameCollection(ctx, collection.ID, "New Name")
	require.NoError(t, err)
	assert.Equal(t, "New Name", renamed.Name)
	assert.Equal(t, collection.ID, renamed.ID)

	_, err = env.collections.RenameCollection(ctx, 9999, "Nope")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func Test_collectionService_DeleteCollection_CascadesToWords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doomed, err := env.collections.CreateCollection(ctx, "Doomed")
	require.NoError(t, err)
	survivor, err := env.collections.CreateCollection(ctx, "Survivor")
	require.NoError(t, err)

	for _, headword := range []string{"alpha", "beta", "gamma"} {
		_, _, err := env.words.AddWord(ctx, &model.WordDraft{Headword: headword, CollectionID: doomed.ID})
		require.NoError(t, err)
	}
	_, _, err = env.words.AddWord(ctx, &model.WordDraft{Headword: "delta", CollectionID: survivor.ID})
	require.NoError(t, err)

	require.NoError(t, env.collections.DeleteCollection(ctx, doomed.ID))

	// No orphans: zero words reference the deleted collection.
	orphans, err := env.words.ListWords(ctx, &doomed.ID, false)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	collections, err := env.collections.ListCollections(ctx)
	require.NoError(t, err)
	for _, c := range collections {
		assert.NotEqual(t, doomed.ID, c.ID)
	}

	remaining, err := env.words.ListWords(ctx, &survivor.ID, false)
	require.NoError(t, err)
	assert.Len(t, remaining, 1, "other collections keep their words")
}

func Test_collectionService_DeleteCollection_NotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.collections.DeleteCollection(context.Background(), 9999)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}
