package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordvault/internal/model"
)

func Test_backupService_ExportRoundTrip(t *testing.T) {
	source := newTestEnv(t)
	ctx := context.Background()

	unit, err := source.collections.CreateCollection(ctx, "Unit 1")
	require.NoError(t, err)

	_, _, err = source.words.AddWord(ctx, &model.WordDraft{Headword: "apple", Definitions: []string{"a fruit"}})
	require.NoError(t, err)
	mistaken, _, err := source.words.AddWord(ctx, &model.WordDraft{Headword: "rhythm", CollectionID: unit.ID})
	require.NoError(t, err)
	require.NoError(t, source.words.RecordMistake(ctx, mistaken.ID, model.MistakeSpelling))

	snapshot, err := source.backup.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Collections, 2)
	assert.Len(t, snapshot.Words, 2)

	// Restore into a fresh store: everything lands, stats intact.
	target := newTestEnv(t)
	report, err := target.backup.Import(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Collections, "the Default collection already exists and is matched by name")
	assert.Equal(t, 2, report.Words)
	assert.Zero(t, report.Skipped)

	words, err := target.words.ListWords(ctx, nil, false)
	require.NoError(t, err)
	require.Len(t, words, 2)

	restored := findByHeadword(t, words, "rhythm")
	assert.Equal(t, 1, restored.MistakeCount, "review statistics survive the round trip")
	assert.Equal(t, []model.MistakeKind{model.MistakeSpelling}, restored.MistakeKinds)
}

func Test_backupService_Import_MergeSkipsExistingWords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	existing, _, err := env.words.AddWord(ctx, &model.WordDraft{
		Headword:    "apple",
		Definitions: []string{"local definition"},
	})
	require.NoError(t, err)

	snapshot := &model.Snapshot{
		Collections: []model.Collection{{ID: 77, Name: model.DefaultCollectionName}},
		Words: []model.Word{
			{Headword: "apple", CollectionID: 77, Definitions: []string{"snapshot definition"}},
			{Headword: "banana", CollectionID: 77},
		},
	}

	report, err := env.backup.Import(ctx, snapshot)
	require.NoError(t, err)
	assert.Zero(t, report.Collections)
	assert.Equal(t, 1, report.Words)
	assert.Equal(t, 1, report.Skipped)

	// First write wins: the local record is untouched.
	got, err := env.words.GetWord(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"local definition"}, got.Definitions)
}

func Test_backupService_Import_RemapsCollectionIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	snapshot := &model.Snapshot{
		Collections: []model.Collection{{ID: 42, Name: "Unit 9"}},
		Words:       []model.Word{{Headword: "quay", CollectionID: 42}},
	}

	report, err := env.backup.Import(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Collections)
	assert.Equal(t, 1, report.Words)

	collections, err := env.collections.ListCollections(ctx)
	require.NoError(t, err)
	var unit *model.Collection
	for _, c := range collections {
		if c.Name == "Unit 9" {
			unit = c
		}
	}
	require.NotNil(t, unit)
	assert.NotEqual(t, uint(42), unit.ID, "snapshot ids are not trusted")

	words, err := env.words.ListWords(ctx, &unit.ID, false)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "quay", words[0].Headword)
}

func Test_backupService_Import_OrphanWordFallsBackToDefault(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	snapshot := &model.Snapshot{
		Words: []model.Word{{Headword: "stray", CollectionID: 123}},
	}

	report, err := env.backup.Import(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Words)

	words, err := env.words.ListWords(ctx, nil, false)
	require.NoError(t, err)
	require.Len(t, words, 1)

	collections, err := env.collections.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, collections[0].ID, words[0].CollectionID)
}

func Test_backupService_Import_NilSnapshot(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.backup.Import(context.Background(), nil)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func Test_backupService_ClearAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.collections.CreateCollection(ctx, "Doomed")
	require.NoError(t, err)
	word, _, err := env.words.AddWord(ctx, &model.WordDraft{Headword: "gone"})
	require.NoError(t, err)
	require.NoError(t, env.settings.SetCursor(ctx, word.ID))

	require.NoError(t, env.backup.ClearAll(ctx))

	words, err := env.words.ListWords(ctx, nil, false)
	require.NoError(t, err)
	assert.Empty(t, words)

	collections, err := env.collections.ListCollections(ctx)
	require.NoError(t, err)
	require.Len(t, collections, 1, "the default collection is reseeded")
	assert.Equal(t, model.DefaultCollectionName, collections[0].Name)

	cursor, err := env.settings.Cursor(ctx)
	require.NoError(t, err)
	assert.Zero(t, cursor, "the progress cursor is dropped with the data it pointed into")
}

func findByHeadword(t *testing.T, words []*model.Word, headword string) *model.Word {
	t.Helper()
	for _, w := range words {
		if w.Headword == headword {
			return w
		}
	}
	t.Fatalf("word %q not found", headword)
	return nil
}
