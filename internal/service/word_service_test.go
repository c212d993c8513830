package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordvault/internal/model"
)

func Test_wordService_AddWord_DedupIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, created, err := env.words.AddWord(ctx, &model.WordDraft{
		Headword:    "ephemeral",
		Phonetic:    "/ɪˈfem(ə)rəl/",
		Definitions: []string{"lasting for a very short time"},
	})
	require.NoError(t, err)
	assert.True(t, created)

	// Same (headword, collection) pair again, with different attributes:
	// first write wins, nothing is overwritten.
	second, created, err := env.words.AddWord(ctx, &model.WordDraft{
		Headword:    "ephemeral",
		Phonetic:    "/different/",
		Definitions: []string{"something else entirely"},
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "/ɪˈfem(ə)rəl/", second.Phonetic)
	assert.Equal(t, []string{"lasting for a very short time"}, second.Definitions)

	words, err := env.words.ListWords(ctx, nil, false)
	require.NoError(t, err)
	assert.Len(t, words, 1)
}

func Test_wordService_AddWord_SameHeadwordDifferentCollections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	other, err := env.collections.CreateCollection(ctx, "Unit 3")
	require.NoError(t, err)

	_, created, err := env.words.AddWord(ctx, &model.WordDraft{Headword: "bank"})
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = env.words.AddWord(ctx, &model.WordDraft{Headword: "bank", CollectionID: other.ID})
	require.NoError(t, err)
	assert.True(t, created, "same headword in another collection is an independent record")

	words, err := env.words.ListWords(ctx, nil, false)
	require.NoError(t, err)
	assert.Len(t, words, 2)
}

func Test_wordService_AddWord_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.words.AddWord(context.Background(), &model.WordDraft{Headword: "   "})
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func Test_wordService_AddWord_DefaultsToFirstCollection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	word, created, err := env.words.AddWord(ctx, &model.WordDraft{Headword: "petrichor"})
	require.NoError(t, err)
	require.True(t, created)

	collections, err := env.collections.ListCollections(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, collections)
	assert.Equal(t, collections[0].ID, word.CollectionID)
}

func Test_wordService_AddWord_UnknownCollection(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.words.AddWord(context.Background(), &model.WordDraft{Headword: "stray", CollectionID: 9999})
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func Test_wordService_UpdateWord_PartialMerge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	word, _, err := env.words.AddWord(ctx, &model.WordDraft{
		Headword:    "laconic",
		Phonetic:    "/ləˈkɒnɪk/",
		Definitions: []string{"using very few words"},
	})
	require.NoError(t, err)

	newPhonetic := "/ləˈkɑːnɪk/"
	updated, err := env.words.UpdateWord(ctx, word.ID, &model.UpdateWordRequest{Phonetic: &newPhonetic})
	require.NoError(t, err)

	assert.Equal(t, newPhonetic, updated.Phonetic)
	// Unspecified fields keep their values.
	assert.Equal(t, "laconic", updated.Headword)
	assert.Equal(t, []string{"using very few words"}, updated.Definitions)
}

func Test_wordService_UpdateWord_NotFound(t *testing.T) {
	env := newTestEnv(t)

	phonetic := "/x/"
	_, err := env.words.UpdateWord(context.Background(), 4242, &model.UpdateWordRequest{Phonetic: &phonetic})
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func Test_wordService_RecordMistake_KindSetIdempotence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	word, _, err := env.words.AddWord(ctx, &model.WordDraft{Headword: "rhythm"})
	require.NoError(t, err)

	require.NoError(t, env.words.RecordMistake(ctx, word.ID, model.MistakeSpelling))
	require.NoError(t, env.words.RecordMistake(ctx, word.ID, model.MistakeSpelling))

	got, err := env.words.GetWord(ctx, word.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MistakeCount, "counter counts every mistake")
	assert.Equal(t, []model.MistakeKind{model.MistakeSpelling}, got.MistakeKinds, "kind set has no duplicates")
	assert.Greater(t, got.LastReviewedAt, int64(0))

	require.NoError(t, env.words.RecordMistake(ctx, word.ID, model.MistakeRecognition))
	got, err = env.words.GetWord(ctx, word.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.MistakeCount)
	assert.ElementsMatch(t, []model.MistakeKind{model.MistakeSpelling, model.MistakeRecognition}, got.MistakeKinds)
}

func Test_wordService_RecordMistake_MissingWordIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	// The word may have vanished mid-session; the review must not crash.
	assert.NoError(t, env.words.RecordMistake(context.Background(), 999, model.MistakeRecognition))
}

func Test_wordService_ClearMistake_ResetsOnlyProgressFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	word, _, err := env.words.AddWord(ctx, &model.WordDraft{
		Headword:    "sibilant",
		Phonetic:    "/ˈsɪbɪlənt/",
		Definitions: []string{"making a hissing sound"},
	})
	require.NoError(t, err)
	require.NoError(t, env.words.RecordMistake(ctx, word.ID, model.MistakeSpelling))

	require.NoError(t, env.words.ClearMistake(ctx, word.ID))

	got, err := env.words.GetWord(ctx, word.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MistakeCount)
	assert.Empty(t, got.MistakeKinds)
	assert.Greater(t, got.LastReviewedAt, int64(0))
	assert.Equal(t, "sibilant", got.Headword)
	assert.Equal(t, "/ˈsɪbɪlənt/", got.Phonetic)
	assert.Equal(t, []string{"making a hissing sound"}, got.Definitions)
}

func Test_wordService_ClearMistake_MissingWordIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	assert.NoError(t, env.words.ClearMistake(context.Background(), 999))
}

func Test_wordService_DeleteWord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	word, _, err := env.words.AddWord(ctx, &model.WordDraft{Headword: "transient"})
	require.NoError(t, err)

	require.NoError(t, env.words.DeleteWord(ctx, word.ID))

	_, err = env.words.GetWord(ctx, word.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	err = env.words.DeleteWord(ctx, word.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}
