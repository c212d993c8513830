package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wordvault/internal/model"
	"wordvault/internal/repository"
	"wordvault/internal/service"
)

// newWordRouter wires a real word service over an in-memory store, the same
// shape main assembles, minus the middleware stack.
func newWordRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Collection{}, &model.Word{}, &model.Setting{}))
	require.NoError(t, db.Create(&model.Collection{Name: model.DefaultCollectionName}).Error)

	words := service.NewWordService(db, repository.NewGormWordRepository(), repository.NewGormCollectionRepository())
	handler := NewWordHandler(words, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Route("/api/v1/words", func(r chi.Router) {
		r.Post("/", handler.PostWord)
		r.Get("/", handler.GetWords)
		r.Get("/{word_id}", handler.GetWord)
		r.Patch("/{word_id}", handler.PatchWord)
		r.Delete("/{word_id}", handler.DeleteWord)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWordHandler_PostWord(t *testing.T) {
	router := newWordRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/words", map[string]any{
		"headword":    "apple",
		"definitions": []string{"a round fruit"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Word
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "apple", created.Headword)
	assert.NotZero(t, created.ID)

	// The duplicate pair answers 200 with the existing record.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/words", map[string]any{
		"headword":    "apple",
		"definitions": []string{"ignored on duplicate"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var dup model.Word
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dup))
	assert.Equal(t, created.ID, dup.ID)
	assert.Equal(t, []string{"a round fruit"}, dup.Definitions)
}

func TestWordHandler_PostWord_Validation(t *testing.T) {
	router := newWordRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/words", map[string]any{"headword": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

func TestWordHandler_PostWord_MalformedBody(t *testing.T) {
	router := newWordRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/words", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWordHandler_GetWords_Filters(t *testing.T) {
	router := newWordRouter(t)

	for _, h := range []string{"alpha", "beta"} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/words", map[string]any{"headword": h})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/words", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var words []model.Word
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &words))
	assert.Len(t, words, 2)

	// No mistakes recorded yet, so the notebook view is empty.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/words?mistakes=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &words))
	assert.Empty(t, words)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/words?collection_id=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWordHandler_GetWord_NotFound(t *testing.T) {
	router := newWordRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/words/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/words/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWordHandler_PatchWord(t *testing.T) {
	router := newWordRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/words", map[string]any{
		"headword": "laconic",
		"phonetic": "/ləˈkɒnɪk/",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Word
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/words/%d", created.ID), map[string]any{
		"phonetic": "/ləˈkɑːnɪk/",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var patched model.Word
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patched))
	assert.Equal(t, "/ləˈkɑːnɪk/", patched.Phonetic)
	assert.Equal(t, "laconic", patched.Headword)
}

func TestWordHandler_DeleteWord(t *testing.T) {
	router := newWordRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/words", map[string]any{"headword": "transient"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Word
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/words/%d", created.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/words/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
