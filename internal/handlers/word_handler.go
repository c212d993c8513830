package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wordvault/internal/model"
	"wordvault/internal/service"
	"wordvault/internal/webutil"
)

type WordHandler struct {
	service service.WordService
	logger  *slog.Logger
}

func NewWordHandler(s service.WordService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{service: s, logger: logger}
}

// PostWord adds a word manually. A duplicate (headword, collection) pair
// returns the existing record with 200 instead of 201.
func (h *WordHandler) PostWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostWord"))

	var req model.WordDraft
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Malformed request body.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	word, created, err := h.service.AddWord(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		logger.Info("Word added", slog.Uint64("word_id", uint64(word.ID)), slog.String("headword", word.Headword))
	}
	webutil.RespondWithJSON(w, status, word, logger)
}

// GetWords lists words, optionally filtered with ?collection_id= and
// ?mistakes=true (the mistake-notebook view).
func (h *WordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWords"))

	var collectionID *uint
	if raw := r.URL.Query().Get("collection_id"); raw != "" {
		id, err := webutil.ParseUintParam(raw)
		if err != nil {
			webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "Invalid collection id.", "collection_id", model.ErrInvalidInput))
			return
		}
		collectionID = &id
	}
	mistakesOnly := r.URL.Query().Get("mistakes") == "true"

	words, err := h.service.ListWords(r.Context(), collectionID, mistakesOnly)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, words, logger)
}

func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWord"))

	id, err := webutil.ParseUintParam(chi.URLParam(r, "word_id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "Invalid word id.", "word_id", model.ErrInvalidInput))
		return
	}

	word, err := h.service.GetWord(r.Context(), id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

// PatchWord merges the given fields into the record; omitted fields keep
// their values.
func (h *WordHandler) PatchWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchWord"))

	id, err := webutil.ParseUintParam(chi.URLParam(r, "word_id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "Invalid word id.", "word_id", model.ErrInvalidInput))
		return
	}

	var req model.UpdateWordRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Malformed request body.", "", model.ErrInvalidInput))
		return
	}

	word, err := h.service.UpdateWord(r.Context(), id, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"))

	id, err := webutil.ParseUintParam(chi.URLParam(r, "word_id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "Invalid word id.", "word_id", model.ErrInvalidInput))
		return
	}

	if err := h.service.DeleteWord(r.Context(), id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
