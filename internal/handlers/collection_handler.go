package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wordvault/internal/model"
	"wordvault/internal/service"
	"wordvault/internal/webutil"
)

type CollectionHandler struct {
	service service.CollectionService
	logger  *slog.Logger
}

func NewCollectionHandler(s service.CollectionService, logger *slog.Logger) *CollectionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollectionHandler{service: s, logger: logger}
}

func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateCollection"))

	var req model.CreateCollectionRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Malformed request body.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	collection, err := h.service.CreateCollection(r.Context(), req.Name)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Collection created", slog.Uint64("collection_id", uint64(collection.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, collection, logger)
}

func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCollections"))

	collections, err := h.service.ListCollections(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, collections, logger)
}

func (h *CollectionHandler) RenameCollection(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "RenameCollection"))

	id, err := webutil.ParseUintParam(chi.URLParam(r, "collection_id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "Invalid collection id.", "collection_id", model.ErrInvalidInput))
		return
	}

	var req model.RenameCollectionRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Malformed request body.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	collection, err := h.service.RenameCollection(r.Context(), id, req.Name)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, collection, logger)
}

func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCollection"))

	id, err := webutil.ParseUintParam(chi.URLParam(r, "collection_id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "Invalid collection id.", "collection_id", model.ErrInvalidInput))
		return
	}

	if err := h.service.DeleteCollection(r.Context(), id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Collection deleted", slog.Uint64("collection_id", uint64(id)))
	w.WriteHeader(http.StatusNoContent)
}
