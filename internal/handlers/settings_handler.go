package handlers

import (
	"log/slog"
	"net/http"

	"wordvault/internal/model"
	"wordvault/internal/service"
	"wordvault/internal/webutil"
)

type SettingsHandler struct {
	service service.SettingsService
	logger  *slog.Logger
}

func NewSettingsHandler(s service.SettingsService, logger *slog.Logger) *SettingsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsHandler{service: s, logger: logger}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSettings"))

	settings, err := h.service.Get(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, settings, logger)
}

func (h *SettingsHandler) PatchSettings(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchSettings"))

	var req model.UpdateSettingsRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Malformed request body.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	settings, err := h.service.Update(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, settings, logger)
}

// ResetProgress drops the global study cursor so the next "all" session
// starts from the beginning.
func (h *SettingsHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ResetProgress"))

	if err := h.service.ResetCursor(r.Context()); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Study progress reset")
	w.WriteHeader(http.StatusNoContent)
}
