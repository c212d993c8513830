package handlers

import (
	"log/slog"
	"net/http"

	"wordvault/internal/model"
	"wordvault/internal/service"
	"wordvault/internal/webutil"
)

type BackupHandler struct {
	service service.BackupService
	logger  *slog.Logger
}

func NewBackupHandler(s service.BackupService, logger *slog.Logger) *BackupHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackupHandler{service: s, logger: logger}
}

// Export dumps the full store as a downloadable snapshot.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Export"))

	snapshot, err := h.service.Export(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="wordvault-backup.json"`)
	webutil.RespondWithJSON(w, http.StatusOK, snapshot, logger)
}

// Import merges an uploaded snapshot into the existing data.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Import"))

	var snapshot model.Snapshot
	if err := webutil.DecodeJSONBody(r, &snapshot); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Malformed snapshot.", "", model.ErrInvalidInput))
		return
	}

	report, err := h.service.Import(r.Context(), &snapshot)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Snapshot imported",
		slog.Int("collections_added", report.Collections),
		slog.Int("words_added", report.Words),
		slog.Int("words_skipped", report.Skipped),
	)
	webutil.RespondWithJSON(w, http.StatusOK, report, logger)
}

// ClearAll wipes both entity sets. Irreversible.
func (h *BackupHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ClearAll"))

	if err := h.service.ClearAll(r.Context()); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Store cleared")
	w.WriteHeader(http.StatusNoContent)
}
