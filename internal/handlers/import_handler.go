package handlers

import (
	"log/slog"
	"net/http"

	"wordvault/internal/model"
	"wordvault/internal/service"
	"wordvault/internal/webutil"
)

type ImportHandler struct {
	service service.ImportService
	logger  *slog.Logger
}

func NewImportHandler(s service.ImportService, logger *slog.Logger) *ImportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportHandler{service: s, logger: logger}
}

// PostImport runs the import pipeline synchronously and returns the full
// report. The request context carries cancellation: a client that navigates
// away stops the batch before its next token, keeping committed words.
func (h *ImportHandler) PostImport(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostImport"))

	var req model.ImportRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Malformed request body.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	progress := func(processed, total, percent int) {
		logger.Debug("Import progress",
			slog.Int("processed", processed),
			slog.Int("total", total),
			slog.Int("percent", percent),
		)
	}

	report, err := h.service.Run(r.Context(), req.Text, req.CollectionID, progress)
	if err != nil {
		// Context cancellation mid-batch: nothing left to answer to.
		if r.Context().Err() != nil {
			return
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Import finished", slog.String("summary", report.Summary))
	webutil.RespondWithJSON(w, http.StatusOK, report, logger)
}
