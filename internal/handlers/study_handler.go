package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wordvault/internal/model"
	"wordvault/internal/service"
	"wordvault/internal/webutil"
)

type StudyHandler struct {
	service service.StudyService
	logger  *slog.Logger
}

func NewStudyHandler(s service.StudyService, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyHandler{service: s, logger: logger}
}

// sessionResponse pairs the session state with the current card.
type sessionResponse struct {
	Session *model.StudySession `json:"session"`
	Card    *model.Card         `json:"card,omitempty"`
}

func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartSession"))

	var req model.StartSessionRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Malformed request body.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	session, card, err := h.service.StartSession(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, sessionResponse{Session: session, Card: card}, logger)
}

func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSession"))

	session, card, err := h.service.GetSession(r.Context(), chi.URLParam(r, "session_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, sessionResponse{Session: session, Card: card}, logger)
}

func (h *StudyHandler) PostAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostAnswer"))

	var req model.AnswerRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Malformed request body.", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.Answer(r.Context(), chi.URLParam(r, "session_id"), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
