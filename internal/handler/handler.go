package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/donation-service/internal/models"
	"github.com/Dan9191/donation-service/internal/service"
	"github.com/Dan9191/donation-service/internal/uploads"
)

type Handler struct {
	svc      *service.Service
	uploader *uploads.Saver
	log      *logrus.Logger
}

func NewHandler(svc *service.Service, uploader *uploads.Saver, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, uploader: uploader, log: log}
}

// Ping is a liveness probe
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"ping": "pong!"})
}

func (h *Handler) respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) respondError(w http.ResponseWriter, code int, detail string) {
	h.respondJSON(w, code, map[string]string{"detail": detail})
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a 500.
func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrDuplicateRegistration),
		errors.Is(err, models.ErrInvalidEmail),
		errors.Is(err, models.ErrSignatureInvalid),
		errors.Is(err, models.ErrMalformedPayload):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrInvalidToken),
		errors.Is(err, models.ErrUnauthorized):
		h.respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrReferenceNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Errorf("Internal error: %v", err)
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
