// Package api provides HTTP handlers for the interview API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/entrevio-dev/entrevio/internal/config"
	"github.com/entrevio-dev/entrevio/internal/domain"
	"github.com/entrevio-dev/entrevio/internal/interview"
	"github.com/entrevio-dev/entrevio/internal/store"
)

// Handler provides common handler dependencies.
type Handler struct {
	orc  *interview.Orchestrator
	repo store.Repository
	cfg  *config.Config
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(orc *interview.Orchestrator, repo store.Repository, cfg *config.Config) *Handler {
	return &Handler{
		orc:  orc,
		repo: repo,
		cfg:  cfg,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// statusFor maps orchestrator and domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, interview.ErrInvalid), errors.Is(err, domain.ErrNoAnswers):
		return http.StatusBadRequest
	case errors.Is(err, interview.ErrUnknownSession):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionCompleted),
		errors.Is(err, domain.ErrNoOpenQuestion),
		errors.Is(err, domain.ErrQuestionLimit):
		return http.StatusConflict
	case errors.Is(err, interview.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
