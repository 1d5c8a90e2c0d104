package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/entrevio-dev/entrevio/internal/config"
	"github.com/entrevio-dev/entrevio/internal/store"
)

const healthCheckTimeout = 5 * time.Second

// SystemHandler handles service info, health, and public config endpoints.
type SystemHandler struct {
	repo store.Repository
	cfg  *config.Config
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(repo store.Repository, cfg *config.Config) *SystemHandler {
	return &SystemHandler{repo: repo, cfg: cfg}
}

// RegisterRoutes registers the service info, health, and config routes.
func (h *SystemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/api/config", h.GetConfig)
}

// Root returns basic API information.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"name":         "entrevio",
		"version":      "1.0.0",
		"description":  "Interview training API with fuzzy answer scoring",
		"llm_provider": h.cfg.LLM.Provider,
		"endpoints": map[string]string{
			"health":     "/health",
			"config":     "/api/config",
			"interviews": "/api/interviews",
			"audio":      "/api/audio",
			"live":       "/ws/interview",
		},
	})
}

// Health returns the health status of the API and its dependencies.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := map[string]interface{}{
		"status": "healthy",
		"providers": map[string]string{
			"llm": h.cfg.LLM.Provider,
			"tts": h.cfg.Audio.TTSProvider,
			"stt": h.cfg.Audio.STTProvider,
		},
		"checks": map[string]string{"api": "ok"},
	}
	statusCode := http.StatusOK

	if err := h.repo.Ping(ctx); err != nil {
		slog.Error("Health check failed", "error", err)
		status["status"] = "degraded"
		status["checks"].(map[string]string)["store"] = "unreachable"
		statusCode = http.StatusServiceUnavailable
	} else {
		status["checks"].(map[string]string)["store"] = "ok"
		if sessions, err := h.repo.ListSessions(ctx); err == nil {
			status["sessions"] = len(sessions)
		}
	}

	JSON(w, statusCode, status)
}

// GetConfig returns the public runtime configuration for the frontend.
func (h *SystemHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"llm_provider":      h.cfg.LLM.Provider,
		"question_mode":     h.cfg.Interview.QuestionMode,
		"max_questions":     h.cfg.Interview.MaxQuestions,
		"answer_min_length": h.cfg.Interview.AnswerMinLen,
		"locale":            h.cfg.Interview.Locale,
		"tts_enabled":       h.cfg.Audio.TTSProvider != config.AudioOff,
		"stt_enabled":       h.cfg.Audio.STTProvider != config.AudioOff,
	})
}
