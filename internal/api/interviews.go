package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/entrevio-dev/entrevio/internal/domain"
	"github.com/entrevio-dev/entrevio/internal/interview"
	"github.com/entrevio-dev/entrevio/internal/live"
	"github.com/entrevio-dev/entrevio/internal/transcript"
)

// sessionLocks serializes mutating requests per session id.
var sessionLocks sync.Map

// InterviewHandler handles interview lifecycle endpoints.
type InterviewHandler struct {
	*Handler
	transcripts *transcript.Logger
	live        *live.Manager
	limiter     *RateLimiter
}

// NewInterviewHandler creates a new interview handler.
func NewInterviewHandler(base *Handler, transcripts *transcript.Logger, lm *live.Manager, limiter *RateLimiter) *InterviewHandler {
	return &InterviewHandler{
		Handler:     base,
		transcripts: transcripts,
		live:        lm,
		limiter:     limiter,
	}
}

// RegisterRoutes registers interview routes.
func (h *InterviewHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/interviews", func(r chi.Router) {
		r.Post("/start", h.Start)
		r.Get("/history", h.History)
		r.Get("/{sessionID}", h.Get)
		r.Post("/{sessionID}/answer", h.Answer)
		r.Get("/{sessionID}/feedback", h.Feedback)
		r.Post("/{sessionID}/complete", h.Complete)
		r.Delete("/{sessionID}", h.Delete)
	})
}

type startRequest struct {
	Role           string   `json:"role"`
	Seniority      string   `json:"seniority"`
	FocusAreas     []string `json:"focus_areas"`
	TotalQuestions int      `json:"total_questions"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// Start creates a new interview session and returns its first question.
func (h *InterviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		Error(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.orc.Start(r.Context(), interview.StartParams{
		Role:           req.Role,
		Seniority:      domain.Seniority(strings.ToLower(strings.TrimSpace(req.Seniority))),
		FocusAreas:     req.FocusAreas,
		TotalQuestions: req.TotalQuestions,
	})
	if err != nil {
		slog.Error("Failed to start interview", "error", err)
		Error(w, statusFor(err), err.Error())
		return
	}

	q := s.CurrentQuestion()
	h.transcripts.Record(transcript.Event{
		SessionID:  s.ID,
		Kind:       transcript.KindQuestion,
		QuestionID: q.ID,
		Text:       q.Text,
	})

	JSON(w, http.StatusCreated, map[string]interface{}{
		"session_id":       s.ID,
		"role":             s.Role,
		"seniority":        s.Seniority,
		"current_question": q,
		"total_questions":  s.TotalQuestions,
		"status":           s.Status,
		"created_at":       s.CreatedAt,
	})
}

// Answer records an answer to the session's open question. The final answer
// triggers evaluation of the whole session; earlier answers return the next
// question.
func (h *InterviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		Error(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	// Prevent concurrent mutations of the same session.
	lock, _ := sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	mutex := lock.(*sync.Mutex)
	if !mutex.TryLock() {
		slog.Warn("Concurrent request for session", "session_id", sessionID)
		Error(w, http.StatusConflict, "session_busy")
		return
	}
	defer func() {
		mutex.Unlock()
		sessionLocks.Delete(sessionID)
	}()

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.orc.Answer(r.Context(), sessionID, req.Answer)
	if err != nil {
		slog.Error("Failed to process answer", "error", err, "session_id", sessionID)
		Error(w, statusFor(err), err.Error())
		return
	}

	answered := s.AnswerCount()
	h.transcripts.Record(transcript.Event{
		SessionID:  s.ID,
		Kind:       transcript.KindAnswer,
		QuestionID: answered,
		Text:       req.Answer,
	})

	resp := map[string]interface{}{
		"session_id":          s.ID,
		"question_answered":   answered,
		"status":              s.Status,
		"total_questions":     s.TotalQuestions,
		"questions_remaining": s.TotalQuestions - answered,
	}
	if s.AllQuestionsAnswered() {
		evals := s.Evaluations()
		resp["status"] = "evaluated"
		resp["evaluation"] = evals[len(evals)-1]
	} else if q := s.CurrentQuestion(); q != nil {
		resp["next_question"] = q
		h.transcripts.Record(transcript.Event{
			SessionID:  s.ID,
			Kind:       transcript.KindQuestion,
			QuestionID: q.ID,
			Text:       q.Text,
		})
	}
	JSON(w, http.StatusOK, resp)
}

// Get returns a session snapshot.
func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	s, err := h.orc.Get(r.Context(), sessionID)
	if err != nil {
		Error(w, statusFor(err), err.Error())
		return
	}

	resp := map[string]interface{}{
		"session_id":         s.ID,
		"role":               s.Role,
		"seniority":          s.Seniority,
		"status":             s.Status,
		"questions_asked":    s.QuestionCount(),
		"questions_answered": s.AnswerCount(),
		"total_questions":    s.TotalQuestions,
		"created_at":         s.CreatedAt,
		"updated_at":         s.UpdatedAt,
	}
	if q := s.CurrentQuestion(); q != nil {
		resp["current_question"] = q
	}
	JSON(w, http.StatusOK, resp)
}

// Feedback finalizes the interview if needed and returns the feedback
// document with all evaluations. Repeat calls return the stored feedback.
func (h *InterviewHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		Error(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	lock, _ := sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	mutex := lock.(*sync.Mutex)
	if !mutex.TryLock() {
		slog.Warn("Concurrent request for session", "session_id", sessionID)
		Error(w, http.StatusConflict, "session_busy")
		return
	}
	defer func() {
		mutex.Unlock()
		sessionLocks.Delete(sessionID)
	}()

	s, finalized, err := h.finalize(r, sessionID)
	if err != nil {
		slog.Error("Failed to generate feedback", "error", err, "session_id", sessionID)
		Error(w, statusFor(err), err.Error())
		return
	}
	if finalized {
		h.transcripts.Record(transcript.Event{
			SessionID: s.ID,
			Kind:      transcript.KindFeedback,
			Text:      s.Feedback.Summary,
			Overall:   s.Feedback.OverallScore,
		})
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"session_id":                 s.ID,
		"feedback":                   s.Feedback,
		"all_evaluations":            s.Evaluations(),
		"interview_duration_minutes": s.DurationMinutes(),
	})
}

// Complete finalizes an interview early using the answers given so far.
func (h *InterviewHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		Error(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	lock, _ := sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	mutex := lock.(*sync.Mutex)
	if !mutex.TryLock() {
		slog.Warn("Concurrent request for session", "session_id", sessionID)
		Error(w, http.StatusConflict, "session_busy")
		return
	}
	defer func() {
		mutex.Unlock()
		sessionLocks.Delete(sessionID)
	}()

	s, finalized, err := h.finalize(r, sessionID)
	if err != nil {
		slog.Error("Failed to complete interview", "error", err, "session_id", sessionID)
		Error(w, statusFor(err), err.Error())
		return
	}
	if finalized {
		h.transcripts.Record(transcript.Event{
			SessionID: s.ID,
			Kind:      transcript.KindFeedback,
			Text:      s.Feedback.Summary,
			Overall:   s.Feedback.OverallScore,
		})
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"message":            "Interview completed successfully",
		"session_id":         s.ID,
		"questions_answered": s.AnswerCount(),
	})
}

// Delete removes a session and closes its live connection.
func (h *InterviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	lock, _ := sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	mutex := lock.(*sync.Mutex)
	if !mutex.TryLock() {
		slog.Warn("Concurrent request for session", "session_id", sessionID)
		Error(w, http.StatusConflict, "session_busy")
		return
	}
	defer func() {
		mutex.Unlock()
		sessionLocks.Delete(sessionID)
	}()

	if _, err := h.orc.Get(r.Context(), sessionID); err != nil {
		Error(w, statusFor(err), err.Error())
		return
	}
	if err := h.orc.Delete(r.Context(), sessionID); err != nil {
		slog.Error("Failed to delete session", "error", err, "session_id", sessionID)
		Error(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	h.live.CloseSession(sessionID)

	slog.Info("Interview session deleted", "session_id", sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// History lists all stored sessions, newest first.
func (h *InterviewHandler) History(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.orc.History(r.Context())
	if err != nil {
		slog.Error("Failed to list sessions", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	history := make([]map[string]interface{}, 0, len(sessions))
	for _, s := range sessions {
		entry := map[string]interface{}{
			"session_id":         s.ID,
			"role":               s.Role,
			"seniority":          s.Seniority,
			"status":             s.Status,
			"questions_answered": s.AnswerCount(),
			"total_questions":    s.TotalQuestions,
			"created_at":         s.CreatedAt,
		}
		if s.Feedback != nil {
			entry["overall_score"] = s.Feedback.OverallScore
		} else if s.EvaluationCount() > 0 {
			entry["overall_score"] = s.MeanOverall()
		}
		history = append(history, entry)
	}
	JSON(w, http.StatusOK, history)
}

// finalize runs the end-of-interview flow and reports whether this call did
// the work, so callers log the feedback transcript exactly once.
func (h *InterviewHandler) finalize(r *http.Request, sessionID string) (*domain.Session, bool, error) {
	prev, err := h.orc.Get(r.Context(), sessionID)
	if err != nil {
		return nil, false, err
	}
	done := prev.Status == domain.StatusCompleted && prev.Feedback != nil

	s, err := h.orc.Finalize(r.Context(), sessionID)
	if err != nil {
		return nil, false, err
	}
	return s, !done, nil
}
