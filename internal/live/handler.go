package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/entrevio-dev/entrevio/internal/domain"
	"github.com/entrevio-dev/entrevio/internal/interview"
	"github.com/entrevio-dev/entrevio/internal/transcript"
)

// Handler upgrades interview sessions onto a WebSocket and drives them over
// it: the client submits answers and receives questions, insights, and the
// final feedback as they are produced.
type Handler struct {
	orc           *interview.Orchestrator
	manager       *Manager
	transcripts   *transcript.Logger
	allowedOrigin string
	isDev         bool
}

// NewHandler creates a new live interview handler.
func NewHandler(orc *interview.Orchestrator, manager *Manager, transcripts *transcript.Logger, allowedOrigin string, isDev bool) *Handler {
	return &Handler{
		orc:           orc,
		manager:       manager,
		transcripts:   transcripts,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// liveMessage represents a client WebSocket message.
type liveMessage struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	slog.Info("Live connection request", "session_id", sessionID, "ip", r.RemoteAddr)

	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "session_id", sessionID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "interview ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "session_id", sessionID)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s, err := h.orc.Get(ctx, sessionID)
	if err != nil {
		h.send(ws, errorMessage("unknown_session"))
		return
	}

	h.manager.Register(sessionID, ws)
	defer h.manager.Unregister(sessionID, ws)

	h.sendState(ws, s)
	h.readLoop(ctx, ws, sessionID)
	slog.Info("Live connection ended", "session_id", sessionID)
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowedOrigin == "*" {
		return true
	}
	if origin == h.allowedOrigin {
		return true
	}
	slog.Warn("WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigin)
	return false
}

// sendState pushes the session's current position so a reconnecting client
// can resume where it left off.
func (h *Handler) sendState(ws *websocket.Conn, s *domain.Session) {
	switch {
	case s.Status == domain.StatusCompleted:
		h.send(ws, statusMessage(s, "completed"))
		if s.Feedback != nil {
			h.send(ws, feedbackMessage(s))
		}
	case s.CurrentQuestion() != nil:
		h.send(ws, questionMessage(s))
	default:
		h.send(ws, statusMessage(s, "evaluated"))
	}
}

func (h *Handler) readLoop(ctx context.Context, ws *websocket.Conn, sessionID string) {
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("WebSocket closed by client", "session_id", sessionID)
			} else {
				slog.Warn("WebSocket read error", "error", err, "session_id", sessionID)
			}
			return
		}

		var msg liveMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.send(ws, errorMessage("invalid message"))
			continue
		}

		switch msg.Type {
		case "answer":
			h.handleAnswer(ctx, ws, sessionID, msg.Content)
		case "finish":
			h.handleFinish(ctx, ws, sessionID)
		case "ping":
			h.send(ws, map[string]string{"type": "pong"})
		default:
			h.send(ws, errorMessage("unknown message type"))
		}
	}
}

func (h *Handler) handleAnswer(ctx context.Context, ws *websocket.Conn, sessionID, content string) {
	s, err := h.orc.Answer(ctx, sessionID, content)
	if err != nil {
		h.send(ws, errorMessage(err.Error()))
		return
	}
	h.transcripts.Record(transcript.Event{
		SessionID:  s.ID,
		Kind:       transcript.KindAnswer,
		QuestionID: s.AnswerCount(),
		Text:       content,
	})

	if s.AllQuestionsAnswered() {
		h.send(ws, statusMessage(s, "evaluated"))
		h.send(ws, insightsMessage(s))
		return
	}
	if q := s.CurrentQuestion(); q != nil {
		h.transcripts.Record(transcript.Event{
			SessionID:  s.ID,
			Kind:       transcript.KindQuestion,
			QuestionID: q.ID,
			Text:       q.Text,
		})
		h.send(ws, questionMessage(s))
	}
}

func (h *Handler) handleFinish(ctx context.Context, ws *websocket.Conn, sessionID string) {
	prev, err := h.orc.Get(ctx, sessionID)
	if err != nil {
		h.send(ws, errorMessage(err.Error()))
		return
	}
	done := prev.Status == domain.StatusCompleted && prev.Feedback != nil

	s, err := h.orc.Finalize(ctx, sessionID)
	if err != nil {
		h.send(ws, errorMessage(err.Error()))
		return
	}
	if !done {
		h.transcripts.Record(transcript.Event{
			SessionID: s.ID,
			Kind:      transcript.KindFeedback,
			Text:      s.Feedback.Summary,
			Overall:   s.Feedback.OverallScore,
		})
	}

	h.send(ws, insightsMessage(s))
	h.send(ws, feedbackMessage(s))
	h.send(ws, statusMessage(s, "completed"))
}

func (h *Handler) send(ws *websocket.Conn, v interface{}) {
	if err := h.writeJSON(ws, v); err != nil {
		slog.Debug("Failed to send live message", "error", err)
	}
}

func (h *Handler) writeJSON(ws *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return ws.Write(context.Background(), websocket.MessageText, data)
}

func questionMessage(s *domain.Session) map[string]interface{} {
	return map[string]interface{}{
		"type":                "question",
		"question":            s.CurrentQuestion(),
		"questions_remaining": s.TotalQuestions - s.AnswerCount(),
	}
}

func statusMessage(s *domain.Session, status string) map[string]interface{} {
	return map[string]interface{}{
		"type":               "status",
		"status":             status,
		"questions_answered": s.AnswerCount(),
		"total_questions":    s.TotalQuestions,
	}
}

func feedbackMessage(s *domain.Session) map[string]interface{} {
	return map[string]interface{}{
		"type":          "feedback",
		"feedback":      s.Feedback,
		"overall_score": s.Feedback.OverallScore,
	}
}

func insightsMessage(s *domain.Session) map[string]interface{} {
	return map[string]interface{}{
		"type":     "insights",
		"insights": interview.Insights(s),
	}
}

func errorMessage(message string) map[string]string {
	return map[string]string{"type": "error", "error": message}
}
