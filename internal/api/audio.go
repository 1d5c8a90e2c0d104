package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/entrevio-dev/entrevio/internal/audio"
)

// maxUploadBytes caps transcription uploads at the Whisper API limit.
const maxUploadBytes = 25 << 20

// AudioHandler handles voice endpoints. A nil provider means the feature is
// not configured and its endpoint answers 503.
type AudioHandler struct {
	*Handler
	synth audio.Synthesizer
	stt   audio.Transcriber
}

// NewAudioHandler creates a new audio handler.
func NewAudioHandler(base *Handler, synth audio.Synthesizer, stt audio.Transcriber) *AudioHandler {
	return &AudioHandler{Handler: base, synth: synth, stt: stt}
}

// RegisterRoutes registers audio routes.
func (h *AudioHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/audio", func(r chi.Router) {
		r.Post("/synthesize", h.Synthesize)
		r.Post("/transcribe", h.Transcribe)
	})
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

// Synthesize converts text to speech and streams the audio back.
func (h *AudioHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	if h.synth == nil {
		Error(w, http.StatusServiceUnavailable, "voice synthesis is not configured")
		return
	}

	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		Error(w, http.StatusBadRequest, "text is required")
		return
	}

	data, contentType, err := h.synth.Synthesize(r.Context(), req.Text, req.VoiceID)
	if err != nil {
		slog.Error("Speech synthesis failed", "error", err)
		Error(w, http.StatusBadGateway, "speech synthesis failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Debug("Failed to write audio response", "error", err)
	}
}

// Transcribe converts an uploaded audio file to text.
func (h *AudioHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if h.stt == nil {
		Error(w, http.StatusServiceUnavailable, "voice transcription is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			Error(w, http.StatusRequestEntityTooLarge, "audio file too large (max 25MB)")
			return
		}
		Error(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	text, err := h.stt.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		slog.Error("Transcription failed", "error", err, "filename", header.Filename)
		Error(w, http.StatusBadGateway, "transcription failed")
		return
	}

	JSON(w, http.StatusOK, map[string]string{"text": text})
}
