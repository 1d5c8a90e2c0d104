package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestElevenLabsSynthesize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/text-to-speech/voice-123" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("xi-api-key"); got != "test-key" {
			t.Errorf("xi-api-key = %q", got)
		}

		var req struct {
			Text          string `json:"text"`
			ModelID       string `json:"model_id"`
			VoiceSettings struct {
				Stability       float64 `json:"stability"`
				SimilarityBoost float64 `json:"similarity_boost"`
			} `json:"voice_settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Text != "hello" {
			t.Errorf("text = %q", req.Text)
		}
		if req.VoiceSettings.Stability != 0.5 || req.VoiceSettings.SimilarityBoost != 0.75 {
			t.Errorf("voice settings = %+v", req.VoiceSettings)
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	e := NewElevenLabs(ElevenLabsConfig{
		APIKey:          "test-key",
		VoiceID:         "default-voice",
		ModelID:         "eleven_multilingual_v2",
		Stability:       0.5,
		SimilarityBoost: 0.75,
		BaseURL:         srv.URL,
	})
	data, contentType, err := e.Synthesize(context.Background(), "hello", "voice-123")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if contentType != "audio/mpeg" {
		t.Errorf("contentType = %q", contentType)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("data = %q", data)
	}
}

func TestElevenLabsUsesDefaultVoice(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/default-voice") {
			t.Errorf("path = %s, want default voice", r.URL.Path)
		}
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	e := NewElevenLabs(ElevenLabsConfig{APIKey: "k", VoiceID: "default-voice", BaseURL: srv.URL})
	if _, _, err := e.Synthesize(context.Background(), "hello", ""); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
}

func TestOpenAIAudioSynthesize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req struct {
			Model string `json:"model"`
			Input string `json:"input"`
			Voice string `json:"voice"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Model != "tts-1" || req.Voice != "alloy" || req.Input != "hello" {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	o := NewOpenAIAudio(OpenAIAudioConfig{APIKey: "k", BaseURL: srv.URL})
	data, contentType, err := o.Synthesize(context.Background(), "hello", "ignored-voice")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if contentType != "audio/mpeg" || string(data) != "mp3-bytes" {
		t.Errorf("got %q %q", contentType, data)
	}
}

func TestOpenAIAudioTranscribe(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model = %q", got)
		}
		if got := r.FormValue("language"); got != "en" {
			t.Errorf("language = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "answer.webm" {
			t.Errorf("filename = %q", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"text":" I enjoy building systems. "}`)
	}))
	defer srv.Close()

	o := NewOpenAIAudio(OpenAIAudioConfig{APIKey: "k", Language: "en", BaseURL: srv.URL})
	got, err := o.Transcribe(context.Background(), bytes.NewReader([]byte("audio-bytes")), "answer.webm")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "I enjoy building systems." {
		t.Errorf("got %q", got)
	}
}

func TestMockSynthesizeReturnsPlayableWAV(t *testing.T) {
	t.Parallel()

	data, contentType, err := Mock{}.Synthesize(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if contentType != "audio/wav" {
		t.Errorf("contentType = %q", contentType)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) {
		t.Error("mock audio missing RIFF header")
	}
	if !bytes.Contains(data[:44], []byte("WAVE")) {
		t.Error("mock audio missing WAVE marker")
	}
	if len(data) <= 44 {
		t.Errorf("mock audio has no sample data: %d bytes", len(data))
	}
}

func TestMockTranscribe(t *testing.T) {
	t.Parallel()

	got, err := Mock{}.Transcribe(context.Background(), bytes.NewReader([]byte("x")), "a.wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got == "" {
		t.Error("mock transcript should not be empty")
	}
}
