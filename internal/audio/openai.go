package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIAudioConfig configures the OpenAI speech and transcription client.
type OpenAIAudioConfig struct {
	APIKey   string
	Voice    string // speech voice, defaults to alloy
	Language string // transcription language hint, e.g. "en" or "es"
	BaseURL  string
	Timeout  time.Duration
}

// OpenAIAudio is both a Synthesizer (tts-1) and a Transcriber (whisper-1)
// backed by the OpenAI audio endpoints.
type OpenAIAudio struct {
	cfg   OpenAIAudioConfig
	httpC *http.Client
}

var (
	_ Synthesizer = (*OpenAIAudio)(nil)
	_ Transcriber = (*OpenAIAudio)(nil)
)

// NewOpenAIAudio creates a client with the given configuration.
func NewOpenAIAudio(cfg OpenAIAudioConfig) *OpenAIAudio {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIBaseURL
	}
	if cfg.Voice == "" {
		cfg.Voice = "alloy"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &OpenAIAudio{
		cfg:   cfg,
		httpC: &http.Client{Timeout: cfg.Timeout},
	}
}

type openAISpeechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// Synthesize implements Synthesizer. The voice argument is ignored: OpenAI
// voices are named, not ids, so the configured voice always applies.
func (o *OpenAIAudio) Synthesize(ctx context.Context, text, _ string) ([]byte, string, error) {
	payload, err := json.Marshal(openAISpeechRequest{Model: "tts-1", Input: text, Voice: o.cfg.Voice})
	if err != nil {
		return nil, "", fmt.Errorf("encoding speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.BaseURL+"/audio/speech", bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("building speech request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	resp, err := o.httpC.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("calling openai speech: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, "", fmt.Errorf("openai speech returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading openai audio: %w", err)
	}
	return data, "audio/mpeg", nil
}

// Transcribe implements Transcriber via the whisper-1 transcription endpoint.
func (o *OpenAIAudio) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("building transcription form: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("copying audio into form: %w", err)
	}
	if err := mw.WriteField("model", "whisper-1"); err != nil {
		return "", fmt.Errorf("building transcription form: %w", err)
	}
	if o.cfg.Language != "" {
		if err := mw.WriteField("language", o.cfg.Language); err != nil {
			return "", fmt.Errorf("building transcription form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing transcription form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.BaseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("building transcription request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	resp, err := o.httpC.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling openai transcription: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("openai transcription returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding transcription response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
