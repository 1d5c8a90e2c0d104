package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultElevenLabsBaseURL = "https://api.elevenlabs.io"

// ElevenLabsConfig configures the ElevenLabs text-to-speech client.
type ElevenLabsConfig struct {
	APIKey          string
	VoiceID         string  // default voice, overridable per request
	ModelID         string  // e.g. eleven_multilingual_v2
	Stability       float64 // 0..1 voice setting
	SimilarityBoost float64 // 0..1 voice setting
	BaseURL         string
	Timeout         time.Duration
}

// ElevenLabs synthesizes speech through the ElevenLabs API and returns MP3
// audio.
type ElevenLabs struct {
	cfg   ElevenLabsConfig
	httpC *http.Client
}

var _ Synthesizer = (*ElevenLabs)(nil)

// NewElevenLabs creates a synthesizer with the given configuration.
func NewElevenLabs(cfg ElevenLabsConfig) *ElevenLabs {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultElevenLabsBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &ElevenLabs{
		cfg:   cfg,
		httpC: &http.Client{Timeout: cfg.Timeout},
	}
}

type elevenLabsRequest struct {
	Text          string `json:"text"`
	ModelID       string `json:"model_id,omitempty"`
	VoiceSettings struct {
		Stability       float64 `json:"stability"`
		SimilarityBoost float64 `json:"similarity_boost"`
	} `json:"voice_settings"`
}

// Synthesize implements Synthesizer.
func (e *ElevenLabs) Synthesize(ctx context.Context, text, voice string) ([]byte, string, error) {
	if voice == "" {
		voice = e.cfg.VoiceID
	}

	body := elevenLabsRequest{Text: text, ModelID: e.cfg.ModelID}
	body.VoiceSettings.Stability = e.cfg.Stability
	body.VoiceSettings.SimilarityBoost = e.cfg.SimilarityBoost
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encoding elevenlabs request: %w", err)
	}

	endpoint := e.cfg.BaseURL + "/v1/text-to-speech/" + url.PathEscape(voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("building elevenlabs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", e.cfg.APIKey)

	resp, err := e.httpC.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("calling elevenlabs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, "", fmt.Errorf("elevenlabs returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading elevenlabs audio: %w", err)
	}
	return data, "audio/mpeg", nil
}
