package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LLM.Provider != LLMScript {
		t.Errorf("LLM.Provider = %q, want script", cfg.LLM.Provider)
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Errorf("LLM.Timeout = %v, want 60s", cfg.LLM.Timeout)
	}
	if cfg.Audio.TTSProvider != AudioOff || cfg.Audio.STTProvider != AudioOff {
		t.Errorf("audio providers = %q/%q, want off/off", cfg.Audio.TTSProvider, cfg.Audio.STTProvider)
	}
	if cfg.Interview.Locale != "en" {
		t.Errorf("Locale = %q, want en", cfg.Interview.Locale)
	}
	if cfg.Interview.MaxQuestions != 10 {
		t.Errorf("MaxQuestions = %d, want 10", cfg.Interview.MaxQuestions)
	}
	if cfg.Interview.QuestionMode != ModeIncremental {
		t.Errorf("QuestionMode = %q, want incremental", cfg.Interview.QuestionMode)
	}
	if cfg.Interview.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.Interview.SessionTTL)
	}
	if !cfg.Transcript.Enabled || cfg.Transcript.QueueSize != 256 {
		t.Errorf("Transcript = %+v", cfg.Transcript)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("QUESTION_MODE", "bulk")
	t.Setenv("LOCALE", "es")
	t.Setenv("SESSION_TTL_MINUTES", "15")
	t.Setenv("TTS_STABILITY", "0.3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.LLM.Provider != LLMOpenAI || cfg.LLM.OpenAIModel != "gpt-4o" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.Interview.QuestionMode != ModeBulk {
		t.Errorf("QuestionMode = %q", cfg.Interview.QuestionMode)
	}
	if cfg.Interview.Locale != "es" {
		t.Errorf("Locale = %q", cfg.Interview.Locale)
	}
	if cfg.Interview.SessionTTL != 15*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.Interview.SessionTTL)
	}
	if cfg.Audio.Stability != 0.3 {
		t.Errorf("Stability = %v", cfg.Audio.Stability)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			"openai without key",
			map[string]string{"LLM_PROVIDER": "openai"},
			"OPENAI_API_KEY",
		},
		{
			"anthropic without key",
			map[string]string{"LLM_PROVIDER": "anthropic"},
			"ANTHROPIC_API_KEY",
		},
		{
			"unknown llm provider",
			map[string]string{"LLM_PROVIDER": "bard"},
			"LLM_PROVIDER",
		},
		{
			"elevenlabs without key",
			map[string]string{"TTS_PROVIDER": "elevenlabs"},
			"ELEVENLABS_API_KEY",
		},
		{
			"unknown tts provider",
			map[string]string{"TTS_PROVIDER": "espeak"},
			"TTS_PROVIDER",
		},
		{
			"stt without key",
			map[string]string{"STT_PROVIDER": "openai"},
			"OPENAI_API_KEY",
		},
		{
			"unknown locale",
			map[string]string{"LOCALE": "fr"},
			"LOCALE",
		},
		{
			"unknown question mode",
			map[string]string{"QUESTION_MODE": "streaming"},
			"QUESTION_MODE",
		},
		{
			"stability out of range",
			map[string]string{"TTS_STABILITY": "1.5"},
			"TTS_STABILITY",
		},
		{
			"zero max questions",
			map[string]string{"MAX_QUESTIONS": "0"},
			"MAX_QUESTIONS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"http://127.0.0.1:3000", true},
		{"https://entrevio.example.com", false},
	}
	for _, tt := range tests {
		c := &Config{FrontendURL: tt.url}
		if got := c.IsDevelopment(); got != tt.want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
