// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider enum values.
const (
	LLMOpenAI    = "openai"
	LLMAnthropic = "anthropic"
	LLMScript    = "script"

	AudioElevenLabs = "elevenlabs"
	AudioOpenAI     = "openai"
	AudioMock       = "mock"
	AudioOff        = "off"

	ModeIncremental = "incremental"
	ModeBulk        = "bulk"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	FrontendURL string
	LLM         LLMConfig
	Audio       AudioConfig
	Interview   InterviewConfig
	Transcript  TranscriptConfig
}

// LLMConfig selects and configures the language model provider.
type LLMConfig struct {
	Provider       string
	OpenAIKey      string
	OpenAIModel    string
	AnthropicKey   string
	AnthropicModel string
	Timeout        time.Duration
}

// AudioConfig selects and configures the voice providers.
type AudioConfig struct {
	TTSProvider     string
	STTProvider     string
	ElevenLabsKey   string
	ElevenLabsVoice string
	ElevenLabsModel string
	Stability       float64
	SimilarityBoost float64
}

// InterviewConfig tunes interview behavior.
type InterviewConfig struct {
	Locale       string
	MaxQuestions int
	AnswerMinLen int
	QuestionMode string
	SessionTTL   time.Duration
}

// TranscriptConfig controls NDJSON transcript logging.
type TranscriptConfig struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	timeoutSeconds := getEnvInt("LLM_TIMEOUT_SECONDS", 60)
	if timeoutSeconds <= 0 {
		timeoutSeconds = 60
	}
	ttlMinutes := getEnvInt("SESSION_TTL_MINUTES", 60)
	queueSize := getEnvInt("TRANSCRIPT_QUEUE_SIZE", 256)
	if queueSize <= 0 {
		queueSize = 256
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", ""),
		LLM: LLMConfig{
			Provider:       strings.ToLower(getEnv("LLM_PROVIDER", LLMScript)),
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			AnthropicKey:   getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel: getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
			Timeout:        time.Duration(timeoutSeconds) * time.Second,
		},
		Audio: AudioConfig{
			TTSProvider:     strings.ToLower(getEnv("TTS_PROVIDER", AudioOff)),
			STTProvider:     strings.ToLower(getEnv("STT_PROVIDER", AudioOff)),
			ElevenLabsKey:   getEnv("ELEVENLABS_API_KEY", ""),
			ElevenLabsVoice: getEnv("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
			ElevenLabsModel: getEnv("ELEVENLABS_MODEL", "eleven_multilingual_v2"),
			Stability:       getEnvFloat("TTS_STABILITY", 0.5),
			SimilarityBoost: getEnvFloat("TTS_SIMILARITY_BOOST", 0.75),
		},
		Interview: InterviewConfig{
			Locale:       strings.ToLower(getEnv("LOCALE", "en")),
			MaxQuestions: getEnvInt("MAX_QUESTIONS", 10),
			AnswerMinLen: getEnvInt("ANSWER_MIN_LENGTH", 10),
			QuestionMode: strings.ToLower(getEnv("QUESTION_MODE", ModeIncremental)),
			SessionTTL:   time.Duration(ttlMinutes) * time.Minute,
		},
		Transcript: TranscriptConfig{
			Enabled:   getEnvBool("TRANSCRIPT_LOG_ENABLED", true),
			Dir:       getEnv("TRANSCRIPT_LOG_DIR", "./data/transcripts"),
			QueueSize: queueSize,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks enum values and the keys the selected providers require.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	switch c.LLM.Provider {
	case LLMOpenAI:
		if c.LLM.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
	case LLMAnthropic:
		if c.LLM.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER=anthropic")
		}
	case LLMScript:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}

	switch c.Audio.TTSProvider {
	case AudioElevenLabs:
		if c.Audio.ElevenLabsKey == "" {
			return fmt.Errorf("ELEVENLABS_API_KEY is required when TTS_PROVIDER=elevenlabs")
		}
	case AudioOpenAI:
		if c.LLM.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when TTS_PROVIDER=openai")
		}
	case AudioMock, AudioOff:
	default:
		return fmt.Errorf("unsupported TTS_PROVIDER %q", c.Audio.TTSProvider)
	}

	switch c.Audio.STTProvider {
	case AudioOpenAI:
		if c.LLM.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when STT_PROVIDER=openai")
		}
	case AudioMock, AudioOff:
	default:
		return fmt.Errorf("unsupported STT_PROVIDER %q", c.Audio.STTProvider)
	}

	if c.Audio.Stability < 0 || c.Audio.Stability > 1 {
		return fmt.Errorf("TTS_STABILITY must be within [0, 1]")
	}
	if c.Audio.SimilarityBoost < 0 || c.Audio.SimilarityBoost > 1 {
		return fmt.Errorf("TTS_SIMILARITY_BOOST must be within [0, 1]")
	}

	switch c.Interview.Locale {
	case "en", "es":
	default:
		return fmt.Errorf("unsupported LOCALE %q", c.Interview.Locale)
	}
	if c.Interview.MaxQuestions <= 0 {
		return fmt.Errorf("MAX_QUESTIONS must be > 0")
	}
	if c.Interview.AnswerMinLen <= 0 {
		return fmt.Errorf("ANSWER_MIN_LENGTH must be > 0")
	}
	switch c.Interview.QuestionMode {
	case ModeIncremental, ModeBulk:
	default:
		return fmt.Errorf("unsupported QUESTION_MODE %q", c.Interview.QuestionMode)
	}
	if c.Interview.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be > 0")
	}

	if c.Transcript.Enabled && c.Transcript.Dir == "" {
		return fmt.Errorf("TRANSCRIPT_LOG_DIR cannot be empty when transcript logging is enabled")
	}
	if c.Transcript.QueueSize <= 0 {
		return fmt.Errorf("TRANSCRIPT_QUEUE_SIZE must be > 0")
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}
