// Entrevio - AI Interview Practice Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entrevio-dev/entrevio/internal/agent"
	"github.com/entrevio-dev/entrevio/internal/api"
	"github.com/entrevio-dev/entrevio/internal/audio"
	"github.com/entrevio-dev/entrevio/internal/config"
	"github.com/entrevio-dev/entrevio/internal/fuzzy"
	"github.com/entrevio-dev/entrevio/internal/interview"
	"github.com/entrevio-dev/entrevio/internal/live"
	"github.com/entrevio-dev/entrevio/internal/middleware"
	"github.com/entrevio-dev/entrevio/internal/nlp"
	"github.com/entrevio-dev/entrevio/internal/store"
	"github.com/entrevio-dev/entrevio/internal/transcript"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

const rateLimitPerMinute = 30

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo := store.NewMemory()
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close session store", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Session store health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Session store ready")

	transcripts, err := transcript.New(transcript.Config{
		Enabled:   cfg.Transcript.Enabled,
		Dir:       cfg.Transcript.Dir,
		QueueSize: cfg.Transcript.QueueSize,
	})
	if err != nil {
		slog.Error("Failed to initialize transcript logger", "error", err)
		os.Exit(1)
	}
	defer transcripts.Close()

	// Select the LLM client once at startup. Script mode runs the whole
	// interview from canned responses and needs no API key.
	var questionClient, feedbackClient agent.Client
	switch cfg.LLM.Provider {
	case config.LLMOpenAI:
		c := agent.NewOpenAIClient(agent.OpenAIConfig{
			APIKey:  cfg.LLM.OpenAIKey,
			Model:   cfg.LLM.OpenAIModel,
			Timeout: cfg.LLM.Timeout,
		})
		questionClient, feedbackClient = c, c
	case config.LLMAnthropic:
		c := agent.NewAnthropicClient(agent.AnthropicConfig{
			APIKey:  cfg.LLM.AnthropicKey,
			Model:   cfg.LLM.AnthropicModel,
			Timeout: cfg.LLM.Timeout,
		})
		questionClient, feedbackClient = c, c
	default:
		questionClient = agent.NewScriptClient(agent.QuestionScript()...)
		feedbackClient = agent.NewScriptClient(agent.FeedbackScript())
	}
	slog.Info("LLM provider ready", "provider", cfg.LLM.Provider)

	// Initialize services.
	interviewer := agent.NewInterviewer(questionClient)
	reviewer := agent.NewReviewer(feedbackClient)
	extractor := nlp.NewExtractor(nlp.ForLocale(cfg.Interview.Locale))
	engine := fuzzy.NewEngine()

	orc := interview.New(repo, interviewer, reviewer, extractor, engine, interview.Config{
		Mode:           interview.Mode(cfg.Interview.QuestionMode),
		MaxQuestions:   cfg.Interview.MaxQuestions,
		MinAnswerRunes: cfg.Interview.AnswerMinLen,
	})

	// Voice providers are optional. A nil provider disables the endpoint.
	var openaiAudio *audio.OpenAIAudio
	if cfg.Audio.TTSProvider == config.AudioOpenAI || cfg.Audio.STTProvider == config.AudioOpenAI {
		openaiAudio = audio.NewOpenAIAudio(audio.OpenAIAudioConfig{
			APIKey:   cfg.LLM.OpenAIKey,
			Language: cfg.Interview.Locale,
			Timeout:  cfg.LLM.Timeout,
		})
	}

	var synth audio.Synthesizer
	switch cfg.Audio.TTSProvider {
	case config.AudioElevenLabs:
		synth = audio.NewElevenLabs(audio.ElevenLabsConfig{
			APIKey:          cfg.Audio.ElevenLabsKey,
			VoiceID:         cfg.Audio.ElevenLabsVoice,
			ModelID:         cfg.Audio.ElevenLabsModel,
			Stability:       cfg.Audio.Stability,
			SimilarityBoost: cfg.Audio.SimilarityBoost,
			Timeout:         cfg.LLM.Timeout,
		})
	case config.AudioOpenAI:
		synth = openaiAudio
	case config.AudioMock:
		synth = audio.Mock{}
	}

	var stt audio.Transcriber
	switch cfg.Audio.STTProvider {
	case config.AudioOpenAI:
		stt = openaiAudio
	case config.AudioMock:
		stt = audio.Mock{}
	}
	slog.Info("Audio providers ready", "tts", cfg.Audio.TTSProvider, "stt", cfg.Audio.STTProvider)

	manager := live.NewManager()
	limiter := api.NewRateLimiter(rateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	// Initialize handlers.
	baseHandler := api.NewHandler(orc, repo, cfg)
	systemHandler := api.NewSystemHandler(repo, cfg)
	interviewHandler := api.NewInterviewHandler(baseHandler, transcripts, manager, limiter)
	audioHandler := api.NewAudioHandler(baseHandler, synth, stt)
	wsHandler := live.NewHandler(orc, manager, transcripts, cfg.FrontendURL, cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	var origins []string
	if cfg.FrontendURL != "" {
		origins = []string{cfg.FrontendURL}
	}
	r.Use(middleware.CORS(origins))

	// Routes.
	systemHandler.RegisterRoutes(r)
	interviewHandler.RegisterRoutes(r)
	audioHandler.RegisterRoutes(r)

	// WebSocket endpoint.
	r.Get("/ws/interview", wsHandler.ServeHTTP)

	// Create server.
	// Note: live interviews hold the connection across LLM calls, so no
	// WriteTimeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,                 // 0 = no timeout for WebSocket support
		IdleTimeout:  120 * time.Second, // 2 minutes for idle connections
	}

	// Start session sweeper.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interview.StartSweeper(ctx, repo, cfg.Interview.SessionTTL, manager.CloseSession)
	slog.Info("Session sweeper started", "session_ttl", cfg.Interview.SessionTTL)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
