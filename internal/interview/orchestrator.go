// Package interview coordinates the interview lifecycle: question flow,
// answer scoring, and end-of-interview feedback.
package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/entrevio-dev/entrevio/internal/domain"
	"github.com/entrevio-dev/entrevio/internal/fuzzy"
	"github.com/entrevio-dev/entrevio/internal/nlp"
	"github.com/entrevio-dev/entrevio/internal/store"
)

// QuestionSource produces interview questions for a session.
type QuestionSource interface {
	// NextQuestion generates one question following the session so far.
	NextQuestion(ctx context.Context, s *domain.Session) (string, error)
	// AllQuestions generates the session's full question list up front,
	// exactly TotalQuestions entries.
	AllQuestions(ctx context.Context, s *domain.Session) ([]string, error)
}

// FeedbackSource produces the end-of-interview feedback document.
type FeedbackSource interface {
	Feedback(ctx context.Context, s *domain.Session, overall float64) (domain.FeedbackSummary, error)
}

// Mode selects how a session's questions are generated.
type Mode string

const (
	// ModeIncremental asks for the next question after each answer.
	ModeIncremental Mode = "incremental"
	// ModeBulk generates the whole question list when the session starts.
	ModeBulk Mode = "bulk"
)

var (
	// ErrInvalid marks a request rejected by input validation.
	ErrInvalid = errors.New("invalid request")
	// ErrUnknownSession marks an operation against a session id the store
	// does not hold.
	ErrUnknownSession = errors.New("unknown session")
	// ErrUpstream marks a failure in an LLM collaborator.
	ErrUpstream = errors.New("upstream provider failure")
)

const defaultQuestions = 10

// Config tunes the orchestrator.
type Config struct {
	Mode           Mode
	MaxQuestions   int // ceiling for per-session question counts
	MinAnswerRunes int // shortest acceptable answer
}

// StartParams describe a new interview.
type StartParams struct {
	Role           string
	Seniority      domain.Seniority
	FocusAreas     []string
	TotalQuestions int // 0 means the default
}

// Orchestrator drives sessions through start, answers, evaluation, and
// feedback. It holds no locks of its own: callers serialize operations per
// session id.
type Orchestrator struct {
	repo      store.Repository
	questions QuestionSource
	reviewer  FeedbackSource
	extractor *nlp.Extractor
	engine    *fuzzy.Engine
	cfg       Config
}

// New creates an orchestrator.
func New(repo store.Repository, questions QuestionSource, reviewer FeedbackSource, extractor *nlp.Extractor, engine *fuzzy.Engine, cfg Config) *Orchestrator {
	if cfg.Mode == "" {
		cfg.Mode = ModeIncremental
	}
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = defaultQuestions
	}
	if cfg.MinAnswerRunes <= 0 {
		cfg.MinAnswerRunes = 10
	}
	return &Orchestrator{
		repo:      repo,
		questions: questions,
		reviewer:  reviewer,
		extractor: extractor,
		engine:    engine,
		cfg:       cfg,
	}
}

// Start creates a session and generates its opening question, or in bulk mode
// the entire question list, then persists it.
func (o *Orchestrator) Start(ctx context.Context, p StartParams) (*domain.Session, error) {
	role := strings.TrimSpace(p.Role)
	if role == "" {
		return nil, fmt.Errorf("%w: role is required", ErrInvalid)
	}
	if !p.Seniority.Valid() {
		return nil, fmt.Errorf("%w: unknown seniority %q", ErrInvalid, p.Seniority)
	}
	total := p.TotalQuestions
	if total == 0 {
		total = defaultQuestions
		if total > o.cfg.MaxQuestions {
			total = o.cfg.MaxQuestions
		}
	}
	if total < 1 || total > o.cfg.MaxQuestions {
		return nil, fmt.Errorf("%w: question count must be between 1 and %d", ErrInvalid, o.cfg.MaxQuestions)
	}

	now := time.Now().UTC()
	s := &domain.Session{
		ID:             uuid.NewString(),
		Role:           role,
		Seniority:      p.Seniority,
		FocusAreas:     p.FocusAreas,
		TotalQuestions: total,
		Status:         domain.StatusInProgress,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if o.cfg.Mode == ModeBulk {
		texts, err := o.questions.AllQuestions(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		for _, text := range texts {
			if _, err := s.AddQuestion(text, now); err != nil {
				return nil, err
			}
		}
	} else {
		text, err := o.questions.NextQuestion(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		if _, err := s.AddQuestion(text, now); err != nil {
			return nil, err
		}
	}

	if err := o.repo.CreateSession(ctx, s); err != nil {
		return nil, err
	}
	slog.Info("interview started",
		"session_id", s.ID,
		"role", s.Role,
		"seniority", s.Seniority,
		"total_questions", s.TotalQuestions,
		"mode", o.cfg.Mode)
	return s, nil
}

// Get returns a session snapshot.
func (o *Orchestrator) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return o.load(ctx, sessionID)
}

// History lists every stored session, newest first.
func (o *Orchestrator) History(ctx context.Context) ([]*domain.Session, error) {
	return o.repo.ListSessions(ctx)
}

// Delete removes a session. Deleting an unknown session is a no-op.
func (o *Orchestrator) Delete(ctx context.Context, sessionID string) error {
	return o.repo.DeleteSession(ctx, sessionID)
}

// Answer records an answer to the session's open question. In incremental
// mode the follow-up question is generated and appended; once the final
// answer arrives, every answered turn is scored in one pass. The updated
// session is persisted and returned.
func (o *Orchestrator) Answer(ctx context.Context, sessionID, text string) (*domain.Session, error) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < o.cfg.MinAnswerRunes {
		return nil, fmt.Errorf("%w: answer must be at least %d characters", ErrInvalid, o.cfg.MinAnswerRunes)
	}

	s, err := o.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	turn, err := s.RecordAnswer(text, now)
	if err != nil {
		return nil, err
	}

	switch {
	case s.AllQuestionsAnswered():
		o.evaluateAnswers(s)
		slog.Info("interview answers evaluated",
			"session_id", s.ID,
			"evaluations", s.EvaluationCount(),
			"mean_overall", s.MeanOverall())
	case o.cfg.Mode != ModeBulk && s.QuestionCount() < s.TotalQuestions:
		next, err := o.questions.NextQuestion(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		if _, err := s.AddQuestion(next, time.Now().UTC()); err != nil {
			return nil, err
		}
	}

	if err := o.repo.UpdateSession(ctx, s); err != nil {
		return nil, err
	}
	slog.Debug("answer recorded",
		"session_id", s.ID,
		"question_id", turn.Question.ID,
		"answered", s.AnswerCount(),
		"total", s.TotalQuestions)
	return s, nil
}

// Finalize evaluates any unscored answers, obtains the feedback summary, and
// completes the session. A completed session with feedback is returned as is;
// a session with no answers cannot be finalized.
func (o *Orchestrator) Finalize(ctx context.Context, sessionID string) (*domain.Session, error) {
	s, err := o.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Status == domain.StatusCompleted && s.Feedback != nil {
		return s, nil
	}
	if s.AnswerCount() == 0 {
		return nil, domain.ErrNoAnswers
	}

	o.evaluateAnswers(s)
	overall := s.MeanOverall()

	fb, err := o.reviewer.Feedback(ctx, s, overall)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	s.Feedback = &fb
	s.Complete(time.Now().UTC())

	if err := o.repo.UpdateSession(ctx, s); err != nil {
		return nil, err
	}
	slog.Info("interview finalized",
		"session_id", s.ID,
		"overall", overall,
		"answered", s.AnswerCount(),
		"duration_minutes", s.DurationMinutes())
	return s, nil
}

// evaluateAnswers scores every answered turn that has no evaluation yet.
// Turns already scored keep their evaluation, so repeat calls are free.
func (o *Orchestrator) evaluateAnswers(s *domain.Session) {
	for _, t := range s.Turns {
		if !t.Answered() || t.Evaluated() {
			continue
		}
		f := o.extractor.Extract(t.Answer.Text)
		t.Evaluation = &domain.Evaluation{
			QuestionID: t.Question.ID,
			AnswerText: t.Answer.Text,
			Score:      o.engine.Score(f, t.Answer.Text),
			Features:   f,
			Gloss:      nlp.Summarize(f),
			CreatedAt:  time.Now().UTC(),
		}
	}
}

func (o *Orchestrator) load(ctx context.Context, id string) (*domain.Session, error) {
	s, err := o.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrUnknownSession
	}
	return s, nil
}
