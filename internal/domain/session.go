// Package domain contains core domain types for the entrevio application.
package domain

import (
	"errors"
	"math"
	"time"
)

// Status is the lifecycle state of an interview session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Seniority is the experience level an interview targets.
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
	SeniorityLead   Seniority = "lead"
)

// Valid reports whether s is a known seniority level.
func (s Seniority) Valid() bool {
	switch s {
	case SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead:
		return true
	}
	return false
}

var (
	ErrSessionCompleted = errors.New("session already completed")
	ErrNoOpenQuestion   = errors.New("no question awaiting an answer")
	ErrNoAnswers        = errors.New("session has no answers")
	ErrQuestionLimit    = errors.New("question limit reached")
)

// Answer is a recorded response to one question.
type Answer struct {
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Turn is one slot of the interview: the question, plus the answer and
// evaluation once they exist. Turns are ordered by question id.
type Turn struct {
	Question   Question    `json:"question"`
	Answer     *Answer     `json:"answer,omitempty"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

// Answered reports whether the turn has received an answer.
func (t *Turn) Answered() bool {
	return t.Answer != nil
}

// Evaluated reports whether the turn's answer has been scored.
func (t *Turn) Evaluated() bool {
	return t.Evaluation != nil
}

// Session is a single interview: an ordered arena of turns plus progress
// bookkeeping. Methods mutate in place; callers serialize access per
// session id.
type Session struct {
	ID                string           `json:"session_id"`
	Role              string           `json:"role"`
	Seniority         Seniority        `json:"seniority"`
	FocusAreas        []string         `json:"focus_areas,omitempty"`
	TotalQuestions    int              `json:"total_questions"`
	CurrentQuestionID int              `json:"current_question_id"`
	Turns             []*Turn          `json:"turns"`
	Feedback          *FeedbackSummary `json:"feedback,omitempty"`
	Status            Status           `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// QuestionCount returns the number of questions asked so far.
func (s *Session) QuestionCount() int {
	return len(s.Turns)
}

// AnswerCount returns the number of answered turns.
func (s *Session) AnswerCount() int {
	n := 0
	for _, t := range s.Turns {
		if t.Answered() {
			n++
		}
	}
	return n
}

// EvaluationCount returns the number of evaluated turns.
func (s *Session) EvaluationCount() int {
	n := 0
	for _, t := range s.Turns {
		if t.Evaluated() {
			n++
		}
	}
	return n
}

// OpenTurn returns the first turn still awaiting an answer, or nil.
func (s *Session) OpenTurn() *Turn {
	for _, t := range s.Turns {
		if !t.Answered() {
			return t
		}
	}
	return nil
}

// CurrentQuestion returns the question awaiting an answer, or nil when
// every asked question has been answered.
func (s *Session) CurrentQuestion() *Question {
	if t := s.OpenTurn(); t != nil {
		return &t.Question
	}
	return nil
}

// AddQuestion appends a new turn for the given question text. Question ids
// are dense (1..TotalQuestions) and the category is derived from position.
func (s *Session) AddQuestion(text string, now time.Time) (*Question, error) {
	if s.Status == StatusCompleted {
		return nil, ErrSessionCompleted
	}
	if len(s.Turns) >= s.TotalQuestions {
		return nil, ErrQuestionLimit
	}
	id := len(s.Turns) + 1
	q := Question{
		ID:       id,
		Text:     text,
		Category: CategoryFor(id, s.TotalQuestions),
		AskedAt:  now,
	}
	s.Turns = append(s.Turns, &Turn{Question: q})
	if s.OpenTurn() != nil {
		s.CurrentQuestionID = s.OpenTurn().Question.ID
	}
	s.UpdatedAt = now
	return &q, nil
}

// RecordAnswer attaches text to the oldest unanswered turn and advances the
// current-question pointer: to the next unanswered question's id, or to
// TotalQuestions once every asked question has an answer.
func (s *Session) RecordAnswer(text string, now time.Time) (*Turn, error) {
	if s.Status == StatusCompleted {
		return nil, ErrSessionCompleted
	}
	t := s.OpenTurn()
	if t == nil {
		return nil, ErrNoOpenQuestion
	}
	t.Answer = &Answer{Text: text, SubmittedAt: now}
	if next := s.OpenTurn(); next != nil {
		s.CurrentQuestionID = next.Question.ID
	} else {
		s.CurrentQuestionID = s.TotalQuestions
	}
	s.UpdatedAt = now
	return t, nil
}

// AllQuestionsAnswered reports whether the session has received answers for
// the full planned question set.
func (s *Session) AllQuestionsAnswered() bool {
	return len(s.Turns) == s.TotalQuestions && s.OpenTurn() == nil
}

// Evaluations returns the evaluations recorded so far, in turn order.
func (s *Session) Evaluations() []*Evaluation {
	out := make([]*Evaluation, 0, len(s.Turns))
	for _, t := range s.Turns {
		if t.Evaluation != nil {
			out = append(out, t.Evaluation)
		}
	}
	return out
}

// MeanOverall returns the mean overall score across evaluated turns,
// rounded to two decimals. Sessions with no evaluations score 0.0.
func (s *Session) MeanOverall() float64 {
	evals := s.Evaluations()
	if len(evals) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, e := range evals {
		sum += e.Score.Overall
	}
	return round2(sum / float64(len(evals)))
}

// DurationMinutes returns the elapsed interview time from the first question
// to the latest evaluation, in minutes rounded to two decimals.
func (s *Session) DurationMinutes() float64 {
	evals := s.Evaluations()
	if len(s.Turns) == 0 || len(evals) == 0 {
		return 0.0
	}
	d := evals[len(evals)-1].CreatedAt.Sub(s.Turns[0].Question.AskedAt)
	if d < 0 {
		return 0.0
	}
	return round2(d.Minutes())
}

// Complete marks the session finished. Completing a completed session is a
// no-op.
func (s *Session) Complete(now time.Time) {
	if s.Status == StatusCompleted {
		return
	}
	s.Status = StatusCompleted
	s.UpdatedAt = now
}

// Clone returns a deep copy of the session. The store hands out clones so
// handler mutations never race with other readers.
func (s *Session) Clone() *Session {
	cp := *s
	cp.FocusAreas = append([]string(nil), s.FocusAreas...)
	cp.Turns = make([]*Turn, len(s.Turns))
	for i, t := range s.Turns {
		tc := *t
		if t.Answer != nil {
			a := *t.Answer
			tc.Answer = &a
		}
		if t.Evaluation != nil {
			e := t.Evaluation.clone()
			tc.Evaluation = e
		}
		cp.Turns[i] = &tc
	}
	if s.Feedback != nil {
		cp.Feedback = s.Feedback.clone()
	}
	return &cp
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
