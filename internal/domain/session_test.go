package domain

import (
	"errors"
	"testing"
	"time"
)

func newTestSession(total int) *Session {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return &Session{
		ID:             "s-test",
		Role:           "Backend Engineer",
		Seniority:      SeniorityMid,
		TotalQuestions: total,
		Status:         StatusInProgress,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCategoryLadder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		id   int
		want Category
	}{
		{1, CategoryOpening},
		{2, CategoryFoundational},
		{3, CategoryFoundational},
		{4, CategoryIntermediate},
		{6, CategoryIntermediate},
		{7, CategoryAdvanced},
		{9, CategoryAdvanced},
		{10, CategoryClosing},
	}
	for _, c := range cases {
		if got := CategoryFor(c.id, 10); got != c.want {
			t.Errorf("CategoryFor(%d, 10) = %q, want %q", c.id, got, c.want)
		}
	}
}

func TestCategoryFirstQuestionAlwaysOpening(t *testing.T) {
	t.Parallel()

	for _, total := range []int{1, 2, 5, 10, 25} {
		if got := CategoryFor(1, total); got != CategoryOpening {
			t.Errorf("CategoryFor(1, %d) = %q, want opening", total, got)
		}
	}
}

func TestAddQuestionAssignsDenseIDs(t *testing.T) {
	t.Parallel()

	s := newTestSession(3)
	now := s.CreatedAt
	for i := 1; i <= 3; i++ {
		q, err := s.AddQuestion("question", now)
		if err != nil {
			t.Fatalf("AddQuestion %d: %v", i, err)
		}
		if q.ID != i {
			t.Errorf("question id = %d, want %d", q.ID, i)
		}
	}
	if _, err := s.AddQuestion("overflow", now); !errors.Is(err, ErrQuestionLimit) {
		t.Errorf("expected ErrQuestionLimit past total, got %v", err)
	}
}

func TestRecordAnswerAdvancesPointer(t *testing.T) {
	t.Parallel()

	s := newTestSession(3)
	now := s.CreatedAt
	for i := 0; i < 3; i++ {
		if _, err := s.AddQuestion("q", now); err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
	}
	if s.CurrentQuestionID != 1 {
		t.Fatalf("pointer = %d before any answer, want 1", s.CurrentQuestionID)
	}

	turn, err := s.RecordAnswer("first answer", now)
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if turn.Question.ID != 1 {
		t.Errorf("answered turn id = %d, want 1", turn.Question.ID)
	}
	if s.CurrentQuestionID != 2 {
		t.Errorf("pointer = %d after first answer, want 2", s.CurrentQuestionID)
	}
	if s.AnswerCount() != 1 {
		t.Errorf("AnswerCount = %d, want 1", s.AnswerCount())
	}

	if _, err := s.RecordAnswer("second", now); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if _, err := s.RecordAnswer("third", now); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if s.CurrentQuestionID != s.TotalQuestions {
		t.Errorf("pointer = %d with all answered, want total %d", s.CurrentQuestionID, s.TotalQuestions)
	}
	if !s.AllQuestionsAnswered() {
		t.Error("AllQuestionsAnswered = false, want true")
	}

	if _, err := s.RecordAnswer("extra", now); !errors.Is(err, ErrNoOpenQuestion) {
		t.Errorf("expected ErrNoOpenQuestion, got %v", err)
	}
}

func TestRecordAnswerRejectedWhenCompleted(t *testing.T) {
	t.Parallel()

	s := newTestSession(2)
	now := s.CreatedAt
	if _, err := s.AddQuestion("q", now); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	s.Complete(now)

	if _, err := s.RecordAnswer("late", now); !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("expected ErrSessionCompleted, got %v", err)
	}
	if s.AnswerCount() != 0 {
		t.Errorf("AnswerCount = %d after rejected answer, want 0", s.AnswerCount())
	}
}

func TestAnswerCountNeverExceedsQuestionCount(t *testing.T) {
	t.Parallel()

	s := newTestSession(5)
	now := s.CreatedAt
	for i := 0; i < 3; i++ {
		if _, err := s.AddQuestion("q", now); err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
		if _, err := s.RecordAnswer("a", now); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
		if s.AnswerCount() > s.QuestionCount() {
			t.Fatalf("answers %d exceed questions %d", s.AnswerCount(), s.QuestionCount())
		}
	}
}

func TestMeanOverall(t *testing.T) {
	t.Parallel()

	s := newTestSession(3)
	if got := s.MeanOverall(); got != 0.0 {
		t.Errorf("MeanOverall with no evaluations = %v, want 0.0", got)
	}

	now := s.CreatedAt
	for _, overall := range []float64{7.5, 6.0, 8.2} {
		if _, err := s.AddQuestion("q", now); err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
		turn, err := s.RecordAnswer("a", now)
		if err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
		turn.Evaluation = &Evaluation{
			QuestionID: turn.Question.ID,
			Score:      Score{Overall: overall},
			CreatedAt:  now,
		}
	}
	// (7.5 + 6.0 + 8.2) / 3 = 7.2333... -> 7.23
	if got := s.MeanOverall(); got != 7.23 {
		t.Errorf("MeanOverall = %v, want 7.23", got)
	}
}

func TestDurationMinutes(t *testing.T) {
	t.Parallel()

	s := newTestSession(1)
	start := s.CreatedAt
	if _, err := s.AddQuestion("q", start); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	if got := s.DurationMinutes(); got != 0.0 {
		t.Errorf("DurationMinutes without evaluations = %v, want 0.0", got)
	}
	turn, err := s.RecordAnswer("a", start.Add(time.Minute))
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	turn.Evaluation = &Evaluation{CreatedAt: start.Add(90 * time.Second)}
	if got := s.DurationMinutes(); got != 1.5 {
		t.Errorf("DurationMinutes = %v, want 1.5", got)
	}
}

func TestCloneIsolation(t *testing.T) {
	t.Parallel()

	s := newTestSession(2)
	now := s.CreatedAt
	if _, err := s.AddQuestion("original", now); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	if _, err := s.RecordAnswer("original answer", now); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	s.FocusAreas = []string{"apis"}

	cp := s.Clone()
	cp.Turns[0].Answer.Text = "mutated"
	cp.FocusAreas[0] = "mutated"
	if _, err := cp.AddQuestion("clone-only", now); err != nil {
		t.Fatalf("AddQuestion on clone: %v", err)
	}

	if s.Turns[0].Answer.Text != "original answer" {
		t.Error("clone mutation leaked into source answer")
	}
	if s.FocusAreas[0] != "apis" {
		t.Error("clone mutation leaked into focus areas")
	}
	if s.QuestionCount() != 1 {
		t.Errorf("source question count = %d after clone append, want 1", s.QuestionCount())
	}
}

func TestSeniorityValid(t *testing.T) {
	t.Parallel()

	for _, lvl := range []Seniority{SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead} {
		if !lvl.Valid() {
			t.Errorf("%q reported invalid", lvl)
		}
	}
	if Seniority("principal").Valid() {
		t.Error("unknown seniority reported valid")
	}
}
