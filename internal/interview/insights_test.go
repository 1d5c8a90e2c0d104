package interview

import (
	"testing"

	"github.com/entrevio-dev/entrevio/internal/domain"
)

func TestInterpretScoreBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  string
	}{
		{10, "Excellent"},
		{8, "Excellent"},
		{7.99, "Good"},
		{6, "Good"},
		{5.99, "Fair"},
		{4, "Fair"},
		{3.99, "Needs Improvement"},
		{0, "Needs Improvement"},
	}
	for _, tt := range tests {
		if got := InterpretScore(tt.score); got != tt.want {
			t.Errorf("InterpretScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestInsightForMixedEvaluation(t *testing.T) {
	t.Parallel()

	e := &domain.Evaluation{
		QuestionID: 2,
		Score:      domain.Score{Clarity: 8.0, Confidence: 3.5, Relevance: 7.2, Overall: 6.3},
		Features:   domain.Features{FillerWordCount: 6},
	}
	in := InsightFor(e)

	if in.QuestionID != 2 {
		t.Errorf("QuestionID = %d", in.QuestionID)
	}
	if in.OverallPerformance != "Good" {
		t.Errorf("OverallPerformance = %q, want Good", in.OverallPerformance)
	}

	wantStrengths := []string{"Clear and well-structured response", "Highly relevant and technical response"}
	if len(in.Strengths) != len(wantStrengths) {
		t.Fatalf("Strengths = %v", in.Strengths)
	}
	for i, w := range wantStrengths {
		if in.Strengths[i] != w {
			t.Errorf("Strengths[%d] = %q, want %q", i, in.Strengths[i], w)
		}
	}

	wantWeaknesses := []string{"Response lacks confidence indicators", "Excessive use of filler words"}
	if len(in.Weaknesses) != len(wantWeaknesses) {
		t.Fatalf("Weaknesses = %v", in.Weaknesses)
	}
	for i, w := range wantWeaknesses {
		if in.Weaknesses[i] != w {
			t.Errorf("Weaknesses[%d] = %q, want %q", i, in.Weaknesses[i], w)
		}
	}

	if len(in.QuickTips) != 2 {
		t.Errorf("QuickTips = %v, want a confidence tip and a filler tip", in.QuickTips)
	}
}

func TestInsightForMidRangeScoresStaysQuiet(t *testing.T) {
	t.Parallel()

	e := &domain.Evaluation{
		QuestionID: 1,
		Score:      domain.Score{Clarity: 5.5, Confidence: 5.0, Relevance: 6.0, Overall: 5.55},
	}
	in := InsightFor(e)

	if len(in.Strengths) != 0 || len(in.Weaknesses) != 0 || len(in.QuickTips) != 0 {
		t.Errorf("mid-range scores should produce no observations: %+v", in)
	}
	if in.OverallPerformance != "Fair" {
		t.Errorf("OverallPerformance = %q, want Fair", in.OverallPerformance)
	}
}

func TestInsightsFollowTurnOrder(t *testing.T) {
	t.Parallel()

	s := &domain.Session{TotalQuestions: 2}
	s.Turns = []*domain.Turn{
		{Question: domain.Question{ID: 1}, Evaluation: &domain.Evaluation{QuestionID: 1, Score: domain.Score{Overall: 9}}},
		{Question: domain.Question{ID: 2}, Evaluation: &domain.Evaluation{QuestionID: 2, Score: domain.Score{Overall: 2}}},
	}

	got := Insights(s)
	if len(got) != 2 {
		t.Fatalf("got %d insights, want 2", len(got))
	}
	if got[0].QuestionID != 1 || got[1].QuestionID != 2 {
		t.Errorf("insights out of order: %+v", got)
	}
	if got[0].OverallPerformance != "Excellent" || got[1].OverallPerformance != "Needs Improvement" {
		t.Errorf("interpretations = %q, %q", got[0].OverallPerformance, got[1].OverallPerformance)
	}
}
