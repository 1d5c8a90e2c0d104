package interview

import "github.com/entrevio-dev/entrevio/internal/domain"

// Insight is a plain-language reading of one evaluation: an interpreted
// performance level plus per-dimension observations and quick tips.
type Insight struct {
	QuestionID         int      `json:"question_id"`
	OverallPerformance string   `json:"overall_performance"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	QuickTips          []string `json:"quick_tips"`
}

// InsightFor derives the insight for a single evaluation. Dimensions at 7 or
// above read as strengths; at 4 or below they read as weaknesses with a tip.
// Heavy filler use earns its own tip regardless of scores.
func InsightFor(e *domain.Evaluation) Insight {
	in := Insight{
		QuestionID:         e.QuestionID,
		OverallPerformance: InterpretScore(e.Score.Overall),
		Strengths:          []string{},
		Weaknesses:         []string{},
		QuickTips:          []string{},
	}

	if e.Score.Clarity >= 7 {
		in.Strengths = append(in.Strengths, "Clear and well-structured response")
	} else if e.Score.Clarity <= 4 {
		in.Weaknesses = append(in.Weaknesses, "Response lacks clarity and structure")
		in.QuickTips = append(in.QuickTips, "Organize your thoughts before answering")
	}

	if e.Score.Confidence >= 7 {
		in.Strengths = append(in.Strengths, "Confident delivery")
	} else if e.Score.Confidence <= 4 {
		in.Weaknesses = append(in.Weaknesses, "Response lacks confidence indicators")
		in.QuickTips = append(in.QuickTips, "Use more assertive language and provide concrete examples")
	}

	if e.Score.Relevance >= 7 {
		in.Strengths = append(in.Strengths, "Highly relevant and technical response")
	} else if e.Score.Relevance <= 4 {
		in.Weaknesses = append(in.Weaknesses, "Response could be more technical and relevant")
		in.QuickTips = append(in.QuickTips, "Include more technical details and domain-specific terminology")
	}

	if e.Features.FillerWordCount > 5 {
		in.Weaknesses = append(in.Weaknesses, "Excessive use of filler words")
		in.QuickTips = append(in.QuickTips, "Practice reducing filler words (um, uh, like)")
	}

	return in
}

// Insights derives insights for every evaluated turn, in turn order.
func Insights(s *domain.Session) []Insight {
	evals := s.Evaluations()
	out := make([]Insight, 0, len(evals))
	for _, e := range evals {
		out = append(out, InsightFor(e))
	}
	return out
}

// InterpretScore maps a 0-10 score to a performance level.
func InterpretScore(score float64) string {
	switch {
	case score >= 8:
		return "Excellent"
	case score >= 6:
		return "Good"
	case score >= 4:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}
