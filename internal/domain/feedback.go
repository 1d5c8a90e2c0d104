package domain

import "time"

// FeedbackItem is the per-category detail block of the final feedback.
type FeedbackItem struct {
	Category    string   `json:"category"`
	Strength    string   `json:"strength"`
	Weakness    string   `json:"weakness"`
	Suggestions []string `json:"suggestions"`
}

// FeedbackSummary is the structured end-of-interview feedback document.
type FeedbackSummary struct {
	OverallScore float64        `json:"overall_score"`
	Summary      string         `json:"summary"`
	Strengths    []string       `json:"strengths"`
	Improvements []string       `json:"improvements"`
	Items        []FeedbackItem `json:"detailed_feedback"`
	Resources    []string       `json:"recommended_resources"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (f *FeedbackSummary) clone() *FeedbackSummary {
	cp := *f
	cp.Strengths = append([]string(nil), f.Strengths...)
	cp.Improvements = append([]string(nil), f.Improvements...)
	cp.Resources = append([]string(nil), f.Resources...)
	cp.Items = make([]FeedbackItem, len(f.Items))
	for i, it := range f.Items {
		it.Suggestions = append([]string(nil), it.Suggestions...)
		cp.Items[i] = it
	}
	return &cp
}
