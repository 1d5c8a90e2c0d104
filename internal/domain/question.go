package domain

import "time"

// Category labels a question's position-derived difficulty band.
type Category string

const (
	CategoryOpening      Category = "opening"
	CategoryFoundational Category = "foundational"
	CategoryIntermediate Category = "intermediate"
	CategoryAdvanced     Category = "advanced"
	CategoryClosing      Category = "closing"
)

// Question is one interview question, timestamped when asked.
type Question struct {
	ID       int       `json:"question_id"`
	Text     string    `json:"question_text"`
	Category Category  `json:"category"`
	AskedAt  time.Time `json:"timestamp"`
}

// CategoryFor derives a question's category from its position in the
// interview. The first question is always the opening; the rest climb the
// ladder by position ratio, with the final tenth reserved for closing.
func CategoryFor(id, total int) Category {
	if id <= 1 {
		return CategoryOpening
	}
	if total < 1 {
		total = 1
	}
	ratio := float64(id) / float64(total)
	switch {
	case ratio <= 0.3:
		return CategoryFoundational
	case ratio <= 0.6:
		return CategoryIntermediate
	case ratio <= 0.9:
		return CategoryAdvanced
	default:
		return CategoryClosing
	}
}
