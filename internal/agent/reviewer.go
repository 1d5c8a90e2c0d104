package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/entrevio-dev/entrevio/internal/domain"
)

// Feedback document section headers. The reviewer asks the model for this
// exact structure and the parser walks it back out.
const (
	summaryHeader      = "## OVERALL SUMMARY"
	strengthsHeader    = "## STRENGTHS"
	improvementsHeader = "## AREAS FOR IMPROVEMENT"
	resourcesHeader    = "## RECOMMENDED RESOURCES"
)

// fallbackSummary stands in when the model response carries no usable
// summary section.
const fallbackSummary = "Performance evaluation completed."

var feedbackCategories = []string{
	"Communication Skills",
	"Technical Knowledge",
	"Problem-Solving Approach",
}

// Reviewer produces the end-of-interview feedback document through a Client.
type Reviewer struct {
	client Client
}

// NewReviewer creates a reviewer backed by the given client.
func NewReviewer(client Client) *Reviewer {
	return &Reviewer{client: client}
}

// Feedback asks the model for a structured feedback document covering the
// whole session and parses it into a FeedbackSummary. A malformed response
// degrades section by section rather than failing: missing parts are simply
// absent and a missing summary falls back to a stock sentence.
func (rv *Reviewer) Feedback(ctx context.Context, s *domain.Session, overall float64) (domain.FeedbackSummary, error) {
	raw, err := rv.client.Complete(ctx, feedbackPrompt(s, overall))
	if err != nil {
		return domain.FeedbackSummary{}, fmt.Errorf("generating feedback: %w", err)
	}
	return parseFeedback(raw, overall), nil
}

func feedbackPrompt(s *domain.Session, overall float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an experienced interview coach. A candidate just finished a %s-level interview for a %s position and scored %.1f out of 10 overall.

Interview transcript with per-answer scores:
`, s.Seniority, s.Role, overall)
	b.WriteString(feedbackTranscript(s))
	b.WriteString(`
Write constructive feedback for the candidate using exactly this structure:

` + summaryHeader + `
Two or three sentences summarizing the overall performance.

` + strengthsHeader + `
- 3 to 5 bullet points

` + improvementsHeader + `
- 3 to 5 bullet points

## DETAILED FEEDBACK

### Communication Skills
Strength: one sentence
Weakness: one sentence
Suggestions:
- 2 or 3 bullet points

### Technical Knowledge
Strength: one sentence
Weakness: one sentence
Suggestions:
- 2 or 3 bullet points

### Problem-Solving Approach
Strength: one sentence
Weakness: one sentence
Suggestions:
- 2 or 3 bullet points

` + resourcesHeader + `
- 2 to 4 bullet points`)
	return b.String()
}

func feedbackTranscript(s *domain.Session) string {
	var b strings.Builder
	for _, turn := range s.Turns {
		fmt.Fprintf(&b, "Q%d: %s\n", turn.Question.ID, turn.Question.Text)
		if !turn.Answered() {
			b.WriteString("(not answered)\n")
			continue
		}
		fmt.Fprintf(&b, "A%d: %s\n", turn.Question.ID, turn.Answer.Text)
		if turn.Evaluated() {
			sc := turn.Evaluation.Score
			fmt.Fprintf(&b, "Scores: clarity %.1f, confidence %.1f, relevance %.1f, overall %.1f\n",
				sc.Clarity, sc.Confidence, sc.Relevance, sc.Overall)
		}
	}
	return b.String()
}

// parseFeedback walks the structured document a model was asked to produce.
// Every section is optional.
func parseFeedback(raw string, overall float64) domain.FeedbackSummary {
	summary := extractSection(raw, summaryHeader)
	if summary == "" {
		summary = fallbackSummary
	}

	var items []domain.FeedbackItem
	for _, category := range feedbackCategories {
		if item, ok := extractCategory(raw, category); ok {
			items = append(items, item)
		}
	}

	return domain.FeedbackSummary{
		OverallScore: overall,
		Summary:      summary,
		Strengths:    extractListItems(raw, strengthsHeader),
		Improvements: extractListItems(raw, improvementsHeader),
		Items:        items,
		Resources:    extractListItems(raw, resourcesHeader),
		CreatedAt:    time.Now().UTC(),
	}
}

// extractSection returns the prose under a "##" header, joined into one
// paragraph. Capture stops at the next header.
func extractSection(raw, header string) string {
	var content []string
	capturing := false
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == header {
			capturing = true
			continue
		}
		if !capturing {
			continue
		}
		if strings.HasPrefix(trimmed, "##") {
			break
		}
		if trimmed != "" {
			content = append(content, trimmed)
		}
	}
	return strings.Join(content, " ")
}

// extractListItems returns the bullet entries under a "##" header. Capture
// stops at the next header; non-bullet lines in between are ignored.
func extractListItems(raw, header string) []string {
	var items []string
	capturing := false
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == header {
			capturing = true
			continue
		}
		if !capturing {
			continue
		}
		if strings.HasPrefix(trimmed, "##") {
			break
		}
		if item, ok := bulletText(trimmed); ok {
			items = append(items, item)
		}
	}
	return items
}

// extractCategory pulls one "### <category>" block apart into its labeled
// Strength/Weakness/Suggestions parts. The bool is false when the block is
// missing or carries no content at all.
func extractCategory(raw, category string) (domain.FeedbackItem, bool) {
	idx := strings.Index(raw, "### "+category)
	if idx == -1 {
		return domain.FeedbackItem{}, false
	}

	item := domain.FeedbackItem{Category: category}
	inSuggestions := false

	lines := strings.Split(raw[idx:], "\n")
scan:
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "##"):
			break scan
		case strings.HasPrefix(trimmed, "Strength:"):
			item.Strength = strings.TrimSpace(strings.TrimPrefix(trimmed, "Strength:"))
			inSuggestions = false
		case strings.HasPrefix(trimmed, "Weakness:"):
			item.Weakness = strings.TrimSpace(strings.TrimPrefix(trimmed, "Weakness:"))
			inSuggestions = false
		case strings.HasPrefix(trimmed, "Suggestions:"):
			inSuggestions = true
		case inSuggestions:
			if s, ok := bulletText(trimmed); ok {
				item.Suggestions = append(item.Suggestions, s)
			} else if trimmed != "" {
				break scan
			}
		}
	}

	if item.Strength == "" && item.Weakness == "" && len(item.Suggestions) == 0 {
		return domain.FeedbackItem{}, false
	}
	return item, true
}

func bulletText(line string) (string, bool) {
	for _, marker := range []string{"- ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	return "", false
}
