package agent

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/entrevio-dev/entrevio/internal/domain"
)

// answerSnippetLimit caps how much of each prior answer is replayed into the
// follow-up prompt.
const answerSnippetLimit = 200

// Interviewer turns session state into interview questions through a Client.
type Interviewer struct {
	client Client
}

// NewInterviewer creates an interviewer backed by the given client.
func NewInterviewer(client Client) *Interviewer {
	return &Interviewer{client: client}
}

// NextQuestion generates the next question for the session. The first call on
// a fresh session produces an opening question; later calls feed the
// conversation so far back to the model and steer difficulty by how deep into
// the interview the session is.
func (iv *Interviewer) NextQuestion(ctx context.Context, s *domain.Session) (string, error) {
	nextID := s.QuestionCount() + 1
	category := domain.CategoryFor(nextID, s.TotalQuestions)

	var prompt string
	if s.QuestionCount() == 0 {
		prompt = initialQuestionPrompt(s)
	} else {
		prompt = followUpQuestionPrompt(s, nextID, category)
	}

	raw, err := iv.client.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating question %d: %w", nextID, err)
	}
	question := cleanQuestionText(raw)
	if question == "" {
		return "", fmt.Errorf("generating question %d: empty response from %s", nextID, iv.client.Name())
	}
	return question, nil
}

// AllQuestions generates the session's entire question list in one call. The
// result always has exactly s.TotalQuestions entries: short responses are
// padded with a generic prompt for the role and long ones are truncated.
func (iv *Interviewer) AllQuestions(ctx context.Context, s *domain.Session) ([]string, error) {
	raw, err := iv.client.Complete(ctx, allQuestionsPrompt(s))
	if err != nil {
		return nil, fmt.Errorf("generating question list: %w", err)
	}

	questions := parseQuestionList(raw)
	if len(questions) != s.TotalQuestions {
		slog.Warn("question list length mismatch",
			"want", s.TotalQuestions,
			"got", len(questions),
			"provider", iv.client.Name())
	}
	for len(questions) < s.TotalQuestions {
		questions = append(questions, fmt.Sprintf("Tell me more about your experience as a %s.", s.Role))
	}
	return questions[:s.TotalQuestions], nil
}

func initialQuestionPrompt(s *domain.Session) string {
	return fmt.Sprintf(`You are a technical interviewer conducting a %s-level interview for a %s position.
Focus areas: %s.

Ask one opening question that invites the candidate to introduce their background and relevant experience.
Return only the question text.`, s.Seniority, s.Role, focusAreas(s))
}

func followUpQuestionPrompt(s *domain.Session, nextID int, category domain.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a technical interviewer conducting a %s-level interview for a %s position.
Focus areas: %s.

Conversation so far:
`, s.Seniority, s.Role, focusAreas(s))
	b.WriteString(historySnippet(s))
	fmt.Fprintf(&b, "\nThis is question %d of %d and it should be %s.\n", nextID, s.TotalQuestions, categoryGuidance(category))
	b.WriteString("Do not repeat earlier questions. Return only the question text.")
	return b.String()
}

func allQuestionsPrompt(s *domain.Session) string {
	return fmt.Sprintf(`You are a technical interviewer preparing a %s-level interview for a %s position.
Focus areas: %s.

Write exactly %d interview questions as a numbered list, one question per line.
Open with a question about the candidate's background, move from foundational topics through intermediate and advanced ones, and close with a question about goals or reflection.
Return only the numbered list.`, s.Seniority, s.Role, focusAreas(s), s.TotalQuestions)
}

func categoryGuidance(c domain.Category) string {
	switch c {
	case domain.CategoryOpening:
		return "a warm-up question about the candidate's background"
	case domain.CategoryFoundational:
		return "a foundational question covering core concepts for the role"
	case domain.CategoryIntermediate:
		return "an intermediate question probing hands-on experience"
	case domain.CategoryAdvanced:
		return "an advanced question exploring depth, trade-offs and design judgment"
	default:
		return "a closing question about growth, goals or reflection"
	}
}

func focusAreas(s *domain.Session) string {
	if len(s.FocusAreas) == 0 {
		return "general software engineering"
	}
	return strings.Join(s.FocusAreas, ", ")
}

// historySnippet renders the answered turns as a Q/A transcript, truncating
// long answers so the prompt stays bounded.
func historySnippet(s *domain.Session) string {
	var b strings.Builder
	for _, turn := range s.Turns {
		if !turn.Answered() {
			continue
		}
		answer := turn.Answer.Text
		if runes := []rune(answer); len(runes) > answerSnippetLimit {
			answer = string(runes[:answerSnippetLimit]) + "..."
		}
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", turn.Question.ID, turn.Question.Text, turn.Question.ID, answer)
	}
	return b.String()
}

var numberedLinePattern = regexp.MustCompile(`^\s*(\d+)[.)]\s*(.+)$`)

// parseQuestionList extracts questions from a model response. Numbered lines
// win; when the model ignored the numbering instruction, every non-empty
// non-heading line counts as a question.
func parseQuestionList(raw string) []string {
	var numbered, plain []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if m := numberedLinePattern.FindStringSubmatch(trimmed); m != nil {
			if q := cleanQuestionText(m[2]); q != "" {
				numbered = append(numbered, q)
			}
			continue
		}
		if q := cleanQuestionText(trimmed); q != "" {
			plain = append(plain, q)
		}
	}
	if len(numbered) > 0 {
		return numbered
	}
	return plain
}

// cleanQuestionText strips the numbering, labels and quoting models tend to
// wrap around a question.
func cleanQuestionText(raw string) string {
	q := strings.TrimSpace(raw)
	if m := numberedLinePattern.FindStringSubmatch(q); m != nil {
		q = strings.TrimSpace(m[2])
	}
	for _, prefix := range []string{"Question:", "question:", "Q:"} {
		if strings.HasPrefix(q, prefix) {
			q = strings.TrimSpace(strings.TrimPrefix(q, prefix))
		}
	}
	q = strings.Trim(q, `"'`)
	return strings.TrimSpace(q)
}
