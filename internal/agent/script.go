package agent

import (
	"context"
	"sync"
)

// ScriptClient replays a fixed list of completions in order, wrapping around
// when it reaches the end. It keeps the interviewer and reviewer paths fully
// exercisable without network access or API keys.
type ScriptClient struct {
	mu        sync.Mutex
	responses []string
	next      int
}

var _ Client = (*ScriptClient)(nil)

// NewScriptClient creates a client that cycles through the given responses.
// With no responses it returns an empty string from every call.
func NewScriptClient(responses ...string) *ScriptClient {
	return &ScriptClient{responses: responses}
}

// Name implements Client.
func (c *ScriptClient) Name() string { return "script" }

// Complete returns the next scripted response.
func (c *ScriptClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.responses) == 0 {
		return "", nil
	}
	resp := c.responses[c.next]
	c.next = (c.next + 1) % len(c.responses)
	return resp, nil
}

// QuestionScript returns the stock interview questions used when the
// interviewer runs in script mode.
func QuestionScript() []string {
	return []string{
		"Tell me about your experience with the main technologies you have worked with.",
		"Describe a challenging project you worked on recently. What made it difficult?",
		"How do you approach debugging a problem you have never seen before?",
		"What has been your experience designing or working with databases?",
		"Tell me about a time you disagreed with a teammate about a technical decision.",
		"How do you make sure the code you ship is well tested?",
		"How do you keep your technical skills up to date?",
		"Walk me through an architecture decision you made and the trade-offs involved.",
		"What do you look for when reviewing someone else's code?",
		"Where do you want to take your career over the next few years?",
	}
}

// FeedbackScript returns the stock feedback document used when the reviewer
// runs in script mode. It follows the same structure a live model is asked
// to produce, so the full parsing path runs in script mode too.
func FeedbackScript() string {
	return `## OVERALL SUMMARY
The candidate showed a solid grasp of core concepts and communicated ideas in a clear, structured way. Answers were generally relevant, though some lacked concrete examples from real projects.

## STRENGTHS
- Clear and well organized explanations
- Good command of fundamental technical concepts
- Stayed calm and engaged throughout the interview

## AREAS FOR IMPROVEMENT
- Support claims with specific project examples
- Reduce filler words when thinking through a problem
- Go deeper on trade-offs when discussing design choices

## DETAILED FEEDBACK

### Communication Skills
Strength: Ideas were presented in a logical order that was easy to follow.
Weakness: Some answers drifted before arriving at the main point.
Suggestions:
- Lead with a one sentence summary before expanding on details
- Pause briefly instead of using filler words

### Technical Knowledge
Strength: Comfortable with the core tools and concepts the role requires.
Weakness: Limited depth on scaling and performance topics.
Suggestions:
- Study common scaling patterns and when to apply them
- Practice explaining past technical decisions and their results

### Problem-Solving Approach
Strength: Breaks problems into smaller steps before proposing a solution.
Weakness: Rarely mentioned how to validate that a solution works.
Suggestions:
- Describe how you would test and measure a proposed solution
- Consider at least one alternative approach before committing

## RECOMMENDED RESOURCES
- "Designing Data-Intensive Applications" by Martin Kleppmann
- Practice mock interviews with a peer once a week
- Record yourself answering questions and review for filler words`
}
