// Package agent implements the LLM collaborators behind question generation
// and end-of-interview feedback.
package agent

import "context"

// Client is the completion capability every LLM provider implements. A
// provider is selected once at startup; everything else in the system sees
// only this interface.
type Client interface {
	// Complete sends one prompt and returns the model's text response.
	Complete(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider in logs and the public config endpoint.
	Name() string
}
