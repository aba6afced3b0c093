package ai

import "context"

// Provider is a text completion backend. Implementations return the raw model
// output; parsing and fallback handling happen in the service layer.
type Provider interface {
	// Complete sends a single-turn prompt and returns the model's text output.
	Complete(ctx context.Context, system, prompt string, maxTokens int64, temperature float64) (string, error)
	// Name is the human-readable service name for health reporting.
	Name() string
	// Model is the model identifier in use.
	Model() string
	// Close releases provider resources.
	Close()
}
