// Package extract turns free-form transaction text into structured data by
// prompting an external language-model oracle and post-processing its JSON
// reply with deterministic fallbacks.
package extract

import "context"

// Oracle defines the interface for the natural-language extraction service.
type Oracle interface {
	// Generate runs a one-shot prompt and returns the raw model reply.
	Generate(ctx context.Context, prompt string) (string, error)
}
