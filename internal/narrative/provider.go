package narrative

import (
	"context"
	"strings"
)

// Provider generates the next scene from a system prompt and a context
// prompt. Implementations talk to a concrete AI backend; callers never know
// which.
type Provider interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// stripFences removes a markdown code fence the model sometimes wraps its
// output in.
func stripFences(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
