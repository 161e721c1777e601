package service

import (
	"context"
	"errors"
	"strings"
)

// ErrLLMUnavailable is returned when no model client is configured. Graders
// treat it like any other call failure and fall back.
var ErrLLMUnavailable = errors.New("llm client not initialized")

// LLMService is the pluggable text-quality scorer behind the AI graders. The
// prompt instructs the model to answer with a single JSON object; Generate
// returns the raw response text, code fences and all.
type LLMService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// stripCodeFences removes markdown code-fence wrapping so the response can be
// parsed as strict JSON. Models frequently wrap JSON in ```json blocks even
// when told not to.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
