// In file: internal/llm/factory.go
package llm

import (
	"fmt"
	"strings"
)

// NewClient creates the provider client matching a model identifier.
// The prefix of the model ID selects the provider, mirroring how the
// environment names its API keys (ANTHROPIC_API_KEY, GEMINI_API_KEY).
func NewClient(modelID, apiKey string) (ModelClient, error) {
	switch {
	case strings.HasPrefix(modelID, "claude"):
		return NewAnthropicClient(apiKey)
	case strings.HasPrefix(modelID, "gemini"):
		return NewGeminiClient(apiKey, modelID)
	default:
		return nil, fmt.Errorf("unknown model provider for %q", modelID)
	}
}
