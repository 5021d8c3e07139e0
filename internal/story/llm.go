// Package story provides LLM-powered story generation from composed
// prompts. It defines a provider-agnostic LLM interface with a concrete
// OpenAI implementation and deterministic mocks for testing. The
// generator consumes pre-assembled prompts and returns structured story
// objects.
package story

import (
	"context"
	"errors"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// LLM defines the interface for interacting with language models.
// Implementations must be stateless and thread-safe.
type LLM interface {
	// Generate produces text from a prompt using the configured model.
	// Returns the generated text or an error if generation fails.
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMConfig holds common configuration options for LLM providers.
type LLMConfig struct {
	// Model specifies the model identifier (e.g., "gpt-4o", "gpt-4o-mini")
	Model string

	// Temperature controls randomness (0.0 = deterministic, 2.0 = very
	// random). nil means use the provider default; an explicit 0 is sent
	// as-is.
	Temperature *float64

	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string
}

// Temp is a convenience for building an explicit Temperature value.
func Temp(t float64) *float64 { return &t }

// DefaultLLMConfig returns sensible defaults for story generation.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:       "gpt-4o",
		Temperature: Temp(0.8), // stories want some creative variance
		MaxTokens:   1500,
	}
}
