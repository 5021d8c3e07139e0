package story

import (
	"context"
	"strings"
)

// MockLLM is a deterministic LLM implementation for testing and offline
// demos. It returns predictable stories based on prompt content.
type MockLLM struct {
	// Response is the fixed text returned by Generate.
	// If empty, a canned story is selected from the prompt.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// LastPrompt stores the most recent prompt passed to Generate.
	LastPrompt string

	// Calls counts how many times Generate was invoked.
	Calls int
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Generate returns the configured response or selects a canned story.
func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	m.Calls++

	if m.Error != nil {
		return "", m.Error
	}

	if m.Response != "" {
		return m.Response, nil
	}

	return cannedStory(prompt), nil
}

// cannedStory picks a predictable story keyed off the retrieved context,
// so offline demos still produce something thematically coherent.
func cannedStory(prompt string) string {
	switch {
	case strings.Contains(prompt, "Kitsune"):
		return "Once upon a time, in a moonlit forest, a young fox named Kiko discovered she had grown a second tail, a sign of her growing magical abilities. She decided to use her newfound powers of illusion to protect the nearby village from mischievous spirits."
	case strings.Contains(prompt, "Trojan Horse"):
		return "In the final days of a long and bitter war, the clever strategist Odysseus proposed a daring plan. The invading army would build a great wooden horse as a supposed offering, but inside, the city's greatest heroes would hide, ready to open the gates from within."
	default:
		return "A lone traveler, guided by an ancient map, sought a legendary hidden city deep within a dense, uncharted jungle. The journey was perilous, filled with ancient traps and mythical creatures, but the promise of discovery drove the traveler forward."
	}
}
