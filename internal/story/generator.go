package story

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrGenerationFailed = errors.New("story generation failed")
)

// Story represents one generated story for one request.
type Story struct {
	// Query is the user request the story was written for
	Query string `json:"query"`

	// Text is the generated story content
	Text string `json:"text"`

	// GeneratedAt is when this story was created
	GeneratedAt time.Time `json:"generated_at"`

	// Model is the LLM model used to generate this story
	Model string `json:"model"`
}

// Generator produces stories from composed prompts using an LLM.
// It invokes the LLM on an already-assembled prompt; it performs no
// retrieval or prompt construction of its own.
type Generator struct {
	llm    LLM
	config LLMConfig
}

// NewGenerator creates a story generator with the given LLM implementation.
func NewGenerator(llm LLM, config LLMConfig) *Generator {
	return &Generator{
		llm:    llm,
		config: config,
	}
}

// Generate creates a story by invoking the LLM with an already-assembled
// prompt. LLM failures surface to the caller unmodified; there is no
// retry or fallback.
func (g *Generator) Generate(ctx context.Context, query string, prompt string) (*Story, error) {
	if g.llm == nil {
		return nil, fmt.Errorf("%w: LLM is required", ErrGenerationFailed)
	}
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrGenerationFailed)
	}

	text, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: LLM invocation failed: %w", ErrGenerationFailed, err)
	}

	return &Story{
		Query:       query,
		Text:        text,
		GeneratedAt: time.Now(),
		Model:       g.config.Model,
	}, nil
}
