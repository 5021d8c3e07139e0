// Package pipeline wires the retrieval and generation stages into the
// single Run entry point the front ends call. A Pipeline is built once
// per process and reused across requests; rebuilding it per request
// re-embeds the whole corpus and is an explicit anti-pattern.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fableworks/storyteller/internal/knowledge"
	"github.com/fableworks/storyteller/internal/rag"
	"github.com/fableworks/storyteller/internal/story"
)

var (
	ErrEmptyQuery = errors.New("query cannot be empty")
)

// Store backends selectable via Config.StoreBackend.
const (
	StoreMemory = "memory"
	StoreMilvus = "milvus"
)

// Config holds configuration for the storytelling pipeline.
type Config struct {
	// TopK is the number of passages to retrieve as context
	TopK int

	// EmbedderModel is the model to use for embeddings (e.g., "text-embedding-3-small")
	EmbedderModel string

	// EmbedderDimension is the vector dimension for embeddings
	EmbedderDimension int

	// StoreBackend selects the vector store implementation ("memory" or "milvus")
	StoreBackend string

	// MilvusConfig holds the Milvus vector store configuration (used when
	// StoreBackend is "milvus")
	MilvusConfig rag.MilvusConfig

	// LLMConfig holds the LLM configuration for story generation
	LLMConfig story.LLMConfig
}

// DefaultConfig returns sensible defaults for the pipeline.
func DefaultConfig() Config {
	return Config{
		TopK:              2,
		EmbedderModel:     "text-embedding-3-small",
		EmbedderDimension: 1536,
		StoreBackend:      StoreMemory,
		MilvusConfig:      rag.DefaultMilvusConfig(),
		LLMConfig:         story.DefaultLLMConfig(),
	}
}

// Pipeline orchestrates end-to-end story generation:
// retrieval -> prompt composition -> LLM generation.
type Pipeline struct {
	config    Config
	embedder  rag.Embedder
	store     rag.VectorStore
	retriever *rag.Retriever
	generator *story.Generator
}

// New creates a pipeline with the given configuration and indexes the
// corpus into the vector store. The returned pipeline is read-only and
// safe to share across sequential requests.
func New(ctx context.Context, config Config, passages []knowledge.Passage) (*Pipeline, error) {
	embedder, err := rag.NewOpenAIEmbedder(config.EmbedderModel, config.EmbedderDimension)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	llm, err := story.NewOpenAILLM(config.LLMConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM: %w", err)
	}

	return Assemble(ctx, config, passages, embedder, llm)
}

// Assemble builds a pipeline from explicit collaborators. Front ends use
// New; tests and offline demos substitute fakes here.
func Assemble(
	ctx context.Context,
	config Config,
	passages []knowledge.Passage,
	embedder rag.Embedder,
	llm story.LLM,
) (*Pipeline, error) {
	store, err := newStore(ctx, config, embedder)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector store: %w", err)
	}

	if err := rag.IndexPassages(ctx, passages, embedder, store, rag.DefaultIndexOptions()); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to index corpus: %w", err)
	}

	retriever, err := rag.NewRetriever(embedder, store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create retriever: %w", err)
	}

	return &Pipeline{
		config:    config,
		embedder:  embedder,
		store:     store,
		retriever: retriever,
		generator: story.NewGenerator(llm, config.LLMConfig),
	}, nil
}

func newStore(ctx context.Context, config Config, embedder rag.Embedder) (rag.VectorStore, error) {
	switch config.StoreBackend {
	case StoreMemory, "":
		return rag.NewMemoryStore(embedder.GetDimension())
	case StoreMilvus:
		milvusConfig := config.MilvusConfig
		milvusConfig.Dimension = embedder.GetDimension()
		return rag.NewMilvusStore(ctx, milvusConfig)
	default:
		return nil, fmt.Errorf("unknown store backend %q", config.StoreBackend)
	}
}

// Close releases resources held by the pipeline.
func (p *Pipeline) Close() error {
	if p.store != nil {
		return p.store.Close()
	}
	return nil
}

// Run answers one story request: validate -> retrieve -> compose ->
// generate. Nothing is cached across queries, and every error surfaces
// to the caller unmodified.
func (p *Pipeline) Run(ctx context.Context, query string) (*story.Story, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	results, err := p.retriever.Retrieve(ctx, query, p.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	prompt := story.ComposePrompt(query, results)

	st, err := p.generator.Generate(ctx, query, prompt)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return st, nil
}

// Retrieve exposes the retrieval stage on its own, for front ends that
// want to show which passages grounded a story.
func (p *Pipeline) Retrieve(ctx context.Context, query string) ([]rag.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return p.retriever.Retrieve(ctx, query, p.config.TopK)
}
