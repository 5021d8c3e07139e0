package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidQuery     = errors.New("query cannot be empty")
	ErrStoreUnavailable = errors.New("vector store unavailable")
)

// Retriever answers free-text queries with the most similar corpus
// passages. It embeds the query and delegates the nearest-neighbor
// search to the vector store.
type Retriever struct {
	embedder Embedder
	store    VectorStore
}

// NewRetriever creates a new Retriever instance.
func NewRetriever(embedder Embedder, store VectorStore) (*Retriever, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("vector store cannot be nil")
	}

	return &Retriever{
		embedder: embedder,
		store:    store,
	}, nil
}

// Retrieve returns the topK passages most similar to the query, ordered
// by descending similarity. A topK larger than the corpus returns every
// passage rather than an error. Embedder and store failures surface to
// the caller unmodified; there is no internal retry.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidQuery
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	records, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no embedding generated for query", ErrEmbeddingFailed)
	}

	count, err := r.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if topK > count {
		topK = count
	}
	if topK == 0 {
		return []SearchResult{}, nil
	}

	results, err := r.store.Search(ctx, records[0].Embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return results, nil
}
