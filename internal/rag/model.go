// Package rag provides the retrieval half of the storytelling pipeline:
// embedding passages, storing their vectors, and answering top-K
// similarity queries against the corpus.
package rag

import (
	"context"

	"github.com/fableworks/storyteller/internal/knowledge"
)

// PassageRecord pairs a corpus passage with its embedding for insertion
// into a vector store.
type PassageRecord struct {
	Passage   knowledge.Passage `json:"passage"`
	Embedding []float32         `json:"embedding"`
}

// SearchResult is a retrieved passage with its similarity score.
// Results are always ordered by descending score, best match first.
type SearchResult struct {
	Passage knowledge.Passage `json:"passage"`
	Score   float32           `json:"score"`
}

// VectorStore defines the interface for vector storage and similarity search.
// Stores are populated once at startup and read-only afterwards, so
// implementations may be shared across sequential requests without locking.
type VectorStore interface {
	// Insert adds passage records to the store
	Insert(ctx context.Context, records []PassageRecord) error

	// Search performs top-K similarity search against the stored vectors
	Search(ctx context.Context, queryVector []float32, topK int) ([]SearchResult, error)

	// Count returns the number of stored passages
	Count(ctx context.Context) (int, error)

	// Close releases resources and closes connections
	Close() error
}
