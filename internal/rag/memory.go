package rag

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Common errors for in-memory store operations
var (
	ErrEmptyRecords     = errors.New("no records provided for insertion")
	ErrInvalidDimension = errors.New("invalid vector dimension")
	ErrZeroVector       = errors.New("vector has zero magnitude")
)

// MemoryStore is an in-process VectorStore using brute-force cosine
// similarity. It is the default backend for the demo-scale corpus, where
// a handful of passages makes an external vector database unnecessary.
// Vectors are L2-normalized at insert so the dot product equals cosine
// similarity at search time.
type MemoryStore struct {
	mu        sync.RWMutex
	dimension int
	records   []PassageRecord
}

// NewMemoryStore creates an empty in-memory store for vectors of the
// given dimension.
func NewMemoryStore(dimension int) (*MemoryStore, error) {
	if dimension <= 0 {
		return nil, ErrInvalidDimension
	}
	return &MemoryStore{dimension: dimension}, nil
}

// Insert adds passage records, normalizing each embedding in place.
func (s *MemoryStore) Insert(ctx context.Context, records []PassageRecord) error {
	if len(records) == 0 {
		return ErrEmptyRecords
	}

	normalized := make([]PassageRecord, len(records))
	for i, rec := range records {
		if len(rec.Embedding) != s.dimension {
			return fmt.Errorf("%w: expected %d, got %d", ErrInvalidDimension, s.dimension, len(rec.Embedding))
		}
		vec, err := normalize(rec.Embedding)
		if err != nil {
			return fmt.Errorf("passage %d: %w", rec.Passage.ID, err)
		}
		normalized[i] = PassageRecord{Passage: rec.Passage, Embedding: vec}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, normalized...)
	return nil
}

// Search returns the topK most similar passages, best first. Asking for
// more results than the store holds returns everything, not an error.
func (s *MemoryStore) Search(ctx context.Context, queryVector []float32, topK int) ([]SearchResult, error) {
	if len(queryVector) != s.dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidDimension, s.dimension, len(queryVector))
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	query, err := normalize(queryVector)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]SearchResult, len(s.records))
	for i, rec := range s.records {
		results[i] = SearchResult{
			Passage: rec.Passage,
			Score:   dot(rec.Embedding, query),
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

// Count returns the number of stored passages.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func normalize(vec []float32) ([]float32, error) {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	magnitude := math.Sqrt(sumSquares)
	if magnitude == 0 {
		return nil, ErrZeroVector
	}

	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / magnitude)
	}
	return out, nil
}
