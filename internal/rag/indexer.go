package rag

import (
	"context"
	"fmt"

	"github.com/fableworks/storyteller/internal/knowledge"
)

// IndexOptions provides configuration for corpus indexing
type IndexOptions struct {
	// BatchSize determines how many passages to embed at once
	BatchSize int
}

// DefaultIndexOptions returns sensible defaults for indexing
func DefaultIndexOptions() IndexOptions {
	return IndexOptions{
		BatchSize: 16, // Batch size for embedding API calls
	}
}

// IndexPassages embeds the corpus and stores the vectors. It runs once
// at pipeline construction; the store is read-only afterwards.
// This function:
// 1. Embeds passage texts in batches
// 2. Verifies each embedding matches the embedder's declared dimension
// 3. Inserts the records into the vector store
func IndexPassages(
	ctx context.Context,
	passages []knowledge.Passage,
	embedder Embedder,
	store VectorStore,
	opts IndexOptions,
) error {
	if len(passages) == 0 {
		return nil
	}

	if embedder == nil {
		return fmt.Errorf("embedder cannot be nil")
	}

	if store == nil {
		return fmt.Errorf("vector store cannot be nil")
	}

	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultIndexOptions().BatchSize
	}

	for batchStart := 0; batchStart < len(passages); batchStart += opts.BatchSize {
		batchEnd := batchStart + opts.BatchSize
		if batchEnd > len(passages) {
			batchEnd = len(passages)
		}

		batch := passages[batchStart:batchEnd]

		texts := make([]string, len(batch))
		for i, passage := range batch {
			texts[i] = passage.Text
		}

		embeddingRecords, err := embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to generate embeddings for batch starting at %d: %w", batchStart, err)
		}
		if len(embeddingRecords) != len(batch) {
			return fmt.Errorf("%w: expected %d embeddings, got %d", ErrEmbeddingFailed, len(batch), len(embeddingRecords))
		}

		records := make([]PassageRecord, len(batch))
		for i, passage := range batch {
			if len(embeddingRecords[i].Embedding) != embedder.GetDimension() {
				return fmt.Errorf("%w: passage %d has dimension %d, embedder declares %d",
					ErrInvalidDimension, passage.ID, len(embeddingRecords[i].Embedding), embedder.GetDimension())
			}
			records[i] = PassageRecord{
				Passage:   passage,
				Embedding: embeddingRecords[i].Embedding,
			}
		}

		if err := store.Insert(ctx, records); err != nil {
			return fmt.Errorf("failed to insert batch starting at %d: %w", batchStart, err)
		}
	}

	return nil
}
