package rag

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Common errors for embedding operations
var (
	ErrEmptyTexts      = errors.New("no texts provided for embedding")
	ErrMissingAPIKey   = errors.New("OPENAI_API_KEY environment variable not set")
	ErrEmbeddingFailed = errors.New("embedding generation failed")
)

// EmbeddingRecord is one embedded text. Index is the text's position in
// the input batch, so corpus passages keep their IDs and a single query
// is always record zero.
type EmbeddingRecord struct {
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
	Model     string    `json:"model"`
}

// Embedder turns passage and query text into fixed-dimension vectors.
// The same embedder must serve both the corpus at startup and every
// query afterwards, or the similarity space is meaningless.
type Embedder interface {
	// Embed generates embeddings for the provided texts
	Embed(ctx context.Context, texts []string) ([]EmbeddingRecord, error)

	// GetModel returns the embedding model identifier
	GetModel() string

	// GetDimension returns the embedding vector dimension
	GetDimension() int
}

// OpenAIEmbedder implements the Embedder interface using OpenAI's API
type OpenAIEmbedder struct {
	client    openai.Client
	model     string
	dimension int
}

// NewOpenAIEmbedder creates an embedder for the given model and requested
// vector dimension (the corpus is small, so a reduced dimension keeps the
// index cheap without hurting retrieval quality).
func NewOpenAIEmbedder(model string, dimension int) (*OpenAIEmbedder, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIEmbedder{
		client:    client,
		model:     model,
		dimension: dimension,
	}, nil
}

// GetModel returns the embedding model identifier
func (e *OpenAIEmbedder) GetModel() string {
	return e.model
}

// GetDimension returns the embedding vector dimension
func (e *OpenAIEmbedder) GetDimension() int {
	return e.dimension
}

// Embed generates embeddings for the provided texts in one API call.
// Input order is preserved: record i always belongs to texts[i], even if
// the API responds out of order.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([]EmbeddingRecord, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyTexts
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model:          e.model,
		Dimensions:     openai.Int(int64(e.dimension)),
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	return recordsFromResponse(texts, resp.Data, e.model)
}

// recordsFromResponse maps API response data back onto the input texts by
// the index the API reports, not by response position.
func recordsFromResponse(texts []string, data []openai.Embedding, model string) ([]EmbeddingRecord, error) {
	if len(data) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", ErrEmbeddingFailed, len(texts), len(data))
	}

	records := make([]EmbeddingRecord, len(texts))
	seen := make([]bool, len(texts))

	for _, d := range data {
		idx := int(d.Index)
		if idx < 0 || idx >= len(texts) || seen[idx] {
			return nil, fmt.Errorf("%w: response index %d out of range", ErrEmbeddingFailed, idx)
		}
		seen[idx] = true

		// API returns float64, the stores work in float32
		embedding := make([]float32, len(d.Embedding))
		for j, val := range d.Embedding {
			embedding[j] = float32(val)
		}

		records[idx] = EmbeddingRecord{
			Text:      texts[idx],
			Embedding: embedding,
			Index:     idx,
			Model:     model,
		}
	}

	return records, nil
}
