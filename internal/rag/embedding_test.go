package rag

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/openai/openai-go"
)

func TestNewOpenAIEmbedder_MissingAPIKey(t *testing.T) {
	originalKey := os.Getenv("OPENAI_API_KEY")
	defer os.Setenv("OPENAI_API_KEY", originalKey)

	os.Unsetenv("OPENAI_API_KEY")

	_, err := NewOpenAIEmbedder("text-embedding-3-small", 1536)
	if err != ErrMissingAPIKey {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestRecordsFromResponse_OutOfOrderResponse(t *testing.T) {
	texts := []string{"The kitsune is a fox spirit.", "El Dorado is a city of gold."}
	data := []openai.Embedding{
		{Index: 1, Embedding: []float64{0, 1}},
		{Index: 0, Embedding: []float64{1, 0}},
	}

	records, err := recordsFromResponse(texts, data, "test-model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Text != texts[0] || records[0].Embedding[0] != 1 {
		t.Errorf("record 0 not paired with texts[0]: %+v", records[0])
	}
	if records[1].Text != texts[1] || records[1].Embedding[1] != 1 {
		t.Errorf("record 1 not paired with texts[1]: %+v", records[1])
	}
	for i, rec := range records {
		if rec.Index != i {
			t.Errorf("record %d carries index %d", i, rec.Index)
		}
	}
}

func TestRecordsFromResponse_MalformedResponse(t *testing.T) {
	texts := []string{"one", "two"}

	// Too few embeddings
	_, err := recordsFromResponse(texts, []openai.Embedding{{Index: 0}}, "test-model")
	if !errors.Is(err, ErrEmbeddingFailed) {
		t.Errorf("expected ErrEmbeddingFailed for short response, got %v", err)
	}

	// Duplicate index
	_, err = recordsFromResponse(texts, []openai.Embedding{{Index: 0}, {Index: 0}}, "test-model")
	if !errors.Is(err, ErrEmbeddingFailed) {
		t.Errorf("expected ErrEmbeddingFailed for duplicate index, got %v", err)
	}

	// Index out of range
	_, err = recordsFromResponse(texts, []openai.Embedding{{Index: 0}, {Index: 5}}, "test-model")
	if !errors.Is(err, ErrEmbeddingFailed) {
		t.Errorf("expected ErrEmbeddingFailed for out-of-range index, got %v", err)
	}
}

func TestOpenAIEmbedder_EmptyTexts(t *testing.T) {
	// Skip if no API key
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("OPENAI_API_KEY not set")
	}

	embedder, err := NewOpenAIEmbedder("text-embedding-3-small", 1536)
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}

	_, err = embedder.Embed(context.Background(), []string{})
	if err != ErrEmptyTexts {
		t.Errorf("expected ErrEmptyTexts, got %v", err)
	}
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	// Skip if no API key
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("OPENAI_API_KEY not set")
	}

	embedder, err := NewOpenAIEmbedder("text-embedding-3-small", 1536)
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}

	texts := []string{"The kitsune is a fox spirit.", "El Dorado is a city of gold."}
	records, err := embedder.Embed(context.Background(), texts)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if len(records) != len(texts) {
		t.Errorf("expected %d records, got %d", len(texts), len(records))
	}

	for i, record := range records {
		if len(record.Embedding) != embedder.GetDimension() {
			t.Errorf("record %d has dimension %d, expected %d", i, len(record.Embedding), embedder.GetDimension())
		}
		if record.Text != texts[i] {
			t.Errorf("record %d text mismatch: %s", i, record.Text)
		}
	}
}
