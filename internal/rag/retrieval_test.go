package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fableworks/storyteller/internal/knowledge"
)

// fakeEmbedder produces deterministic keyword-count vectors so similarity
// behaves predictably without calling any API. The final dimension is a
// constant bias so no text embeds to the zero vector.
type fakeEmbedder struct {
	err   error
	calls int
}

var fakeVocab = []string{"fox", "gold", "horse", "spider", "tree", "peach", "city"}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([]EmbeddingRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	records := make([]EmbeddingRecord, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		vec := make([]float32, len(fakeVocab)+1)
		for j, word := range fakeVocab {
			vec[j] = float32(strings.Count(lower, word))
		}
		vec[len(fakeVocab)] = 0.1
		records[i] = EmbeddingRecord{Text: text, Embedding: vec, Index: i, Model: f.GetModel()}
	}
	return records, nil
}

func (f *fakeEmbedder) GetModel() string { return "fake-keyword-embedder" }

func (f *fakeEmbedder) GetDimension() int { return len(fakeVocab) + 1 }

// failingStore reports errors on every operation.
type failingStore struct{}

func (failingStore) Insert(ctx context.Context, records []PassageRecord) error { return nil }
func (failingStore) Search(ctx context.Context, queryVector []float32, topK int) ([]SearchResult, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) Count(ctx context.Context) (int, error) {
	return 0, errors.New("connection refused")
}
func (failingStore) Close() error { return nil }

func newTestRetriever(t *testing.T, passages []knowledge.Passage) (*Retriever, *fakeEmbedder) {
	t.Helper()

	embedder := &fakeEmbedder{}
	store, err := NewMemoryStore(embedder.GetDimension())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := IndexPassages(context.Background(), passages, embedder, store, DefaultIndexOptions()); err != nil {
		t.Fatalf("failed to index passages: %v", err)
	}
	embedder.calls = 0

	retriever, err := NewRetriever(embedder, store)
	if err != nil {
		t.Fatalf("failed to create retriever: %v", err)
	}
	return retriever, embedder
}

func testPassages() []knowledge.Passage {
	return []knowledge.Passage{
		{ID: 0, Culture: "Japanese", Text: "The kitsune is a fox spirit of Japanese folklore known for shapeshifting."},
		{ID: 1, Culture: "South American", Text: "El Dorado is a legendary city of gold sought by explorers."},
	}
}

func TestNewRetriever_NilDependencies(t *testing.T) {
	if _, err := NewRetriever(nil, &MemoryStore{}); err == nil {
		t.Error("expected error for nil embedder")
	}
	if _, err := NewRetriever(&fakeEmbedder{}, nil); err == nil {
		t.Error("expected error for nil store")
	}
}

func TestRetriever_Retrieve_EmptyQuery(t *testing.T) {
	retriever, embedder := newTestRetriever(t, testPassages())

	_, err := retriever.Retrieve(context.Background(), "   ", 1)
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called %d times for invalid query", embedder.calls)
	}
}

func TestRetriever_Retrieve_TopRanked(t *testing.T) {
	retriever, _ := newTestRetriever(t, testPassages())

	results, err := retriever.Retrieve(context.Background(), "a story about a mythical fox", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}
	if !strings.Contains(results[0].Passage.Text, "kitsune") {
		t.Errorf("expected kitsune passage, got %q", results[0].Passage.Text)
	}
}

func TestRetriever_Retrieve_ExactlyK(t *testing.T) {
	retriever, _ := newTestRetriever(t, testPassages())

	results, err := retriever.Retrieve(context.Background(), "a tale of a hidden city of gold", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected exactly 2 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not in descending score order at %d", i)
		}
	}
	if !strings.Contains(results[0].Passage.Text, "El Dorado") {
		t.Errorf("expected El Dorado passage first, got %q", results[0].Passage.Text)
	}
}

func TestRetriever_Retrieve_KExceedsCorpus(t *testing.T) {
	retriever, _ := newTestRetriever(t, testPassages())

	results, err := retriever.Retrieve(context.Background(), "a story about a mythical fox", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected all 2 passages, got %d", len(results))
	}
}

func TestRetriever_Retrieve_InvalidTopK(t *testing.T) {
	retriever, _ := newTestRetriever(t, testPassages())

	if _, err := retriever.Retrieve(context.Background(), "a fox", 0); err == nil {
		t.Fatal("expected error for topK = 0")
	}
}

func TestRetriever_Retrieve_EmbedderFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: ErrEmbeddingFailed}
	store, _ := NewMemoryStore(embedder.GetDimension())
	retriever, err := NewRetriever(embedder, store)
	if err != nil {
		t.Fatalf("failed to create retriever: %v", err)
	}

	_, err = retriever.Retrieve(context.Background(), "a fox", 1)
	if !errors.Is(err, ErrEmbeddingFailed) {
		t.Fatalf("expected ErrEmbeddingFailed, got %v", err)
	}
}

func TestRetriever_Retrieve_StoreFailure(t *testing.T) {
	retriever, err := NewRetriever(&fakeEmbedder{}, failingStore{})
	if err != nil {
		t.Fatalf("failed to create retriever: %v", err)
	}

	_, err = retriever.Retrieve(context.Background(), "a fox", 1)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
