package gemini

import (
	"context"
	"crypto/sha256"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeModels struct {
	mu        sync.Mutex
	calls     int
	responses map[string][]float32
	errs      []error
}

func (f *fakeModels) EmbedContent(_ context.Context, _ string, contents []*genai.Content, _ *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}

	text := ""
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		text = contents[0].Parts[0].Text
	}

	values, ok := f.responses[text]
	if !ok {
		values = []float32{1, 0}
	}

	return &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: values}},
	}, nil
}

func newTestEmbedder(models *fakeModels, maxRetries int) *Embedder {
	return &Embedder{
		models:     models,
		modelName:  defaultModel,
		maxRetries: maxRetries,
		logger:     zap.NewNop(),
		cache:      make(map[[sha256.Size]byte][]float64),
	}
}

func TestSimilarityEmptyTextSkipsAPI(t *testing.T) {
	models := &fakeModels{}
	e := newTestEmbedder(models, 0)

	got, err := e.Similarity(context.Background(), "  ", "something")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 for empty text, got %v", got)
	}
	if models.calls != 0 {
		t.Fatalf("expected no API calls, got %d", models.calls)
	}
}

func TestSimilarityCosine(t *testing.T) {
	models := &fakeModels{responses: map[string][]float32{
		"alpha": {1, 0},
		"beta":  {0, 1},
		"gamma": {1, 0},
	}}
	e := newTestEmbedder(models, 0)

	orthogonal, err := e.Similarity(context.Background(), "alpha", "beta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orthogonal != 0 {
		t.Fatalf("expected 0 for orthogonal vectors, got %v", orthogonal)
	}

	parallel, err := e.Similarity(context.Background(), "alpha", "gamma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(parallel-1) > 1e-9 {
		t.Fatalf("expected 1 for parallel vectors, got %v", parallel)
	}
}

func TestEmbedCachesByContentHash(t *testing.T) {
	models := &fakeModels{}
	e := newTestEmbedder(models, 0)

	for i := 0; i < 3; i++ {
		if _, err := e.Similarity(context.Background(), "same text", "same text"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if models.calls != 1 {
		t.Fatalf("expected a single API call for repeated text, got %d", models.calls)
	}
}

func TestEmbedRetriesOnError(t *testing.T) {
	originalInterval := retryInterval
	retryInterval = time.Millisecond
	defer func() { retryInterval = originalInterval }()

	models := &fakeModels{errs: []error{errors.New("temporary")}}
	e := newTestEmbedder(models, 2)

	got, err := e.Similarity(context.Background(), "alpha", "alpha")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if math.Abs(got-1) > 1e-9 {
		t.Fatalf("unexpected similarity: %v", got)
	}
	if models.calls != 2 {
		t.Fatalf("expected 2 API calls, got %d", models.calls)
	}
}

func TestEmbedExhaustsRetries(t *testing.T) {
	originalInterval := retryInterval
	retryInterval = time.Millisecond
	defer func() { retryInterval = originalInterval }()

	models := &fakeModels{errs: []error{
		errors.New("one"), errors.New("two"), errors.New("three"),
	}}
	e := newTestEmbedder(models, 2)

	if _, err := e.Similarity(context.Background(), "alpha", "beta"); err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if models.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", models.calls)
	}
}

func TestNewEmbedderRequiresKey(t *testing.T) {
	if _, err := NewEmbedder(context.Background(), "  ", "", 0, zap.NewNop()); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}
