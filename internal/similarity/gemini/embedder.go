// Package gemini provides a similarity provider backed by Gemini text
// embeddings. It is the remote alternative to the built-in lexical provider.
package gemini

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/davidlpuk/cv-tailor/internal/similarity"
	"github.com/davidlpuk/cv-tailor/internal/utils"
)

const defaultModel = "gemini-embedding-001"

// retryInterval is a variable so tests can shorten it.
var retryInterval = 2 * time.Second

// Embedder computes text-pair similarity as the cosine of Gemini embedding
// vectors. Embeddings are cached by content hash for the process lifetime, so
// repeated scoring of the same CV costs one API call.
type Embedder struct {
	models     contentEmbedder
	modelName  string
	maxRetries int
	logger     *zap.Logger

	cacheMu sync.RWMutex
	cache   map[[sha256.Size]byte][]float64
}

// contentEmbedder is the slice of the genai API the embedder consumes.
// Satisfied by *genai.Models; tests substitute a fake.
type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// NewEmbedder creates an Embedder configured for the Gemini API backend.
func NewEmbedder(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Embedder{
		models:     client.Models,
		modelName:  model,
		maxRetries: maxRetries,
		logger:     logger,
		cache:      make(map[[sha256.Size]byte][]float64),
	}, nil
}

// Name implements similarity.Provider.
func (e *Embedder) Name() string { return "gemini" }

// Similarity implements similarity.Provider. Empty texts yield 0 without an
// API call.
func (e *Embedder) Similarity(ctx context.Context, a, b string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0, nil
	}

	va, err := e.embed(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := e.embed(ctx, b)
	if err != nil {
		return 0, err
	}

	return similarity.Clamp(cosine(va, vb)), nil
}

func (e *Embedder) embed(ctx context.Context, text string) ([]float64, error) {
	key := sha256.Sum256([]byte(text))

	e.cacheMu.RLock()
	if vec, ok := e.cache[key]; ok {
		e.cacheMu.RUnlock()
		return vec, nil
	}
	e.cacheMu.RUnlock()

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			if err := utils.WaitFor(ctx, retryInterval); err != nil {
				return nil, err
			}
			e.logger.Debug("retrying gemini embedding request", zap.Int("attempt", attempt))
		}

		resp, err := e.models.EmbedContent(ctx, e.modelName, genai.Text(text), nil)
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
			lastErr = errors.New("gemini api returned an empty embedding")
			continue
		}

		vec := make([]float64, len(resp.Embeddings[0].Values))
		for i, v := range resp.Embeddings[0].Values {
			vec[i] = float64(v)
		}

		e.cacheMu.Lock()
		e.cache[key] = vec
		e.cacheMu.Unlock()

		return vec, nil
	}

	return nil, fmt.Errorf("embed content after %d attempts: %w", e.maxRetries+1, lastErr)
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
