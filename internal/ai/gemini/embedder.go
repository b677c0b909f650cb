package gemini

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/spigell/resumatch/internal/logger"
)

const defaultEmbeddingModel = "text-embedding-004"

type embedClient interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Embedder turns texts into Gemini embeddings. Vectors are cached by text hash
// for the lifetime of the process.
type Embedder struct {
	client  embedClient
	model   string
	limiter *rate.Limiter
	logger  *zap.Logger

	cacheMu sync.RWMutex
	cache   map[[sha256.Size]byte][]float32
}

func NewEmbedder(ctx context.Context, apiKey, model string, limiter *rate.Limiter, log *zap.Logger) (*Embedder, error) {
	client, err := Client(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	return newEmbedder(client.Models, model, limiter, log), nil
}

func newEmbedder(client embedClient, model string, limiter *rate.Limiter, log *zap.Logger) *Embedder {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultEmbeddingModel
	}

	return &Embedder{
		client:  client,
		model:   model,
		limiter: limiter,
		logger:  logger.WithCommonFields(log, "gemini", model),
		cache:   make(map[[sha256.Size]byte][]float32),
	}
}

// Embed returns one vector per text in input order. Only texts missing from
// the cache are sent, in a single request.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	keys := make([][sha256.Size]byte, len(texts))

	var missing []int
	e.cacheMu.RLock()
	for i, text := range texts {
		keys[i] = sha256.Sum256([]byte(text))
		if v, ok := e.cache[keys[i]]; ok {
			out[i] = v
			continue
		}
		missing = append(missing, i)
	}
	e.cacheMu.RUnlock()

	if len(missing) == 0 {
		return out, nil
	}

	contents := make([]*genai.Content, 0, len(missing))
	for _, i := range missing {
		contents = append(contents, &genai.Content{Parts: []*genai.Part{{Text: texts[i]}}})
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := e.client.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(missing) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, fmt.Errorf("embed content: expected %d embeddings, got %d", len(missing), got)
	}

	e.cacheMu.Lock()
	for j, i := range missing {
		embedding := resp.Embeddings[j]
		if embedding == nil {
			e.cacheMu.Unlock()
			return nil, fmt.Errorf("embed content: empty embedding at %d", i)
		}
		out[i] = embedding.Values
		e.cache[keys[i]] = embedding.Values
	}
	e.cacheMu.Unlock()

	e.logger.Debug("texts embedded",
		zap.Int("requested", len(texts)),
		zap.Int("cache_misses", len(missing)),
	)

	return out, nil
}
