package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Embedder encodes texts into dense vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Embedding scores texts by the cosine similarity of their embeddings.
type Embedding struct {
	embedder Embedder
}

func NewEmbedding(embedder Embedder) *Embedding {
	return &Embedding{embedder: embedder}
}

func (*Embedding) Name() string { return TierEmbedding }

// Check verifies that the embedder answers with a usable vector.
func (e *Embedding) Check(ctx context.Context) error {
	if e.embedder == nil {
		return ErrUnavailable
	}

	vectors, err := e.embedder.Embed(ctx, []string{"software engineer"})
	if err != nil {
		return fmt.Errorf("check embedder: %w", err)
	}
	if len(vectors) != 1 || len(vectors[0]) == 0 {
		return errors.New("check embedder: empty embedding")
	}

	return nil
}

func (e *Embedding) Similarity(ctx context.Context, a, b string) (float64, error) {
	if e.embedder == nil {
		return 0, ErrUnavailable
	}
	if a == "" || b == "" {
		return 0, nil
	}

	vectors, err := e.embedder.Embed(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("expected 2 embeddings, got %d", len(vectors))
	}
	if len(vectors[0]) != len(vectors[1]) {
		return 0, fmt.Errorf("embedding dimensions differ: %d and %d", len(vectors[0]), len(vectors[1]))
	}

	return clamp(cosine32(vectors[0], vectors[1]) * 100), nil
}

// cosine32 returns 0 for zero-norm vectors.
func cosine32(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
