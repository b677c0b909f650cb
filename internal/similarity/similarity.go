// Package similarity estimates how close two free-text blobs are on a 0..100
// scale, falling back through progressively simpler strategies.
package similarity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	TierEmbedding = "embedding"
	TierTFIDF     = "tfidf"
	TierLexical   = "lexical"
)

// ErrUnavailable is returned by a tier whose backing capability is missing.
var ErrUnavailable = errors.New("similarity tier unavailable")

// Tier is one fallback strategy. Implementations return a score in [0,100].
type Tier interface {
	Name() string
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// TierError wraps the failure of a single tier.
type TierError struct {
	Tier string
	Err  error
}

func (e *TierError) Error() string {
	return fmt.Sprintf("%s similarity: %v", e.Tier, e.Err)
}

func (e *TierError) Unwrap() error { return e.Err }

// Estimator tries its tiers in order and returns the first successful score.
type Estimator struct {
	tiers  []Tier
	logger *zap.Logger
}

// NewEstimator builds an estimator over the given tiers. The lexical tier is
// appended when absent so that a score is always produced.
func NewEstimator(logger *zap.Logger, tiers ...Tier) *Estimator {
	if logger == nil {
		logger = zap.NewNop()
	}

	hasLexical := false
	for _, t := range tiers {
		if t.Name() == TierLexical {
			hasLexical = true
		}
	}
	if !hasLexical {
		tiers = append(tiers, Lexical{})
	}

	return &Estimator{tiers: tiers, logger: logger}
}

// Tiers returns the tier names in evaluation order.
func (e *Estimator) Tiers() []string {
	names := make([]string, 0, len(e.tiers))
	for _, t := range e.tiers {
		names = append(names, t.Name())
	}
	return names
}

// Similarity returns 0 when either text is blank. A failing tier is logged and
// the next one is tried.
func (e *Estimator) Similarity(ctx context.Context, a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}

	for _, tier := range e.tiers {
		score, err := tier.Similarity(ctx, a, b)
		if err != nil {
			e.logger.Warn("similarity tier failed, falling through",
				zap.String("tier", tier.Name()),
				zap.Error(&TierError{Tier: tier.Name(), Err: err}),
			)
			continue
		}
		return clamp(score)
	}

	return 0
}

func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

// DetectTiers resolves configured tier names into tiers, checking the embedder
// once. An embedding tier whose embedder is missing or failing is skipped.
func DetectTiers(ctx context.Context, names []string, embedder Embedder, logger *zap.Logger) ([]Tier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var tiers []Tier
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case TierEmbedding:
			tier := NewEmbedding(embedder)
			if err := tier.Check(ctx); err != nil {
				logger.Info("embedding similarity disabled",
					zap.String("tier", TierEmbedding),
					zap.Error(err),
				)
				continue
			}
			tiers = append(tiers, tier)
		case TierTFIDF:
			tiers = append(tiers, TFIDF{})
		case TierLexical:
			tiers = append(tiers, Lexical{})
		default:
			return nil, fmt.Errorf("unknown similarity tier %q", name)
		}
	}

	return tiers, nil
}
