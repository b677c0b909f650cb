package similarity

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"
)

var termRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// errEmptyVocabulary means neither document has a term of two or more characters.
var errEmptyVocabulary = errors.New("empty vocabulary")

// TFIDF builds a two-document TF-IDF space (smoothed idf, L2-normalized rows)
// and returns the cosine of the two vectors.
type TFIDF struct{}

func (TFIDF) Name() string { return TierTFIDF }

func (TFIDF) Similarity(_ context.Context, a, b string) (float64, error) {
	ta, tb := termCounts(a), termCounts(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 0, errEmptyVocabulary
	}

	const docs = 2.0
	idf := make(map[string]float64, len(ta)+len(tb))
	for _, counts := range []map[string]float64{ta, tb} {
		for term := range counts {
			if _, ok := idf[term]; ok {
				continue
			}
			df := 0.0
			if _, ok := ta[term]; ok {
				df++
			}
			if _, ok := tb[term]; ok {
				df++
			}
			idf[term] = math.Log((1+docs)/(1+df)) + 1
		}
	}

	va, vb := weigh(ta, idf), weigh(tb, idf)

	var dot float64
	for term, w := range va {
		dot += w * vb[term]
	}

	return dot * 100, nil
}

func termCounts(text string) map[string]float64 {
	counts := make(map[string]float64)
	for _, term := range termRe.FindAllString(strings.ToLower(text), -1) {
		counts[term]++
	}
	return counts
}

// weigh applies idf and normalizes to unit length.
func weigh(counts map[string]float64, idf map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(counts))
	var norm float64
	for term, tf := range counts {
		w := tf * idf[term]
		out[term] = w
		norm += w * w
	}
	if norm == 0 {
		return out
	}
	norm = math.Sqrt(norm)
	for term := range out {
		out[term] /= norm
	}
	return out
}
