package resume

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

// Entity labels produced by recognizers.
const (
	LabelOrganization = "ORG"
	LabelProduct      = "PRODUCT"
	LabelLocation     = "GPE"
)

// Entity is a named span found in resume text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EntityRecognizer tags named entities in text. Implementations are shared
// between parse calls and must be safe for concurrent use.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

var capitalizedSpanRe = regexp.MustCompile(`[\p{Lu}][\p{L}\p{N}.+#/-]*(?:[ ][\p{Lu}][\p{L}\p{N}.+#/-]*)*`)

// CapitalizedSpanRecognizer is a model-free recognizer that reports runs of
// capitalized tokens. Mixed-case or symbol-bearing spans are labelled PRODUCT,
// the rest ORG.
type CapitalizedSpanRecognizer struct{}

func (CapitalizedSpanRecognizer) Recognize(_ context.Context, text string) ([]Entity, error) {
	var entities []Entity
	seen := make(map[string]struct{})

	emit := func(span string) {
		span = strings.TrimRight(span, ".-/")
		if span == "" {
			return
		}
		if _, ok := seen[span]; ok {
			return
		}
		seen[span] = struct{}{}
		entities = append(entities, Entity{Text: span, Label: spanLabel(span)})
	}

	for _, line := range strings.Split(text, "\n") {
		for _, span := range capitalizedSpanRe.FindAllString(line, -1) {
			emit(span)
			if words := strings.Fields(span); len(words) > 1 {
				for _, w := range words {
					emit(w)
				}
			}
		}
	}

	return entities, nil
}

func spanLabel(span string) string {
	upper := 0
	for i, r := range span {
		if i > 0 && unicode.IsUpper(r) {
			upper++
		}
		if unicode.IsDigit(r) || strings.ContainsRune(".+#/", r) {
			return LabelProduct
		}
	}
	if upper > 0 && !strings.Contains(span, " ") {
		return LabelProduct
	}
	return LabelOrganization
}
