package similarity

import (
	"context"
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`\p{L}+`)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a an the and or but is are was were be been being in on at to for with
		by about against between into through during before after above below from up down of off over
		under again further then once here there when where why how all any both each few more most other
		some such no nor not only own same so than too very can will just should now`) {
		stopWords[w] = struct{}{}
	}
}

// Lexical is the Jaccard overlap of content words, always available.
type Lexical struct{}

func (Lexical) Name() string { return TierLexical }

func (Lexical) Similarity(_ context.Context, a, b string) (float64, error) {
	wa, wb := contentWords(a), contentWords(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0, nil
	}

	shared := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			shared++
		}
	}
	union := len(wa) + len(wb) - shared

	return float64(shared) / float64(union) * 100, nil
}

// contentWords returns lowercase alphabetic words longer than two characters, minus stop words.
func contentWords(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len([]rune(w)) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		words[w] = struct{}{}
	}
	return words
}
