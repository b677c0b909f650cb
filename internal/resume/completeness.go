package resume

import (
	"math"
	"unicode/utf8"
)

const (
	weightName       = 10
	weightEmail      = 10
	weightPhone      = 5
	weightSummary    = 15
	weightSkills     = 20
	weightEducation  = 20
	weightExperience = 20

	fullSummaryRunes = 200
	fullSkills       = 10
	fullEducation    = 2
	fullExperience   = 3
)

// Completeness scores how complete a profile is, from 0 to 100. Adding a
// non-empty field never lowers the score.
func Completeness(p *ParsedProfile) int {
	if p == nil {
		return 0
	}

	score := 0.0
	if p.Name != "" {
		score += weightName
	}
	if p.Email != "" {
		score += weightEmail
	}
	if p.Phone != "" {
		score += weightPhone
	}

	score += fraction(utf8.RuneCountInString(p.Summary), fullSummaryRunes) * weightSummary
	score += fraction(len(p.Skills), fullSkills) * weightSkills
	score += fraction(len(p.Education), fullEducation) * weightEducation
	score += fraction(len(p.Experience), fullExperience) * weightExperience

	return min(int(math.Round(score)), 100)
}

func fraction(n, full int) float64 {
	if n >= full {
		return 1
	}
	return float64(n) / float64(full)
}
