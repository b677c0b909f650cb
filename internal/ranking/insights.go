package ranking

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/spigell/resumatch/internal/resume"
)

const (
	LevelEntry  = "Entry-level"
	LevelMid    = "Mid-level"
	LevelSenior = "Senior"
	Unknown     = "Unknown"

	defaultIndustry = "Technology"
	topSkillsCount  = 5
)

// Insights summarizes the profile next to the ranked jobs.
type Insights struct {
	ExperienceLevel  string   `json:"experience_level"`
	RelevantIndustry string   `json:"relevant_industry"`
	TopSkills        []string `json:"top_skills"`
	SkillCount       int      `json:"skill_count"`
}

//go:embed industries.yaml
var industriesYAML []byte

type industry struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	patterns []*regexp.Regexp
}

var defaultIndustries = sync.OnceValue(func() []industry {
	var f struct {
		Industries []industry `yaml:"industries"`
	}
	if err := yaml.Unmarshal(industriesYAML, &f); err != nil {
		panic(fmt.Sprintf("embedded industries: %v", err))
	}

	for i := range f.Industries {
		for _, kw := range f.Industries[i].Keywords {
			f.Industries[i].patterns = append(f.Industries[i].patterns, keywordPattern(kw))
		}
	}
	return f.Industries
})

// keywordPattern matches a keyword at the start of a word, so "banks" counts for
// "bank". Acronyms such as "IT" must match a whole word in upper case.
func keywordPattern(kw string) *regexp.Regexp {
	if isAcronym(kw) {
		return regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw))
}

func isAcronym(s string) bool {
	if len(s) < 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

var yearRe = regexp.MustCompile(`(?:19|20)\d{2}`)
var openEndedRe = regexp.MustCompile(`(?i)\b(?:present|current|now|today)\b`)

func buildInsights(p *resume.ParsedProfile, now time.Time) Insights {
	top := p.Skills
	if len(top) > topSkillsCount {
		top = top[:topSkillsCount]
	}

	return Insights{
		ExperienceLevel:  experienceLevel(ExperienceYears(p.Experience, now)),
		RelevantIndustry: relevantIndustry(p.Experience),
		TopSkills:        append([]string{}, top...),
		SkillCount:       len(p.Skills),
	}
}

func emptyInsights() Insights {
	return Insights{
		ExperienceLevel:  Unknown,
		RelevantIndustry: Unknown,
		TopSkills:        []string{},
	}
}

// ExperienceYears sums the year spans of the entries' date ranges. A range with
// two years counts their difference; one year with an open end counts up to now.
// Anything else contributes nothing.
func ExperienceYears(entries []resume.ExperienceEntry, now time.Time) int {
	total := 0
	for _, e := range entries {
		years := yearRe.FindAllString(e.DateRangeText, -1)

		var span int
		switch {
		case len(years) >= 2:
			span = atoi(years[1]) - atoi(years[0])
		case len(years) == 1 && openEndedRe.MatchString(e.DateRangeText):
			span = now.Year() - atoi(years[0])
		}

		if span > 0 {
			total += span
		}
	}
	return total
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func experienceLevel(years int) string {
	switch {
	case years < 2:
		return LevelEntry
	case years < 5:
		return LevelMid
	default:
		return LevelSenior
	}
}

// relevantIndustry counts keyword hits in experience titles and descriptions.
func relevantIndustry(entries []resume.ExperienceEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Description+" "+e.Title)
	}
	text := strings.Join(parts, " ")

	best, bestHits := defaultIndustry, 0
	for _, ind := range defaultIndustries() {
		hits := 0
		for _, re := range ind.patterns {
			if re.MatchString(text) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = ind.Name, hits
		}
	}

	return best
}
