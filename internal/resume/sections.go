package resume

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Section names a heuristically delimited span of resume text.
type Section string

const (
	SectionContact        Section = "contact"
	SectionSkills         Section = "skills"
	SectionEducation      Section = "education"
	SectionExperience     Section = "experience"
	SectionSummary        Section = "summary"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionPublications   Section = "publications"
	SectionLanguages      Section = "languages"
	sectionOther          Section = "other"
)

type headerRule struct {
	section  Section
	keywords []string
	// a header containing any of these is not this section
	excludes []string
}

// headerRules are checked in order; the first rule whose keyword appears in a
// header line owns it.
var headerRules = []headerRule{
	{section: SectionSkills, keywords: []string{"skills", "competencies", "expertise", "technical proficiencies"}},
	{section: SectionEducation, keywords: []string{"education", "academic background", "academic history"}},
	{section: SectionExperience, keywords: []string{"experience", "employment", "work history", "career history", "job history"}},
	{section: SectionSummary, keywords: []string{"summary", "profile", "objective", "about me"}, excludes: []string{"linkedin", "github"}},
	{section: SectionProjects, keywords: []string{"projects"}},
	{section: SectionCertifications, keywords: []string{"certification", "certificates", "licenses"}},
	{section: SectionPublications, keywords: []string{"publications", "papers"}},
	{section: SectionLanguages, keywords: []string{"languages"}, excludes: []string{"programming"}},
	{section: sectionOther, keywords: []string{"awards", "honors", "interests", "hobbies", "references", "volunteer", "activities", "achievements"}},
}

const (
	maxHeaderWords = 5
	maxHeaderRunes = 40
)

var bulletRe = regexp.MustCompile(`^(?:[•●▪◦*\-]+\s*|\d+[.)]\s+)`)

// classifyHeader decides whether a line is a section header. Text after a colon
// in a header line is returned as inline content.
func classifyHeader(line string) (Section, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || isBullet(line) {
		return "", "", false
	}

	label, inline := line, ""
	if i := strings.Index(line, ":"); i >= 0 {
		label, inline = strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
	}

	if label == "" || utf8.RuneCountInString(label) > maxHeaderRunes || len(strings.Fields(label)) > maxHeaderWords {
		return "", "", false
	}
	if strings.Contains(label, "@") || strings.IndexFunc(label, unicode.IsDigit) >= 0 {
		return "", "", false
	}

	lower := strings.ToLower(label)
	for _, rule := range headerRules {
		if containsAny(lower, rule.excludes) {
			continue
		}
		if containsAny(lower, rule.keywords) {
			return rule.section, inline, true
		}
	}

	return "", "", false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func isBullet(line string) bool {
	return bulletRe.MatchString(strings.TrimSpace(line))
}

// stripBullet removes a leading bullet or list number.
func stripBullet(line string) string {
	line = strings.TrimSpace(line)
	return strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
}

// sectionLines returns the non-empty content lines of every occurrence of the
// target section, in document order. A header of another section ends the
// current occurrence.
func sectionLines(text string, target Section) []string {
	var (
		out       []string
		inSection bool
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if section, inline, ok := classifyHeader(line); ok {
			if section == target {
				inSection = true
				if inline != "" {
					out = append(out, inline)
				}
				continue
			}
			if inSection {
				inSection = false
				continue
			}
		}

		if inSection {
			out = append(out, line)
		}
	}

	return out
}

// headerRegion returns the non-empty lines above the first section header.
func headerRegion(text string, limit int) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if _, _, ok := classifyHeader(line); ok {
			break
		}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}

var separatorRe = regexp.MustCompile(`\s*(?:\||,|\s+at\s+|\s+-\s+|\s@\s)\s*`)

// splitPair splits s on the first separator into a head and a tail.
func splitPair(s string) (string, string) {
	loc := separatorRe.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:loc[0]]), strings.TrimSpace(s[loc[1]:])
}

// trimSeparators removes separator punctuation left around a cut.
func trimSeparators(s string) string {
	return strings.Trim(s, " \t|,;:-()[]@")
}
