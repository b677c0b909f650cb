package resume

import (
	"regexp"
	"strings"
)

var (
	proficiencyRe  = regexp.MustCompile(`(?i)\b(native|bilingual|fluent|proficient|professional(?: working)?|full professional|advanced|upper[- ]intermediate|intermediate|conversational|basic|beginner|elementary|limited working|[abc][12])\b`)
	languageNameRe = regexp.MustCompile(`^[\p{L}][\p{L} ]{1,30}$`)
	languageCutRe  = regexp.MustCompile(`\s*[-:(–]\s*`)
)

// ExtractLanguages reads "Language (Proficiency)" style items from language
// sections. Items may be comma or bullet separated.
func ExtractLanguages(text string) []Language {
	langs := []Language{}
	seen := make(map[string]bool)

	for _, line := range sectionLines(text, SectionLanguages) {
		for _, item := range listSplitRe.Split(stripBullet(line), -1) {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}

			proficiency := proficiencyRe.FindString(item)

			name := languageCutRe.Split(item, 2)[0]
			if proficiency != "" {
				name = strings.Replace(name, proficiency, "", 1)
			}
			name = strings.TrimPrefix(trimSeparators(name), "in ")

			if !languageNameRe.MatchString(name) || len(strings.Fields(name)) > 3 {
				continue
			}

			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true

			langs = append(langs, Language{Language: name, Proficiency: formatProficiency(proficiency)})
		}
	}

	return langs
}

func formatProficiency(p string) string {
	if len(p) == 2 {
		return strings.ToUpper(p)
	}
	if p == "" {
		return ""
	}
	return strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
}
