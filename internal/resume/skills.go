package resume

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var (
	skillTokenSplitRe = regexp.MustCompile(`[,;|•]|\s+and\s+`)
	parentheticalRe   = regexp.MustCompile(`\s*\([^)]*\)`)
)

var skillEntityLabels = map[string]bool{
	LabelOrganization: true,
	LabelProduct:      true,
	LabelLocation:     true,
}

// ExtractSkills returns the vocabulary skills found in text, without entity recognition.
func ExtractSkills(text string) []string {
	return extractSkills(text, DefaultVocabulary(), nil)
}

// extractSkills unions vocabulary matches over the whole text, recognized entities
// that are vocabulary skills, and vocabulary tokens listed inside skills sections.
func extractSkills(text string, vocab *Vocabulary, entities []Entity) []string {
	set := make(skillSet)

	set.add(vocab.Match(text)...)

	for _, e := range entities {
		if !skillEntityLabels[e.Label] {
			continue
		}
		if display, ok := vocab.Lookup(e.Text); ok {
			set.add(display)
		}
	}

	for _, line := range sectionLines(text, SectionSkills) {
		line = stripBullet(line)
		if i := strings.Index(line, ":"); i >= 0 {
			line = line[i+1:]
		}
		for _, token := range skillTokenSplitRe.Split(line, -1) {
			token = parentheticalRe.ReplaceAllString(token, "")
			if display, ok := vocab.Lookup(trimSeparators(token)); ok {
				set.add(display)
			}
		}
	}

	return set.sorted()
}

// recognizeSkillEntities runs the recognizer, treating a failure as "no entities".
func (p *Parser) recognizeSkillEntities(ctx context.Context, text string) []Entity {
	if p.recognizer == nil {
		return nil
	}

	entities, err := p.recognizer.Recognize(ctx, text)
	if err != nil {
		p.logger.Warn("entity recognition failed, continuing with vocabulary matches only",
			zap.String("section", string(SectionSkills)),
			zap.Error(err),
		)
		return nil
	}

	return entities
}
