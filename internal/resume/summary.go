package resume

import (
	"strings"
	"unicode/utf8"
)

const (
	maxSummaryLines         = 5
	minFallbackSummaryRunes = 50
)

// ExtractSummary prefers up to five lines under a summary header, joined with
// spaces. Without one it falls back to the first paragraph when that paragraph
// is long enough and carries no contact details.
func ExtractSummary(text string) string {
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		section, inline, ok := classifyHeader(line)
		if !ok || section != SectionSummary {
			continue
		}

		var collected []string
		if inline != "" {
			collected = append(collected, inline)
		}
		for _, next := range lines[i+1:] {
			if len(collected) == maxSummaryLines {
				break
			}
			next = strings.TrimSpace(next)
			if next == "" {
				continue
			}
			if _, _, isHeader := classifyHeader(next); isHeader {
				break
			}
			collected = append(collected, next)
		}

		if len(collected) > 0 {
			return strings.Join(collected, " ")
		}
	}

	first := strings.TrimSpace(strings.SplitN(strings.TrimSpace(text), "\n\n", 2)[0])
	if utf8.RuneCountInString(first) <= minFallbackSummaryRunes {
		return ""
	}
	if strings.Contains(first, "@") || hasPhone(first) {
		return ""
	}

	return strings.Join(strings.Fields(first), " ")
}
