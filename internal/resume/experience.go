package resume

import "strings"

// ExtractExperience returns one entry per date-range line found in experience
// sections. The text before the date splits into title and company on the first
// "|", ",", " at " or " - ". When the date line carries only a company (or
// nothing), the non-bullet line right above it supplies the title.
func ExtractExperience(text string) []ExperienceEntry {
	entries := []ExperienceEntry{}

	var (
		current     *ExperienceEntry
		description []string
		pending     string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.Join(description, "\n")
		entries = append(entries, *current)
		current, description = nil, nil
	}

	lines := sectionLines(text, SectionExperience)
	for i, line := range lines {
		if isDateLine(line) {
			loc := dateRangeRe.FindStringIndex(line)
			flush()

			head := trimSeparators(line[:loc[0]])
			if head == "" {
				head = trimSeparators(line[loc[1]:])
			}

			title, company := splitPair(head)
			switch {
			case title == "":
				title, company = splitPair(pending)
			case company == "" && pending != "":
				title, company = pending, title
			}

			current = &ExperienceEntry{
				Title:         title,
				Company:       company,
				DateRangeText: strings.TrimSpace(line[loc[0]:loc[1]]),
			}
			pending = ""
			continue
		}

		if isBullet(line) {
			if current != nil {
				if item := stripBullet(line); item != "" {
					description = append(description, item)
				}
			}
			continue
		}

		// Inside an entry a short line is only a title when a date line follows.
		if looksLikeHeading(line) && (current == nil || (i+1 < len(lines) && isDateLine(lines[i+1]))) {
			pending = line
			continue
		}
		if current != nil {
			description = append(description, line)
		}
	}
	flush()

	return entries
}

func isDateLine(line string) bool {
	return !isBullet(line) && dateRangeRe.MatchString(line)
}

// looksLikeHeading reports whether a non-bullet line reads as a short label
// rather than a sentence.
func looksLikeHeading(line string) bool {
	return len(strings.Fields(line)) <= 8 && !strings.HasSuffix(line, ".")
}
