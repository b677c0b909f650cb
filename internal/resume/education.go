package resume

import (
	"regexp"
	"strings"
)

var (
	degreeRe      = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:bachelor|master|doctor(?:ate)?|ph\.?\s?d|m\.?b\.?a|associate(?:'s)? degree|diploma|degree|b\.sc?|m\.sc?|bsc|msc|b\.a|m\.a|b\.s|m\.s|b\.eng|m\.eng|b\.tech|m\.tech|btech|mtech)(?:[^\p{L}]|$)`)
	institutionRe = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy|polytechnic|universit[äe]t)\b`)
)

// ExtractEducation returns entries triggered by degree or institution keywords
// inside education sections. A line that supplies only the missing half of the
// current entry (for example the institution under a degree line) is merged into it.
func ExtractEducation(text string) []EducationEntry {
	entries := []EducationEntry{}
	var current *EducationEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, line := range sectionLines(text, SectionEducation) {
		if isBullet(line) {
			if current != nil {
				current.Details = append(current.Details, stripBullet(line))
			}
			continue
		}

		rest, date := cutDate(line)
		hasDegree, hasInstitution := degreeRe.MatchString(rest), institutionRe.MatchString(rest)

		if !hasDegree && !hasInstitution {
			switch {
			case current == nil:
			case date != "" && current.Date == "" && rest == "":
				current.Date = date
			default:
				current.Details = append(current.Details, line)
			}
			continue
		}

		degree, institution := splitEducation(rest)

		if current != nil && mergeable(current, degree, institution) {
			if current.Degree == "" {
				current.Degree = degree
			}
			if current.Institution == "" {
				current.Institution = institution
			}
			if current.Date == "" {
				current.Date = date
			}
			continue
		}

		flush()
		current = &EducationEntry{Degree: degree, Institution: institution, Date: date}
	}
	flush()

	return entries
}

func mergeable(current *EducationEntry, degree, institution string) bool {
	if degree != "" && institution != "" {
		return false
	}
	return (degree != "" && current.Degree == "" && current.Institution != "") ||
		(institution != "" && current.Institution == "" && current.Degree != "")
}

// splitEducation assigns separator-delimited segments to degree and institution.
// Segments without keywords extend the degree (a field of study) until the
// institution has been seen.
func splitEducation(line string) (string, string) {
	var degree, institution string
	var field []string

	for _, segment := range separatorRe.Split(line, -1) {
		segment = trimSeparators(segment)
		if segment == "" {
			continue
		}

		switch {
		case institution == "" && institutionRe.MatchString(segment):
			institution = segment
		case degree == "" && degreeRe.MatchString(segment):
			degree = segment
		case institution == "":
			field = append(field, segment)
		}
	}

	if len(field) > 0 {
		if degree == "" && institution == "" {
			degree = strings.Join(field, ", ")
		} else if degree != "" {
			degree = strings.Join(append([]string{degree}, field...), ", ")
		}
	}

	return degree, institution
}
