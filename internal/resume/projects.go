package resume

import (
	"regexp"
	"strings"
)

var (
	projectLabelRe = regexp.MustCompile(`(?i)^(tech(?:nologies)?|tech stack|stack|tools|built with|link|url|github|repo(?:sitory)?|demo)\s*:\s*(.*)$`)
	projectURLRe   = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+|\bgithub\.com/\S+`)
	listSplitRe    = regexp.MustCompile(`\s*[,;|]\s*`)
)

// ExtractProjects returns project entries. Every non-bullet line that is not a
// labelled detail starts a new project; long sentences stay with the current one.
func ExtractProjects(text string) []Project {
	projects := []Project{}
	var current *Project

	flush := func() {
		if current != nil {
			projects = append(projects, *current)
			current = nil
		}
	}

	for _, line := range sectionLines(text, SectionProjects) {
		bullet := isBullet(line)
		body := stripBullet(line)

		if m := projectLabelRe.FindStringSubmatch(body); m != nil && current != nil {
			label, value := strings.ToLower(m[1]), strings.TrimSpace(m[2])
			switch label {
			case "link", "url", "github", "repo", "repository", "demo":
				if current.URL == "" {
					current.URL = value
				}
			default:
				for _, tech := range listSplitRe.Split(value, -1) {
					if tech = trimSeparators(tech); tech != "" {
						current.Technologies = append(current.Technologies, tech)
					}
				}
			}
			continue
		}

		if bullet || (current != nil && !looksLikeHeading(body)) {
			if current == nil {
				continue
			}
			current.Details = append(current.Details, body)
			if current.URL == "" {
				current.URL = projectURLRe.FindString(body)
			}
			continue
		}

		flush()

		url := projectURLRe.FindString(body)
		if url != "" {
			body = trimSeparators(strings.Replace(body, url, "", 1))
		}

		rest, date := cutDate(body)
		name, description := splitPair(rest)
		if name == "" {
			continue
		}
		current = &Project{Name: name, Description: description, Date: date, URL: url}
	}
	flush()

	return projects
}
