package resume

import (
	"regexp"
	"strings"
)

var publicationRefRe = regexp.MustCompile(`(?i)arxiv:?\s*\d{4}\.\d{4,5}(?:v\d+)?|https?://\S+|doi:\s*10\.\d{4,9}/\S+|\b10\.\d{4,9}/\S+`)

// ExtractPublications returns one entry per non-bullet line in publication
// sections. The reference URL is the first arXiv id, DOI or link found in the
// title line or its detail bullets.
func ExtractPublications(text string) []Publication {
	pubs := []Publication{}
	var current *Publication

	flush := func() {
		if current != nil {
			pubs = append(pubs, *current)
			current = nil
		}
	}

	for _, line := range sectionLines(text, SectionPublications) {
		if isBullet(line) {
			if current == nil {
				continue
			}
			detail := stripBullet(line)
			current.Details = append(current.Details, detail)
			if current.URL == "" {
				current.URL = strings.TrimRight(publicationRefRe.FindString(detail), ".,;")
			}
			continue
		}

		flush()

		ref := publicationRefRe.FindString(line)
		body := line
		if ref != "" {
			body = trimSeparators(strings.Replace(body, ref, "", 1))
		}

		rest, date := cutDate(body)
		title, venue := splitVenue(rest)
		if title == "" {
			continue
		}

		current = &Publication{Title: title, Venue: venue, Date: date, URL: strings.TrimRight(ref, ".,;")}
	}
	flush()

	return pubs
}

var venueSplitRe = regexp.MustCompile(`\s*(?:\||\s-\s|\.\s+(?:In\s+)?)\s*`)

// splitVenue cuts "Title. Venue" or "Title | Venue".
func splitVenue(s string) (string, string) {
	parts := venueSplitRe.Split(strings.TrimSpace(s), 2)
	title := trimSeparators(strings.Trim(parts[0], `"`))
	if len(parts) == 1 {
		return title, ""
	}
	return title, trimSeparators(strings.TrimSuffix(parts[1], "."))
}
