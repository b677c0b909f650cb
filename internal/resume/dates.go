package resume

import (
	"regexp"
	"strings"
)

const (
	monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`
	yearPattern  = `(?:19|20)\d{2}`
	// a single point in time: "Jan 2020", "01/2020" or "2020"
	pointPattern = `(?:` + monthPattern + `\s+` + yearPattern + `|\d{1,2}/` + yearPattern + `|` + yearPattern + `)`
	openPattern  = `(?:present|current|now|today)`
)

var (
	// dateRangeRe matches "Jan 2020 - Present", "2018 - 2021", "03/2019 to 05/2021" and similar.
	dateRangeRe = regexp.MustCompile(`(?i)\b` + pointPattern + `\s*(?:-|–|—|to|until)\s*(?:` + pointPattern + `|` + openPattern + `)\b`)
	datePointRe = regexp.MustCompile(`(?i)\b` + pointPattern + `\b`)
)

// findDate returns the location of a date range, falling back to a single date.
func findDate(line string) []int {
	if loc := dateRangeRe.FindStringIndex(line); loc != nil {
		return loc
	}
	return datePointRe.FindStringIndex(line)
}

// cutDate removes the first date (range) from line and returns the remainder and the date.
func cutDate(line string) (string, string) {
	loc := findDate(line)
	if loc == nil {
		return strings.TrimSpace(line), ""
	}

	date := strings.TrimSpace(line[loc[0]:loc[1]])
	pre, post := trimSeparators(line[:loc[0]]), trimSeparators(line[loc[1]:])

	switch {
	case pre == "":
		return post, date
	case post == "":
		return pre, date
	default:
		return pre + " | " + post, date
	}
}
