package resume

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Contact holds the header fields of a resume.
type Contact struct {
	Name     string
	Email    string
	Phone    string
	LinkedIn string
	GitHub   string
	Location string
}

const (
	nameSearchLines     = 5
	locationSearchLines = 8
	minPhoneDigits      = 10
	maxPhoneDigits      = 15
)

var (
	emailRe    = regexp.MustCompile(`[\w.+-]+@[\w-]+(?:\.[\w-]+)*\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`(?:\+\d{1,3}[\s.-]?)?(?:\(\d{2,4}\)|\d{2,4})[\s.-]?\d{3,4}[\s.-]?\d{3,4}`)
	urlRe      = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+|\b[\w-]+\.(?:com|org|net|io|dev)(?:/\S*)?`)
	linkedInRe = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/in/[\w%-]+/?`)
	gitHubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w-]+`)

	countries  = `(?:USA|US|U\.S\.A?\.?|United States|UK|United Kingdom|Canada|Germany|France|India|Netherlands|Spain|Italy|Poland|Ireland|Australia|Brazil|Mexico|Japan|Singapore|Sweden|Switzerland|Israel|Portugal|Ukraine|China|Austria|Belgium|Denmark|Norway|Finland)`
	locationRe = regexp.MustCompile(`^([\p{Lu}][\p{L}.'-]+(?:\s+[\p{Lu}][\p{L}.'-]+){0,3}),\s*(?:[A-Z]{2}(?:,\s*` + countries + `)?|` + countries + `)$`)
)

var nameStopWords = map[string]bool{
	"resume":     true,
	"résumé":     true,
	"cv":         true,
	"profile":    true,
	"contact":    true,
	"curriculum": true,
}

// ExtractContact pulls name, email, phone, profile links and a location guess from text.
func ExtractContact(text string) Contact {
	var c Contact

	c.Email = emailRe.FindString(text)
	if phone := findPhone(text); phone != "" {
		c.Phone = FormatPhone(phone)
	}
	c.LinkedIn = strings.TrimRight(linkedInRe.FindString(text), "/")
	c.GitHub = gitHubRe.FindString(text)

	header := headerRegion(text, locationSearchLines)
	nameLine := -1
	for i, line := range header {
		if i == nameSearchLines {
			break
		}
		if looksLikeName(line) {
			c.Name = line
			nameLine = i
			break
		}
	}

	for i, line := range header {
		if i == nameLine {
			continue
		}
		if loc := findLocation(line); loc != "" {
			c.Location = loc
			break
		}
	}

	return c
}

// findPhone returns the first phone-like match carrying a plausible digit count.
func findPhone(text string) string {
	for _, loc := range phoneRe.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && isDigitByte(text[loc[0]-1]) {
			continue
		}
		if loc[1] < len(text) && isDigitByte(text[loc[1]]) {
			continue
		}

		match := text[loc[0]:loc[1]]
		if onlyYears(match) {
			continue
		}
		if n := countDigits(match); n >= minPhoneDigits && n <= maxPhoneDigits {
			return strings.TrimSpace(match)
		}
	}
	return ""
}

var bareYearRe = regexp.MustCompile(`^` + yearPattern + `$`)

// onlyYears reports whether every digit group is a year, as in "2015 2016 2017".
func onlyYears(match string) bool {
	groups := strings.FieldsFunc(match, func(r rune) bool { return r < '0' || r > '9' })
	for _, g := range groups {
		if !bareYearRe.MatchString(g) {
			return false
		}
	}
	return len(groups) > 0
}

func hasPhone(text string) bool {
	return findPhone(text) != ""
}

// FormatPhone renders 10-digit and US 11-digit numbers uniformly and returns
// anything else trimmed but unchanged.
func FormatPhone(phone string) string {
	phone = strings.TrimSpace(phone)

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case len(d) == 10:
		return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
	case len(d) == 11 && d[0] == '1':
		return fmt.Sprintf("+1 (%s) %s-%s", d[1:4], d[4:7], d[7:])
	default:
		return phone
	}
}

func looksLikeName(line string) bool {
	if emailRe.MatchString(line) || hasPhone(line) || urlRe.MatchString(line) {
		return false
	}
	if strings.IndexFunc(line, unicode.IsDigit) >= 0 || strings.ContainsAny(line, "@:|/") {
		return false
	}

	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 5 {
		return false
	}

	for _, w := range words {
		if nameStopWords[strings.ToLower(strings.Trim(w, ".,-"))] {
			return false
		}
		if r := []rune(w)[0]; !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}

func findLocation(line string) string {
	if i := strings.Index(line, ":"); i >= 0 && strings.EqualFold(strings.TrimSpace(line[:i]), "location") {
		line = line[i+1:]
	}

	for _, segment := range strings.Split(line, "|") {
		segment = strings.TrimSpace(segment)
		if segment == "" || emailRe.MatchString(segment) || hasPhone(segment) || urlRe.MatchString(segment) {
			continue
		}
		if locationRe.MatchString(segment) {
			return segment
		}
	}
	return ""
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isDigitByte(s[i]) {
			n++
		}
	}
	return n
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}
