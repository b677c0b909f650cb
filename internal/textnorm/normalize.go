// Package textnorm cleans text extracted from resume documents before it is parsed.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Anything outside word characters, whitespace and common punctuation is an extraction artifact.
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:\-()\[\]{}'"!?/&+=*%$#@|\\]`)
	horizontal = regexp.MustCompile(`[ \t\f]+`)
	newlines   = regexp.MustCompile(`\n{3,}`)
)

// glyphs maps bullet and dash glyphs (including their common mojibake forms) to ASCII.
// They are rewritten before the allow-list strips them.
var glyphs = strings.NewReplacer(
	"â€¢", "- ",
	"â€“", "-",
	"â€”", "-",
	"•", "- ",
	"●", "- ",
	"▪", "- ",
	"◦", "- ",
	"‣", "- ",
	"⁃", "- ",
	"", "- ",
	"‐", "-",
	"‑", "-",
	"‒", "-",
	"–", "-",
	"—", "-",
	"―", "-",
	"−", "-",
	"\r\n", "\n",
	"\r", "\n",
)

// Normalize repairs bullet glyphs, applies NFKD, strips characters outside the
// allow-list, collapses horizontal whitespace, trims every line and keeps at most
// two consecutive newlines. Normalize is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := glyphs.Replace(raw)
	text = norm.NFKD.String(text)
	text = disallowed.ReplaceAllString(text, "")
	text = horizontal.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = newlines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
