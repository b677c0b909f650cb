package resume

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed skills.yaml
var skillsYAML []byte

type vocabularyFile struct {
	Groups []struct {
		Category string   `yaml:"category"`
		Skills   []string `yaml:"skills"`
	} `yaml:"groups"`
	Display map[string]string `yaml:"display"`
}

type vocabularyEntry struct {
	phrase  string
	display string
	re      *regexp.Regexp
}

// Vocabulary is an immutable table of recognized skill phrases.
type Vocabulary struct {
	entries []vocabularyEntry
	index   map[string]string
}

var defaultVocabulary = sync.OnceValue(func() *Vocabulary {
	v, err := LoadVocabulary(skillsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded skill vocabulary: %v", err))
	}
	return v
})

// DefaultVocabulary returns the embedded skill vocabulary.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary()
}

// LoadVocabulary parses a YAML vocabulary document.
func LoadVocabulary(data []byte) (*Vocabulary, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}

	title := cases.Title(language.English)
	v := &Vocabulary{index: make(map[string]string)}

	for _, group := range file.Groups {
		for _, skill := range group.Skills {
			phrase := strings.ToLower(strings.TrimSpace(skill))
			if phrase == "" {
				continue
			}
			if _, dup := v.index[phrase]; dup {
				continue
			}

			display := strings.TrimSpace(file.Display[phrase])
			if display == "" {
				display = title.String(phrase)
			}

			re, err := regexp.Compile(`(?:^|[^\p{L}\p{N}+#])` + regexp.QuoteMeta(phrase) + `(?:$|[^\p{L}\p{N}+#])`)
			if err != nil {
				return nil, fmt.Errorf("compile skill %q: %w", phrase, err)
			}

			v.index[phrase] = display
			v.entries = append(v.entries, vocabularyEntry{phrase: phrase, display: display, re: re})
		}
	}

	if len(v.entries) == 0 {
		return nil, fmt.Errorf("vocabulary has no skills")
	}

	return v, nil
}

// Lookup returns the display form of a term when it is a known skill.
func (v *Vocabulary) Lookup(term string) (string, bool) {
	display, ok := v.index[strings.ToLower(strings.TrimSpace(term))]
	return display, ok
}

// Match returns the display forms of every vocabulary phrase found in text.
func (v *Vocabulary) Match(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, entry := range v.entries {
		if entry.re.MatchString(lower) {
			found = append(found, entry.display)
		}
	}
	return found
}

// Len reports the number of phrases.
func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// skillSet deduplicates skills by lowercase identity, keeping the first display form.
type skillSet map[string]string

func (s skillSet) add(skills ...string) {
	for _, skill := range skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}
		if _, ok := s[key]; !ok {
			s[key] = strings.TrimSpace(skill)
		}
	}
}

func (s skillSet) sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, s[k])
	}
	return out
}
