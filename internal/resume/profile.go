// Package resume turns normalized resume text into a structured profile using
// line-oriented section heuristics.
package resume

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ParsedProfile is the structured view of a single resume. Every field defaults to
// its empty value when the corresponding section could not be extracted.
type ParsedProfile struct {
	Name     string `json:"name" mapstructure:"name"`
	Email    string `json:"email" mapstructure:"email"`
	Phone    string `json:"phone" mapstructure:"phone"`
	LinkedIn string `json:"linkedin" mapstructure:"linkedin"`
	GitHub   string `json:"github" mapstructure:"github"`
	Location string `json:"location" mapstructure:"location"`
	Summary  string `json:"summary" mapstructure:"summary"`

	Skills         []string          `json:"skills" mapstructure:"skills"`
	Experience     []ExperienceEntry `json:"experience" mapstructure:"experience"`
	Education      []EducationEntry  `json:"education" mapstructure:"education"`
	Certifications []Certification   `json:"certifications" mapstructure:"certifications"`
	Projects       []Project         `json:"projects" mapstructure:"projects"`
	Publications   []Publication     `json:"publications" mapstructure:"publications"`
	Languages      []Language        `json:"languages" mapstructure:"languages"`
}

type ExperienceEntry struct {
	Title         string `json:"title" mapstructure:"title"`
	Company       string `json:"company" mapstructure:"company"`
	DateRangeText string `json:"date_range_text" mapstructure:"date_range_text"`
	Description   string `json:"description" mapstructure:"description"`
}

type EducationEntry struct {
	Degree      string   `json:"degree" mapstructure:"degree"`
	Institution string   `json:"institution" mapstructure:"institution"`
	Date        string   `json:"date,omitempty" mapstructure:"date"`
	Details     []string `json:"details,omitempty" mapstructure:"details"`
}

type Certification struct {
	Name   string `json:"name" mapstructure:"name"`
	Issuer string `json:"issuer,omitempty" mapstructure:"issuer"`
	Date   string `json:"date" mapstructure:"date"`
}

type Project struct {
	Name         string   `json:"name" mapstructure:"name"`
	Description  string   `json:"description,omitempty" mapstructure:"description"`
	Date         string   `json:"date,omitempty" mapstructure:"date"`
	Technologies []string `json:"technologies,omitempty" mapstructure:"technologies"`
	URL          string   `json:"url,omitempty" mapstructure:"url"`
	Details      []string `json:"details,omitempty" mapstructure:"details"`
}

type Publication struct {
	Title   string   `json:"title" mapstructure:"title"`
	Venue   string   `json:"venue,omitempty" mapstructure:"venue"`
	Date    string   `json:"date,omitempty" mapstructure:"date"`
	URL     string   `json:"url,omitempty" mapstructure:"url"`
	Details []string `json:"details,omitempty" mapstructure:"details"`
}

type Language struct {
	Language    string `json:"language" mapstructure:"language"`
	Proficiency string `json:"proficiency,omitempty" mapstructure:"proficiency"`
}

// NewProfile returns a profile with every list initialized, so that serialized
// output never carries nulls.
func NewProfile() *ParsedProfile {
	return &ParsedProfile{
		Skills:         []string{},
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Certifications: []Certification{},
		Projects:       []Project{},
		Publications:   []Publication{},
		Languages:      []Language{},
	}
}

// Document flattens the profile into a key/value document keyed by the profile field names.
func (p *ParsedProfile) Document() (map[string]any, error) {
	if p == nil {
		p = NewProfile()
	}

	out := make(map[string]any)
	if err := mapstructure.Decode(p, &out); err != nil {
		return nil, fmt.Errorf("decode profile document: %w", err)
	}

	return out, nil
}

// IsEmpty reports whether nothing was extracted.
func (p *ParsedProfile) IsEmpty() bool {
	if p == nil {
		return true
	}

	return p.Name == "" && p.Email == "" && p.Phone == "" && p.Summary == "" &&
		p.LinkedIn == "" && p.GitHub == "" && p.Location == "" &&
		len(p.Skills) == 0 && len(p.Experience) == 0 && len(p.Education) == 0 &&
		len(p.Certifications) == 0 && len(p.Projects) == 0 && len(p.Publications) == 0 &&
		len(p.Languages) == 0
}
