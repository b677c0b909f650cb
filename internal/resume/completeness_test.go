package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleteness(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Completeness(nil))
	assert.Equal(t, 0, Completeness(NewProfile()))

	full := &ParsedProfile{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "(555) 123-4567",
		Summary:    strings.Repeat("a", 250),
		Skills:     make([]string, 12),
		Education:  make([]EducationEntry, 2),
		Experience: make([]ExperienceEntry, 4),
	}
	assert.Equal(t, 100, Completeness(full))

	partial := &ParsedProfile{
		Name:       "Jane Doe",
		Summary:    strings.Repeat("a", 100),
		Skills:     make([]string, 5),
		Experience: make([]ExperienceEntry, 1),
	}
	// 10 + 7.5 + 10 + 6.67
	assert.Equal(t, 34, Completeness(partial))
}

func TestCompletenessMonotonic(t *testing.T) {
	t.Parallel()

	additions := []func(p *ParsedProfile){
		func(p *ParsedProfile) { p.Name = "Jane" },
		func(p *ParsedProfile) { p.Email = "jane@example.com" },
		func(p *ParsedProfile) { p.Phone = "555" },
		func(p *ParsedProfile) { p.Summary = "x" },
		func(p *ParsedProfile) { p.Skills = []string{"Go"} },
		func(p *ParsedProfile) { p.Education = []EducationEntry{{Degree: "BSc"}} },
		func(p *ParsedProfile) { p.Experience = []ExperienceEntry{{Title: "Dev"}} },
		func(p *ParsedProfile) { p.Projects = []Project{{Name: "P"}} },
	}

	for i, add := range additions {
		base := NewProfile()
		before := Completeness(base)
		add(base)
		assert.GreaterOrEqual(t, Completeness(base), before, "addition %d", i)
	}

	// cumulative additions never lower the score either
	p := NewProfile()
	prev := Completeness(p)
	for _, add := range additions {
		add(p)
		score := Completeness(p)
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
}
