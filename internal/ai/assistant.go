// Package ai defines the boundary between resumatch and a conversational
// career assistant.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/resumatch/internal/ranking"
	"github.com/spigell/resumatch/internal/resume"
)

// FallbackResponse is shown to the user when the assistant cannot answer.
const FallbackResponse = "I'm sorry, I encountered an issue connecting to the AI service. Please try again in a moment."

const (
	baseInstruction    = "You are a helpful AI career assistant providing advice on job skills, resume building, and career development."
	closingInstruction = "Provide specific, actionable advice based on the user's profile and their target job."
)

// Assistant answers a free-form career question about the user's profile.
type Assistant interface {
	Ask(ctx context.Context, query string, c *Context) (string, error)
}

type ExperienceRef struct {
	Title   string `mapstructure:"title"`
	Company string `mapstructure:"company"`
}

type EducationRef struct {
	Degree      string `mapstructure:"degree"`
	Institution string `mapstructure:"institution"`
}

// Context carries the profile and job facts folded into the system prompt.
type Context struct {
	Skills        []string        `mapstructure:"skills"`
	MissingSkills []string        `mapstructure:"missing_skills"`
	JobTitle      string          `mapstructure:"job_title"`
	Experience    []ExperienceRef `mapstructure:"experience"`
	Education     []EducationRef  `mapstructure:"education"`
}

// ContextFromMap decodes a key/value context dictionary. Unknown keys are ignored.
func ContextFromMap(m map[string]any) (*Context, error) {
	c := &Context{}
	if len(m) == 0 {
		return c, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("decode assistant context: %w", err)
	}

	return c, nil
}

// BuildContext assembles the assistant context for the selected job. A nil
// job leaves the job-specific fields empty.
func BuildContext(profile *resume.ParsedProfile, job *ranking.JobMatch) *Context {
	c := &Context{}
	if profile != nil {
		c.Skills = append([]string(nil), profile.Skills...)
		for _, e := range profile.Experience {
			c.Experience = append(c.Experience, ExperienceRef{Title: e.Title, Company: e.Company})
		}
		for _, e := range profile.Education {
			c.Education = append(c.Education, EducationRef{Degree: e.Degree, Institution: e.Institution})
		}
	}

	if job != nil {
		c.JobTitle = job.Title
		c.MissingSkills = append([]string(nil), job.MissingSkills...)
	}

	return c
}

// Lines renders the non-empty context facts, one per line.
func (c *Context) Lines() []string {
	if c == nil {
		return nil
	}

	var lines []string
	if len(c.Skills) > 0 {
		lines = append(lines, "User's skills: "+strings.Join(c.Skills, ", "))
	}
	if len(c.MissingSkills) > 0 {
		lines = append(lines, "Skills the user needs to develop: "+strings.Join(c.MissingSkills, ", "))
	}
	if c.JobTitle != "" {
		lines = append(lines, "Job user is interested in: "+c.JobTitle)
	}

	if len(c.Experience) > 0 {
		parts := make([]string, 0, len(c.Experience))
		for _, e := range c.Experience {
			parts = append(parts, orDefault(e.Title, "Role")+" at "+orDefault(e.Company, "Company"))
		}
		lines = append(lines, "User's experience: "+strings.Join(parts, "; "))
	}

	if len(c.Education) > 0 {
		parts := make([]string, 0, len(c.Education))
		for _, e := range c.Education {
			parts = append(parts, orDefault(e.Degree, "Degree")+" from "+orDefault(e.Institution, "Institution"))
		}
		lines = append(lines, "User's education: "+strings.Join(parts, "; "))
	}

	return lines
}

// SystemPrompt builds the assistant instruction. Without a context only the
// base instruction is returned.
func SystemPrompt(c *Context) string {
	if c == nil {
		return baseInstruction
	}

	var b strings.Builder
	b.WriteString(baseInstruction)
	if lines := c.Lines(); len(lines) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(lines, "\n"))
	}
	b.WriteString("\n\n")
	b.WriteString(closingInstruction)

	return b.String()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
