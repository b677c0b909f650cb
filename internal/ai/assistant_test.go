package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resumatch/internal/ranking"
	"github.com/spigell/resumatch/internal/resume"
)

func TestSystemPromptWithoutContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, baseInstruction, SystemPrompt(nil))
}

func TestSystemPromptEmptyContextKeepsClosing(t *testing.T) {
	t.Parallel()

	assert.Equal(t, baseInstruction+"\n\n"+closingInstruction, SystemPrompt(&Context{}))
}

func TestSystemPromptLines(t *testing.T) {
	t.Parallel()

	c := &Context{
		Skills:        []string{"Python", "JavaScript", "SQL"},
		MissingSkills: []string{"Docker", "Kubernetes"},
		JobTitle:      "Senior Software Engineer",
		Experience:    []ExperienceRef{{Title: "Engineer", Company: "Acme"}, {Company: "Globex"}},
		Education:     []EducationRef{{Degree: "BSc Computer Science"}},
	}

	prompt := SystemPrompt(c)

	expected := strings.Join([]string{
		baseInstruction,
		"",
		"User's skills: Python, JavaScript, SQL",
		"Skills the user needs to develop: Docker, Kubernetes",
		"Job user is interested in: Senior Software Engineer",
		"User's experience: Engineer at Acme; Role at Globex",
		"User's education: BSc Computer Science from Institution",
		"",
		closingInstruction,
	}, "\n")

	assert.Equal(t, expected, prompt)
}

func TestContextFromMap(t *testing.T) {
	t.Parallel()

	c, err := ContextFromMap(map[string]any{
		"skills":         []string{"Go"},
		"missing_skills": []any{"Rust"},
		"job_title":      "Backend Developer",
		"experience":     []map[string]any{{"title": "Developer", "company": "Initech"}},
		"education":      []map[string]any{{"degree": "MSc", "institution": "MIT"}},
		"unrelated":      42,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Go"}, c.Skills)
	assert.Equal(t, []string{"Rust"}, c.MissingSkills)
	assert.Equal(t, "Backend Developer", c.JobTitle)
	assert.Equal(t, []ExperienceRef{{Title: "Developer", Company: "Initech"}}, c.Experience)
	assert.Equal(t, []EducationRef{{Degree: "MSc", Institution: "MIT"}}, c.Education)

	empty, err := ContextFromMap(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Lines())
}

func TestContextFromMapRejectsWrongShape(t *testing.T) {
	t.Parallel()

	_, err := ContextFromMap(map[string]any{"experience": "not a list"})
	require.Error(t, err)
}

func TestBuildContext(t *testing.T) {
	t.Parallel()

	profile := resume.NewProfile()
	profile.Skills = []string{"Go", "SQL"}
	profile.Experience = []resume.ExperienceEntry{{Title: "Engineer", Company: "Acme"}}
	profile.Education = []resume.EducationEntry{{Degree: "BSc", Institution: "State University"}}

	job := &ranking.JobMatch{Title: "Data Engineer", MissingSkills: []string{"Spark"}}

	c := BuildContext(profile, job)
	assert.Equal(t, []string{"Go", "SQL"}, c.Skills)
	assert.Equal(t, []string{"Spark"}, c.MissingSkills)
	assert.Equal(t, "Data Engineer", c.JobTitle)
	assert.Equal(t, []ExperienceRef{{Title: "Engineer", Company: "Acme"}}, c.Experience)
	assert.Equal(t, []EducationRef{{Degree: "BSc", Institution: "State University"}}, c.Education)

	assert.Empty(t, BuildContext(nil, nil).Lines())
}
