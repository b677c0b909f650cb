// Package catalog holds the fixed, in-memory list of job postings.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type JobPosting struct {
	ID             int      `yaml:"id" json:"id"`
	Title          string   `yaml:"title" json:"title"`
	Company        string   `yaml:"company" json:"company"`
	Location       string   `yaml:"location" json:"location"`
	Description    string   `yaml:"description" json:"description"`
	RequiredSkills []string `yaml:"required_skills" json:"required_skills"`
}

type file struct {
	Jobs []JobPosting `yaml:"jobs"`
}

var defaultJobs = sync.OnceValue(func() []JobPosting {
	jobs, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded job catalog: %v", err))
	}
	return jobs
})

// Default returns a copy of the embedded catalog in declaration order.
func Default() []JobPosting {
	jobs := defaultJobs()
	out := make([]JobPosting, len(jobs))
	for i, job := range jobs {
		job.RequiredSkills = append([]string(nil), job.RequiredSkills...)
		out[i] = job
	}
	return out
}

// Parse decodes a YAML catalog and checks that ids are unique.
func Parse(data []byte) ([]JobPosting, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[int]bool, len(f.Jobs))
	for _, job := range f.Jobs {
		if seen[job.ID] {
			return nil, fmt.Errorf("duplicate job id %d", job.ID)
		}
		seen[job.ID] = true
	}

	return f.Jobs, nil
}

// Find returns the posting with the given id.
func Find(jobs []JobPosting, id int) (JobPosting, bool) {
	for _, job := range jobs {
		if job.ID == id {
			return job, true
		}
	}
	return JobPosting{}, false
}
