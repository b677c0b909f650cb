package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		profile  []string
		job      []string
		score    int
		matching []string
		missing  []string
	}{
		{
			name:     "partial overlap keeps job order",
			profile:  []string{"SQL", "Python"},
			job:      []string{"Python", "Docker", "SQL"},
			score:    67,
			matching: []string{"Python", "SQL"},
			missing:  []string{"Docker"},
		},
		{
			name:     "case insensitive",
			profile:  []string{"node.js", "REACT"},
			job:      []string{"React", "Node.js"},
			score:    100,
			matching: []string{"React", "Node.js"},
			missing:  []string{},
		},
		{
			name:     "empty job skills",
			profile:  []string{"Go"},
			job:      nil,
			score:    0,
			matching: []string{},
			missing:  []string{},
		},
		{
			name:     "empty profile",
			profile:  nil,
			job:      []string{"Go", "SQL"},
			score:    0,
			matching: []string{},
			missing:  []string{"Go", "SQL"},
		},
		{
			name:     "rounds half up",
			profile:  []string{"a"},
			job:      []string{"a", "b", "c", "d", "e", "f", "g", "h"},
			score:    13,
			matching: []string{"a"},
			missing:  []string{"b", "c", "d", "e", "f", "g", "h"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Match(tt.profile, tt.job)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.matching, got.Matching)
			assert.Equal(t, tt.missing, got.Missing)
		})
	}
}

func TestMatchProperties(t *testing.T) {
	t.Parallel()

	pool := []string{"Go", "SQL", "Docker", "AWS", "Python", "React"}

	// every subset of pool as job skills against every prefix of pool as profile
	for mask := 1; mask < 1<<len(pool); mask++ {
		var job []string
		for i, s := range pool {
			if mask&(1<<i) != 0 {
				job = append(job, s)
			}
		}

		for n := 0; n <= len(pool); n++ {
			profile := pool[:n]
			res := Match(profile, job)

			assert.GreaterOrEqual(t, res.Score, 0)
			assert.LessOrEqual(t, res.Score, 100)
			assert.Len(t, append(append([]string{}, res.Matching...), res.Missing...), len(job))

			covered := len(res.Missing) == 0
			assert.Equal(t, covered, res.Score == 100, fmt.Sprintf("profile=%v job=%v", profile, job))
		}

		assert.Equal(t, 0, Match(nil, job).Score)
	}

	assert.Equal(t, 0, Match(pool, nil).Score)
	assert.Equal(t, 0, Match(pool, []string{}).Score)
}

func TestMatchNeverRoundsUpToFullCoverage(t *testing.T) {
	t.Parallel()

	job := make([]string, 200)
	for i := range job {
		job[i] = fmt.Sprintf("skill-%d", i)
	}

	res := Match(job[:199], job)
	assert.Equal(t, 99, res.Score)
	assert.Equal(t, []string{"skill-199"}, res.Missing)
}
