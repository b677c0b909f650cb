// Package matching scores how well a skill set covers a job's required skills.
package matching

import (
	"math"
	"strings"
)

// Result partitions the job skills by membership in the profile skills. Matching
// and Missing keep the job's ordering.
type Result struct {
	Score    int      `json:"score"`
	Matching []string `json:"matching_skills"`
	Missing  []string `json:"missing_skills"`
}

// Match compares skills case-insensitively. Score is the rounded percentage of
// job skills present in the profile, and 0 when either side is empty.
func Match(profileSkills, jobSkills []string) Result {
	have := make(map[string]struct{}, len(profileSkills))
	for _, s := range profileSkills {
		if key := key(s); key != "" {
			have[key] = struct{}{}
		}
	}

	res := Result{Matching: []string{}, Missing: []string{}}
	for _, s := range jobSkills {
		if _, ok := have[key(s)]; ok {
			res.Matching = append(res.Matching, s)
		} else {
			res.Missing = append(res.Missing, s)
		}
	}

	if len(have) == 0 || len(jobSkills) == 0 {
		return res
	}

	res.Score = int(math.Round(float64(len(res.Matching)) / float64(len(jobSkills)) * 100))
	// 100 is reserved for full coverage; 199 of 200 would otherwise round up
	if res.Score == 100 && len(res.Missing) > 0 {
		res.Score = 99
	}
	return res
}

func key(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
