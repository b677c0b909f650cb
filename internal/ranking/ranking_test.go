package ranking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resumatch/internal/catalog"
	"github.com/spigell/resumatch/internal/resume"
	"github.com/spigell/resumatch/internal/similarity"
)

type constScorer float64

func (c constScorer) Similarity(context.Context, string, string) float64 { return float64(c) }

type panicScorer struct{}

func (panicScorer) Similarity(context.Context, string, string) float64 { panic("scorer exploded") }

func fixedNow() time.Time {
	return time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
}

func profileWithSkills(skills ...string) *resume.ParsedProfile {
	p := resume.NewProfile()
	p.Skills = skills
	return p
}

func TestRankSkillPartition(t *testing.T) {
	t.Parallel()

	jobs := []catalog.JobPosting{{ID: 10, Title: "Platform Engineer", RequiredSkills: []string{"Python", "Docker", "SQL"}}}
	rec := NewRecommender(jobs, nil, Config{}, nil).Rank(context.Background(), profileWithSkills("Python", "SQL"))

	require.Len(t, rec.Jobs, 1)
	job := rec.Jobs[0]
	assert.Equal(t, 10, job.ID)
	assert.Equal(t, []string{"Python", "SQL"}, job.MatchingSkills)
	assert.Equal(t, []string{"Docker"}, job.MissingSkills)
	assert.Equal(t, 67, job.SkillMatchScore)
	assert.Equal(t, 67, job.MatchScore)
	assert.Equal(t, 0, job.SemanticScore)
}

func TestRankCombinesSemanticScore(t *testing.T) {
	t.Parallel()

	jobs := []catalog.JobPosting{{ID: 1, RequiredSkills: []string{"Python", "Docker", "SQL"}}}
	rec := NewRecommender(jobs, constScorer(50), DefaultConfig(), nil).Rank(context.Background(), profileWithSkills("python", "sql"))

	require.Len(t, rec.Jobs, 1)
	// 0.7*67 + 0.3*50
	assert.Equal(t, 62, rec.Jobs[0].MatchScore)
	assert.Equal(t, 67, rec.Jobs[0].SkillMatchScore)
	assert.Equal(t, 50, rec.Jobs[0].SemanticScore)
}

func TestRankEmptyProfileAgainstCatalog(t *testing.T) {
	t.Parallel()

	scorers := map[string]Scorer{
		"skill only": nil,
		"estimator":  similarity.NewEstimator(nil, similarity.TFIDF{}),
	}

	for name, scorer := range scorers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec := NewRecommender(catalog.Default(), scorer, DefaultConfig(), nil).Rank(context.Background(), resume.NewProfile())
			require.Len(t, rec.Jobs, 5)
			for i, job := range rec.Jobs {
				assert.Equal(t, i+1, job.ID)
				assert.Zero(t, job.MatchScore)
				assert.Zero(t, job.SkillMatchScore)
				assert.Empty(t, job.MatchingSkills)
				assert.NotEmpty(t, job.MissingSkills)
			}

			assert.Equal(t, LevelEntry, rec.Insights.ExperienceLevel)
			assert.Equal(t, "Technology", rec.Insights.RelevantIndustry)
			assert.Empty(t, rec.Insights.TopSkills)
			assert.NotNil(t, rec.Insights.TopSkills)
			assert.Zero(t, rec.Insights.SkillCount)
		})
	}
}

func TestRankNilProfile(t *testing.T) {
	t.Parallel()

	rec := NewRecommender(catalog.Default(), nil, DefaultConfig(), nil).Rank(context.Background(), nil)
	assert.Len(t, rec.Jobs, 5)
}

func TestRankOrdering(t *testing.T) {
	t.Parallel()

	jobs := []catalog.JobPosting{
		{ID: 1, RequiredSkills: []string{"Java"}},
		{ID: 2, RequiredSkills: []string{"Go", "Java"}},
		{ID: 3, RequiredSkills: []string{"Go"}},
		{ID: 4, RequiredSkills: []string{"SQL", "Go"}},
		{ID: 5, RequiredSkills: []string{"Rust"}},
	}

	rec := NewRecommender(jobs, nil, Config{Limit: 4, Workers: 2}, nil).Rank(context.Background(), profileWithSkills("Go"))

	ids := make([]int, 0, len(rec.Jobs))
	for _, job := range rec.Jobs {
		ids = append(ids, job.ID)
	}
	assert.Equal(t, []int{3, 2, 4, 1}, ids)
}

func TestRankRecoversFromPanics(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.ErrorLevel)
	rec := NewRecommender(catalog.Default(), panicScorer{}, DefaultConfig(), zap.New(core)).
		Rank(context.Background(), profileWithSkills("Go"))

	assert.Equal(t, Empty(), rec)
	assert.Empty(t, rec.Jobs)
	assert.NotNil(t, rec.Jobs)
	assert.Equal(t, Unknown, rec.Insights.ExperienceLevel)
	assert.Equal(t, Unknown, rec.Insights.RelevantIndustry)
	assert.Equal(t, 1, observed.FilterMessage("ranking failed, returning empty recommendation").Len())
}

func TestScoreSingleJob(t *testing.T) {
	t.Parallel()

	r := NewRecommender(catalog.Default(), nil, Config{Limit: 1}, nil)
	p := profileWithSkills("Python", "SQL")

	m, ok := r.Score(context.Background(), p, 1)
	require.True(t, ok)
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, []string{"Python", "SQL"}, m.MatchingSkills)
	assert.Equal(t, m.SkillMatchScore, m.MatchScore)

	_, ok = r.Score(context.Background(), p, 999)
	assert.False(t, ok)

	_, ok = r.Score(context.Background(), nil, 1)
	assert.True(t, ok)
}

func TestInsights(t *testing.T) {
	t.Parallel()

	p := profileWithSkills("AWS", "Docker", "Go", "Kubernetes", "Python", "SQL")
	p.Experience = []resume.ExperienceEntry{
		{Title: "Software Developer", DateRangeText: "Jan 2020 - Present", Description: "Built web services"},
		{Title: "Analyst", DateRangeText: "Mar 2016 - Dec 2019"},
		{Title: "Intern", DateRangeText: "Summer"},
	}

	r := NewRecommender(catalog.Default(), nil, DefaultConfig(), nil)
	r.now = fixedNow

	rec := r.Rank(context.Background(), p)
	assert.Equal(t, LevelSenior, rec.Insights.ExperienceLevel)
	assert.Equal(t, "Technology", rec.Insights.RelevantIndustry)
	assert.Equal(t, []string{"AWS", "Docker", "Go", "Kubernetes", "Python"}, rec.Insights.TopSkills)
	assert.Equal(t, 6, rec.Insights.SkillCount)
}

func TestExperienceYears(t *testing.T) {
	t.Parallel()

	now := fixedNow()
	tests := []struct {
		ranges []string
		want   int
		level  string
	}{
		{ranges: nil, want: 0, level: LevelEntry},
		{ranges: []string{"2018 - 2019"}, want: 1, level: LevelEntry},
		{ranges: []string{"Jan 2022 - Present"}, want: 4, level: LevelMid},
		{ranges: []string{"2015 - 2018", "2018 - 2020"}, want: 5, level: LevelSenior},
		{ranges: []string{"2021 - 2019", "Spring", "2010"}, want: 0, level: LevelEntry},
		{ranges: []string{"1998 - 2001"}, want: 3, level: LevelMid},
		{ranges: []string{"05/2024 to current"}, want: 2, level: LevelMid},
	}

	for _, tt := range tests {
		entries := make([]resume.ExperienceEntry, 0, len(tt.ranges))
		for _, r := range tt.ranges {
			entries = append(entries, resume.ExperienceEntry{DateRangeText: r})
		}

		years := ExperienceYears(entries, now)
		assert.Equal(t, tt.want, years, "%v", tt.ranges)
		assert.Equal(t, tt.level, experienceLevel(years), "%v", tt.ranges)
	}
}

func TestRelevantIndustry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		desc string
		want string
	}{
		{name: "no hits", desc: "Walked dogs", want: "Technology"},
		{name: "finance", desc: "Managed bank accounting and investment portfolios", want: "Finance"},
		{name: "tie goes to first declared", desc: "bank and hospital", want: "Finance"},
		{name: "acronym is case sensitive", desc: "it was a clinical patient ward", want: "Healthcare"},
		{name: "keyword starts a word", desc: "cleared cobwebs from the storeroom", want: "Retail"},
		{name: "plural forms", desc: "Cared for patients across three hospitals", want: "Healthcare"},
		{name: "inflections outweigh a single hit", desc: "Supported investments for retail banks", want: "Finance"},
		{name: "acronym needs whole word", desc: "ITEMS shipped from the factory", want: "Manufacturing"},
		{name: "retail", desc: "customer service and retail sales", want: "Retail"},
	}

	for _, tt := range tests {
		got := relevantIndustry([]resume.ExperienceEntry{{Description: tt.desc}})
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestTexts(t *testing.T) {
	t.Parallel()

	job := catalog.JobPosting{Title: "Data Scientist", Description: "Models.", RequiredSkills: []string{"Python", "SQL"}}
	assert.Equal(t, "Data Scientist Models. Python SQL", JobText(job))

	p := profileWithSkills("Go", "SQL")
	p.Summary = "Backend engineer."
	p.Experience = []resume.ExperienceEntry{{Title: "Developer", Description: "Built APIs\nWrote tests"}}
	assert.Equal(t, "Backend engineer. Built APIs Wrote tests Developer Go SQL", ProfileText(p))

	assert.Equal(t, "", ProfileText(resume.NewProfile()))
}
