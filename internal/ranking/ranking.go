// Package ranking orders catalog jobs by how well they fit a parsed profile.
package ranking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resumatch/internal/catalog"
	"github.com/spigell/resumatch/internal/matching"
	"github.com/spigell/resumatch/internal/resume"
)

// Scorer estimates textual similarity on a 0..100 scale.
type Scorer interface {
	Similarity(ctx context.Context, a, b string) float64
}

type Config struct {
	Limit          int     `mapstructure:"limit"`
	SkillWeight    float64 `mapstructure:"skill-weight"`
	SemanticWeight float64 `mapstructure:"semantic-weight"`
	Workers        int     `mapstructure:"workers"`
}

func DefaultConfig() Config {
	return Config{Limit: 5, SkillWeight: 0.7, SemanticWeight: 0.3, Workers: 4}
}

type JobMatch struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	MatchScore      int      `json:"match_score"`
	SkillMatchScore int      `json:"skill_match_score"`
	SemanticScore   int      `json:"semantic_score"`
	MatchingSkills  []string `json:"matching_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

type Recommendation struct {
	Jobs     []JobMatch `json:"jobs"`
	Insights Insights   `json:"insights"`
}

// Empty is the degraded result returned when ranking fails.
func Empty() Recommendation {
	return Recommendation{Jobs: []JobMatch{}, Insights: emptyInsights()}
}

type Recommender struct {
	jobs   []catalog.JobPosting
	scorer Scorer
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewRecommender ranks the given jobs. A nil scorer ranks by skill match alone.
func NewRecommender(jobs []catalog.JobPosting, scorer Scorer, cfg Config, logger *zap.Logger) *Recommender {
	if logger == nil {
		logger = zap.NewNop()
	}

	def := DefaultConfig()
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.SkillWeight <= 0 && cfg.SemanticWeight <= 0 {
		cfg.SkillWeight, cfg.SemanticWeight = def.SkillWeight, def.SemanticWeight
	}

	return &Recommender{
		jobs:   jobs,
		scorer: scorer,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Rank scores every job, sorts by combined score (catalog order breaks ties)
// and keeps the top entries. It never fails: any error or panic while scoring
// yields Empty().
func (r *Recommender) Rank(ctx context.Context, profile *resume.ParsedProfile) (rec Recommendation) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("ranking failed, returning empty recommendation", zap.Any("panic", p))
			rec = Empty()
		}
	}()

	if profile == nil {
		profile = resume.NewProfile()
	}

	matches, err := r.score(ctx, profile)
	if err != nil {
		r.logger.Error("ranking failed, returning empty recommendation", zap.Error(err))
		return Empty()
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > r.cfg.Limit {
		matches = matches[:r.cfg.Limit]
	}

	rec = Recommendation{Jobs: matches, Insights: buildInsights(profile, r.now())}

	r.logger.Info("jobs ranked",
		zap.Int("catalog_size", len(r.jobs)),
		zap.Int("returned", len(rec.Jobs)),
		zap.Bool("semantic", r.scorer != nil),
		zap.String("experience_level", rec.Insights.ExperienceLevel),
		zap.String("relevant_industry", rec.Insights.RelevantIndustry),
	)

	return rec
}

// Score rates the profile against the catalog job with the given id, outside
// of any ranking cut-off.
func (r *Recommender) Score(ctx context.Context, profile *resume.ParsedProfile, id int) (JobMatch, bool) {
	job, ok := catalog.Find(r.jobs, id)
	if !ok {
		return JobMatch{}, false
	}
	if profile == nil {
		profile = resume.NewProfile()
	}

	return r.scoreJob(ctx, profile.Skills, ProfileText(profile), job), true
}

// score evaluates jobs concurrently; each result lands at its catalog index.
func (r *Recommender) score(ctx context.Context, profile *resume.ParsedProfile) ([]JobMatch, error) {
	matches := make([]JobMatch, len(r.jobs))
	profileText := ProfileText(profile)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i, job := range r.jobs {
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("score job %d: panic: %v", job.ID, p)
				}
			}()

			matches[i] = r.scoreJob(ctx, profile.Skills, profileText, job)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return matches, nil
}

func (r *Recommender) scoreJob(ctx context.Context, skills []string, profileText string, job catalog.JobPosting) JobMatch {
	skill := matching.Match(skills, job.RequiredSkills)

	combined := float64(skill.Score)
	semantic := 0.0
	if r.scorer != nil {
		semantic = r.scorer.Similarity(ctx, profileText, JobText(job))
		combined = r.cfg.SkillWeight*float64(skill.Score) + r.cfg.SemanticWeight*semantic
	}

	m := JobMatch{
		ID:              job.ID,
		Title:           job.Title,
		Company:         job.Company,
		Location:        job.Location,
		Description:     job.Description,
		MatchScore:      int(math.Round(combined)),
		SkillMatchScore: skill.Score,
		SemanticScore:   int(math.Round(semantic)),
		MatchingSkills:  skill.Matching,
		MissingSkills:   skill.Missing,
	}

	r.logger.Debug("job scored",
		zap.Int("job_id", job.ID),
		zap.Int("match_score", m.MatchScore),
		zap.Int("skill_match_score", m.SkillMatchScore),
		zap.Int("semantic_score", m.SemanticScore),
	)

	return m
}

// JobText is the blob compared against the profile: title, description and skills.
func JobText(job catalog.JobPosting) string {
	return strings.Join([]string{job.Title, job.Description, strings.Join(job.RequiredSkills, " ")}, " ")
}

// ProfileText is the profile side of the comparison: summary, experience
// titles and descriptions, then skills.
func ProfileText(p *resume.ParsedProfile) string {
	parts := []string{p.Summary}
	for _, e := range p.Experience {
		parts = append(parts, e.Description, e.Title)
	}
	parts = append(parts, strings.Join(p.Skills, " "))

	return strings.TrimSpace(strings.Join(strings.Fields(strings.Join(parts, " ")), " "))
}
