package resume

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SectionError reports an isolated failure of one section extractor. The
// affected section is left empty.
type SectionError struct {
	Section Section
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }

// extractor fills its own disjoint part of the profile.
type extractor struct {
	section Section
	run     func(ctx context.Context, text string, p *ParsedProfile)
}

// Parser runs all section extractors over a resume text.
type Parser struct {
	logger     *zap.Logger
	vocab      *Vocabulary
	recognizer EntityRecognizer
	extractors []extractor
}

type Option func(*Parser)

// WithVocabulary replaces the embedded skill vocabulary.
func WithVocabulary(v *Vocabulary) Option {
	return func(p *Parser) {
		if v != nil {
			p.vocab = v
		}
	}
}

// WithEntityRecognizer sets the recognizer used for skill entities. A nil
// recognizer disables entity-based skills.
func WithEntityRecognizer(r EntityRecognizer) Option {
	return func(p *Parser) {
		p.recognizer = r
	}
}

func NewParser(logger *zap.Logger, opts ...Option) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Parser{
		logger:     logger,
		vocab:      DefaultVocabulary(),
		recognizer: CapitalizedSpanRecognizer{},
	}
	for _, opt := range opts {
		opt(p)
	}

	p.extractors = []extractor{
		{section: SectionContact, run: func(_ context.Context, text string, out *ParsedProfile) {
			c := ExtractContact(text)
			out.Name, out.Email, out.Phone = c.Name, c.Email, c.Phone
			out.LinkedIn, out.GitHub, out.Location = c.LinkedIn, c.GitHub, c.Location
		}},
		{section: SectionSkills, run: func(ctx context.Context, text string, out *ParsedProfile) {
			out.Skills = extractSkills(text, p.vocab, p.recognizeSkillEntities(ctx, text))
		}},
		{section: SectionEducation, run: func(_ context.Context, text string, out *ParsedProfile) {
			out.Education = ExtractEducation(text)
		}},
		{section: SectionExperience, run: func(_ context.Context, text string, out *ParsedProfile) {
			out.Experience = ExtractExperience(text)
		}},
		{section: SectionSummary, run: func(_ context.Context, text string, out *ParsedProfile) {
			out.Summary = ExtractSummary(text)
		}},
		{section: SectionProjects, run: func(_ context.Context, text string, out *ParsedProfile) {
			out.Projects = ExtractProjects(text)
		}},
		{section: SectionCertifications, run: func(_ context.Context, text string, out *ParsedProfile) {
			out.Certifications = ExtractCertifications(text)
		}},
		{section: SectionPublications, run: func(_ context.Context, text string, out *ParsedProfile) {
			out.Publications = ExtractPublications(text)
		}},
		{section: SectionLanguages, run: func(_ context.Context, text string, out *ParsedProfile) {
			out.Languages = ExtractLanguages(text)
		}},
	}

	return p
}

// Parse extracts every section concurrently. The returned profile is never nil;
// sections whose extractor failed stay empty and their failures are combined
// into the returned error.
func (p *Parser) Parse(ctx context.Context, text string) (*ParsedProfile, error) {
	profile := NewProfile()

	// each extractor writes into its own copy; fields are merged after Wait
	partial := make([]*ParsedProfile, len(p.extractors))
	errs := make([]error, len(p.extractors))

	var g errgroup.Group
	for i, ex := range p.extractors {
		g.Go(func() error {
			out := NewProfile()
			if err := runExtractor(ctx, ex, text, out); err != nil {
				errs[i] = err
				return nil
			}
			partial[i] = out
			return nil
		})
	}
	_ = g.Wait()

	for i, ex := range p.extractors {
		if partial[i] == nil {
			p.logger.Warn("section extraction failed, leaving it empty",
				zap.String("section", string(ex.section)),
				zap.Error(errs[i]),
			)
			continue
		}
		merge(profile, partial[i], ex.section)
	}

	p.logger.Debug("resume parsed",
		zap.Int("text_length", len(text)),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experience", len(profile.Experience)),
		zap.Int("education", len(profile.Education)),
		zap.Int("certifications", len(profile.Certifications)),
		zap.Int("projects", len(profile.Projects)),
		zap.Int("publications", len(profile.Publications)),
		zap.Int("languages", len(profile.Languages)),
	)

	return profile, multierr.Combine(errs...)
}

func runExtractor(ctx context.Context, ex extractor, text string, out *ParsedProfile) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SectionError{Section: ex.section, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return &SectionError{Section: ex.section, Err: err}
	}

	ex.run(ctx, text, out)
	return nil
}

func merge(dst, src *ParsedProfile, section Section) {
	switch section {
	case SectionContact:
		dst.Name, dst.Email, dst.Phone = src.Name, src.Email, src.Phone
		dst.LinkedIn, dst.GitHub, dst.Location = src.LinkedIn, src.GitHub, src.Location
	case SectionSkills:
		dst.Skills = src.Skills
	case SectionEducation:
		dst.Education = src.Education
	case SectionExperience:
		dst.Experience = src.Experience
	case SectionSummary:
		dst.Summary = src.Summary
	case SectionProjects:
		dst.Projects = src.Projects
	case SectionCertifications:
		dst.Certifications = src.Certifications
	case SectionPublications:
		dst.Publications = src.Publications
	case SectionLanguages:
		dst.Languages = src.Languages
	}
}
