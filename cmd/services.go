package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spigell/resumatch/internal/ai"
	"github.com/spigell/resumatch/internal/ai/gemini"
	"github.com/spigell/resumatch/internal/catalog"
	"github.com/spigell/resumatch/internal/document"
	"github.com/spigell/resumatch/internal/logger"
	"github.com/spigell/resumatch/internal/ranking"
	"github.com/spigell/resumatch/internal/resume"
	"github.com/spigell/resumatch/internal/secrets"
	"github.com/spigell/resumatch/internal/similarity"
)

const (
	assistantTemperature = 0.7
	entityOutputTokens   = 8192
	apiKeyEnv            = "GEMINI_API_KEY"
)

// services holds the components shared by the commands of one invocation.
type services struct {
	logger      *zap.Logger
	loader      *document.Loader
	parser      *resume.Parser
	recommender *ranking.Recommender
	assistant   ai.Assistant
}

// setup builds the logger and every component the config asks for. AI
// failures degrade to the model-free components.
func setup(ctx context.Context) *services {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	l = logger.WithRequestID(l, uuid.NewString())

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	l.Debug("starting the resumatch", zap.String("version", version))

	svc := &services{
		logger: l,
		loader: document.NewLoader(l),
	}

	generator, embedder, err := newGemini(ctx, config.AI, l)
	if err != nil {
		l.Warn("skipping AI features", zap.Error(err))
	}

	var parserOpts []resume.Option
	if generator != nil {
		maxLog := config.AI.Gemini.MaxLogLength
		svc.assistant = gemini.NewAssistant(generator.WithTemperature(assistantTemperature), maxLog, l)

		if config.Extraction != nil && config.Extraction.Entities {
			parserOpts = append(parserOpts, resume.WithEntityRecognizer(
				gemini.NewEntityRecognizer(generator.WithTemperature(0).WithMaxOutputTokens(entityOutputTokens), maxLog, l),
			))
		}
	}
	svc.parser = resume.NewParser(l, parserOpts...)

	scorer, err := newScorer(ctx, config.Similarity, embedder, l)
	if err != nil {
		l.Fatal("configuring similarity", zap.Error(err))
	}

	svc.recommender = ranking.NewRecommender(catalog.Default(), scorer, config.Ranking, l)

	return svc
}

// newGemini returns nil components without error when AI is disabled.
func newGemini(ctx context.Context, cfg *AIConfig, l *zap.Logger) (*gemini.Generator, similarity.Embedder, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  apiKeyEnv,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or %s)", err, apiKeyEnv)
	}

	var limiter *rate.Limiter
	if cfg.Gemini.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Gemini.RequestsPerSecond), 1)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, limiter,
		l.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries)))
	if err != nil {
		return nil, nil, err
	}

	embedder, err := gemini.NewEmbedder(ctx, apiKey, cfg.Gemini.EmbeddingModel, limiter, l)
	if err != nil {
		return nil, nil, err
	}

	return generator, embedder, nil
}

// newScorer returns a nil scorer when semantic similarity is switched off, so
// ranking falls back to skill matching alone.
func newScorer(ctx context.Context, cfg *SimilarityConfig, embedder similarity.Embedder, l *zap.Logger) (ranking.Scorer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	tiers, err := similarity.DetectTiers(ctx, cfg.Tiers, embedder, l)
	if err != nil {
		return nil, err
	}

	estimator := similarity.NewEstimator(l, tiers...)
	l.Debug("similarity tiers detected", zap.Strings("tiers", estimator.Tiers()))

	return estimator, nil
}

// loadProfile extracts and parses the resume at path. Section failures are
// logged and leave their sections empty.
func (s *services) loadProfile(ctx context.Context, path, kindName string) (*resume.ParsedProfile, error) {
	kind, err := resolveKind(path, kindName)
	if err != nil {
		return nil, err
	}

	text, err := s.loader.LoadFile(path, kind)
	if err != nil {
		return nil, err
	}

	profile, err := s.parser.Parse(ctx, text)
	if err != nil {
		s.logger.Warn("some resume sections could not be extracted", zap.Error(err))
	}

	if profile.IsEmpty() {
		s.logger.Warn("no profile data could be extracted from the resume", zap.String("file", path))
	}

	s.logger.Info("resume loaded",
		zap.String("file", path),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experience", len(profile.Experience)),
		zap.Int("education", len(profile.Education)),
	)

	return profile, nil
}

// resolveKind reports an unknown kind as an *document.ExtractionError, like any
// other document the loader cannot read.
func resolveKind(path, kindName string) (document.Kind, error) {
	var (
		kind document.Kind
		err  error
	)

	requested := strings.TrimSpace(kindName)
	if requested == "" {
		requested = filepath.Ext(path)
		kind, err = document.KindFromPath(path)
	} else {
		kind, err = document.ParseKind(requested)
	}

	if err != nil {
		return "", &document.ExtractionError{
			Kind: document.Kind(strings.ToLower(strings.TrimPrefix(requested, "."))),
			Path: path,
			Err:  err,
		}
	}

	return kind, nil
}
