package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/masar-app/recommender/internal/ai"
	"github.com/masar-app/recommender/internal/ai/gemini"
	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/logger"
	"github.com/masar-app/recommender/internal/profile"
	"github.com/masar-app/recommender/internal/ranking"
	"github.com/masar-app/recommender/internal/recommend"
	"github.com/masar-app/recommender/internal/secrets"
	"github.com/masar-app/recommender/internal/sources"

	"go.uber.org/zap"
)

// buildEngine assembles the full recommendation engine from the parsed
// config. A missing RapidAPI key downgrades the live connectors instead of
// failing: the static catalog fallback still produces recommendations.
func buildEngine(ctx context.Context, config *Config, logger *zap.Logger) (*recommend.Engine, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	srcCfg := config.Sources
	if srcCfg == nil {
		srcCfg = &SourcesConfig{StaticFallback: true}
	}

	var client *sources.Client
	apiKey, err := resolveRapidAPIKey(srcCfg)
	if err != nil {
		logger.Warn("live catalog sources disabled",
			zap.Error(err),
			zap.String("hint", "set RAPIDAPI_KEY_FILE environment variable or the 'sources.rapidapi-key-file' key in the configuration file"),
		)
	} else {
		client = sources.NewClient(apiKey, logger)
	}

	courseConnectors := buildCourseConnectors(client, srcCfg)
	jobConnectors := buildJobConnectors(client, srcCfg)

	scorer, err := buildScorer(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("semantic scoring disabled, keyword scorer only", zap.Error(err))
	}

	maxCandidates := 0
	model := ""
	if config.AI != nil && config.AI.Gemini != nil {
		maxCandidates = config.AI.Gemini.MaxCandidates
		model = config.AI.Gemini.Model
	}

	courses := buildPipeline(catalog.KindCourse, courseConnectors, config.Courses, srcCfg.StaticFallback, scorer, maxCandidates, model, logger)
	jobs := buildPipeline(catalog.KindJob, jobConnectors, config.Jobs, srcCfg.StaticFallback, scorer, maxCandidates, model, logger)

	aggregator := sources.NewAggregator(srcCfg.Timeout, logger)
	normalizer := sources.NewNormalizer(logger)

	maxTerms := config.MaxTerms
	if maxTerms <= 0 {
		maxTerms = profile.DefaultMaxTerms
	}

	return recommend.NewEngine(aggregator, normalizer, courses, jobs, maxTerms, logger), nil
}

func buildCourseConnectors(client *sources.Client, cfg *SourcesConfig) []sources.Connector {
	if client == nil {
		return nil
	}

	connectors := []sources.Connector{
		sources.NewUdemy(client, cfg.Udemy),
		sources.NewCoursera(client, cfg.Coursera),
		sources.NewClassCentral(client, cfg.ClassCentral),
	}

	return wrapAll(connectors, cfg.Breaker)
}

func buildJobConnectors(client *sources.Client, cfg *SourcesConfig) []sources.Connector {
	if client == nil {
		return nil
	}

	connectors := []sources.Connector{
		sources.NewJobsAPI(client, cfg.JobsAPI),
		sources.NewIndeed(client, cfg.Indeed),
		sources.NewLinkedIn(client, cfg.LinkedIn),
	}

	return wrapAll(connectors, cfg.Breaker)
}

func wrapAll(connectors []sources.Connector, cfg sources.BreakerConfig) []sources.Connector {
	out := make([]sources.Connector, 0, len(connectors))
	for _, c := range connectors {
		out = append(out, sources.WithBreaker(c, cfg))
	}
	return out
}

func buildPipeline(kind catalog.Kind, connectors []sources.Connector, cfg *PipelineConfig, staticFallback bool, scorer ai.Scorer, maxCandidates int, model string, zapLogger *zap.Logger) recommend.Pipeline {
	rankLogger := logger.WithFields(zapLogger, logger.PipelineFields(string(kind), model)...)

	p := recommend.Pipeline{
		Kind:       kind,
		Connectors: connectors,
		Ranker:     ranking.NewRanker(scorer, maxCandidates, rankLogger),
		TopN:       ranking.DefaultTopN,
	}

	if cfg != nil {
		p.TopN = cfg.TopN
		p.PerSourceLimit = cfg.PerSourceLimit
	}

	if staticFallback {
		p.Fallback = sources.NewStatic(kind, true)
	}

	return p
}

func buildScorer(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Scorer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai scoring is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewScorer(generator, cfg.Gemini.MaxLogLength, genLogger), nil
}

func resolveRapidAPIKey(cfg *SourcesConfig) (string, error) {
	return secrets.Load(secrets.Source{
		Name: "rapidapi key",
		File: strings.TrimSpace(cfg.RapidAPIKeyFile),
		Env:  "RAPIDAPI_KEY",
	})
}
