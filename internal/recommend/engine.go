// Package recommend wires the full recommendation flow: profile extraction,
// concurrent aggregation, normalization, deduplication, ranking and top-N
// selection, run once per candidate population.
package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/logger"
	"github.com/masar-app/recommender/internal/profile"
	"github.com/masar-app/recommender/internal/ranking"
	"github.com/masar-app/recommender/internal/sources"
)

// ErrNoCandidates signals that the live sources and the static fallback both
// yielded nothing to rank. Callers should treat it as an expected empty
// state, not a failure.
var ErrNoCandidates = errors.New("no candidates available")

// Pipeline holds everything one population (courses or jobs) needs. The two
// pipelines are parameterized separately; nothing assumes identical tuning.
type Pipeline struct {
	Kind           catalog.Kind
	Connectors     []sources.Connector
	Fallback       sources.Connector
	Ranker         *ranking.Ranker
	PerSourceLimit int
	TopN           int
}

// Result is the engine's durable output, handed to the result store.
type Result struct {
	Courses     []catalog.ScoredCandidate `json:"courses"`
	Jobs        []catalog.ScoredCandidate `json:"jobs"`
	GeneratedAt time.Time                 `json:"generatedAt"`
}

// Engine runs the recommendation flow for both populations.
type Engine struct {
	aggregator *sources.Aggregator
	normalizer *sources.Normalizer
	courses    Pipeline
	jobs       Pipeline
	maxTerms   int
	logger     *zap.Logger
}

func NewEngine(aggregator *sources.Aggregator, normalizer *sources.Normalizer, courses, jobs Pipeline, maxTerms int, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		aggregator: aggregator,
		normalizer: normalizer,
		courses:    courses,
		jobs:       jobs,
		maxTerms:   maxTerms,
		logger:     logger,
	}
}

// Run produces ranked recommendations for the given raw profile record. A
// cancelled context surfaces as the context error alongside a partial result
// holding whatever had already been ranked; exhausted sources surface as
// ErrNoCandidates only when the static fallback is empty too.
func (e *Engine) Run(ctx context.Context, record map[string]any) (*Result, error) {
	prof := profile.FromRecord(record)
	query := profile.Extract(prof, e.maxTerms)

	e.logger.Info("extracted search query",
		zap.Int("terms", len(query.Keywords)),
		zap.String("raw_text", query.RawText),
	)

	result := &Result{
		Courses:     e.runPipeline(ctx, e.courses, query, prof),
		Jobs:        e.runPipeline(ctx, e.jobs, query, prof),
		GeneratedAt: time.Now().UTC(),
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if len(result.Courses) == 0 && len(result.Jobs) == 0 {
		return nil, ErrNoCandidates
	}

	return result, nil
}

func (e *Engine) runPipeline(ctx context.Context, p Pipeline, query profile.Query, prof profile.UserProfile) []catalog.ScoredCandidate {
	log := e.logger.With(zap.String(logger.FieldKind, string(p.Kind)))

	raw := e.aggregator.Aggregate(ctx, query, p.Connectors, p.PerSourceLimit)

	if len(raw) == 0 && p.Fallback != nil && ctx.Err() == nil {
		log.Info("all live sources empty, using static catalog fallback")

		var err error
		raw, err = p.Fallback.Search(ctx, query, p.PerSourceLimit)
		if err != nil {
			log.Warn("static catalog fallback failed", zap.Error(err))
		}
	}

	candidates := e.normalizer.NormalizeAll(raw)
	log.Info("normalization step",
		zap.Int("initial", len(raw)),
		zap.Int("dropped", len(raw)-len(candidates)),
		zap.Int("left", len(candidates)),
	)

	deduped := catalog.Dedupe(candidates)
	log.Info("deduplication step",
		zap.Int("initial", len(candidates)),
		zap.Int("dropped", len(candidates)-len(deduped)),
		zap.Int("left", len(deduped)),
	)

	ranked := p.Ranker.Rank(ctx, deduped, prof, query)

	top := ranking.SelectTopN(ranked, p.TopN)
	if len(top) > 0 {
		log.Info("ranking step",
			zap.Int("ranked", len(ranked)),
			zap.Int("selected", len(top)),
			zap.String(logger.FieldScorer, string(top[0].ScoreSource)),
		)
	}

	return top
}

// WriteFile persists the result as indented JSON, the hand-off format of the
// result store.
func (r *Result) WriteFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// DumpToTmpFile writes the result to a temporary JSON file and returns its name.
func (r *Result) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "recommendations_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
