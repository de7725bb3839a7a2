// Package ranking orders candidates by relevance to a user profile using a
// two-tier strategy: a semantic scorer first, degrading to a deterministic
// keyword-weight scorer whenever the semantic result cannot be trusted.
package ranking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/masar-app/recommender/internal/ai"
	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

// DefaultMaxSemanticCandidates bounds the batch sent to the semantic scorer.
const DefaultMaxSemanticCandidates = 40

// Ranker orchestrates the two scoring tiers for one candidate population.
// Course and job pipelines each hold their own Ranker so the two can be tuned
// independently.
type Ranker struct {
	scorer        ai.Scorer
	maxCandidates int
	logger        *zap.Logger
}

func NewRanker(scorer ai.Scorer, maxCandidates int, logger *zap.Logger) *Ranker {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxSemanticCandidates
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{
		scorer:        scorer,
		maxCandidates: maxCandidates,
		logger:        logger,
	}
}

// Rank scores every candidate against the profile and returns them ordered by
// descending score, ties broken by input order. The query must be the one
// extracted from the same profile upstream; it drives the deterministic tier.
// The semantic tier is tried first when a scorer is configured; any failure or
// validation violation discards the entire semantic result and the
// deterministic tier scores everything, so one list never mixes two scoring
// scales.
func (r *Ranker) Rank(ctx context.Context, candidates []catalog.Candidate, prof profile.UserProfile, query profile.Query) []catalog.ScoredCandidate {
	if len(candidates) == 0 {
		return nil
	}

	if r.scorer != nil {
		scored, err := r.rankSemantic(ctx, candidates, prof)
		if err == nil {
			return SelectTopN(scored, len(scored))
		}
		r.logger.Warn("semantic scoring discarded, using fallback scorer",
			zap.Int("candidates", len(candidates)),
			zap.Error(err),
		)
	}

	return SelectTopN(scoreAllFallback(query, candidates), len(candidates))
}

func (r *Ranker) rankSemantic(ctx context.Context, candidates []catalog.Candidate, prof profile.UserProfile) ([]catalog.ScoredCandidate, error) {
	briefs := make([]ai.CandidateBrief, 0, len(candidates))
	for _, c := range candidates {
		briefs = append(briefs, ai.CandidateBrief{
			ID:               c.ID,
			Title:            c.Title,
			ShortDescription: c.Description,
		})
	}

	resp, err := r.scorer.ScoreCandidates(ctx, &ai.ScoreRequest{
		ProfileSummary: prof.Summary(),
		Candidates:     briefs,
		MaxCandidates:  r.maxCandidates,
	})
	if err != nil {
		return nil, err
	}

	byID, err := validateScores(resp, candidates)
	if err != nil {
		return nil, err
	}

	scored := make([]catalog.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, catalog.ScoredCandidate{
			Candidate:   c,
			Score:       byID[c.ID],
			ScoreSource: catalog.ScoreSemantic,
		})
	}
	return scored, nil
}

// validateScores enforces the strict response gate: every referenced id must
// exist in the input set and every score must be within [0,100]. Partial
// trust is not allowed; any violation fails the whole result. Candidates the
// scorer left out simply score zero.
func validateScores(resp *ai.ScoreResponse, candidates []catalog.Candidate) (map[string]float64, error) {
	if resp == nil {
		return nil, fmt.Errorf("semantic scorer returned no response")
	}
	if len(resp.Scores) == 0 {
		return nil, fmt.Errorf("semantic scorer returned no scores")
	}

	known := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		known[c.ID] = struct{}{}
	}

	byID := make(map[string]float64, len(resp.Scores))
	for _, entry := range resp.Scores {
		if _, ok := known[entry.ID]; !ok {
			return nil, fmt.Errorf("semantic scorer referenced unknown id %q", entry.ID)
		}
		if entry.Score < 0 || entry.Score > 100 {
			return nil, fmt.Errorf("semantic score %d for %q out of range", entry.Score, entry.ID)
		}
		byID[entry.ID] = float64(entry.Score)
	}

	return byID, nil
}
