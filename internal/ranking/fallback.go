package ranking

import (
	"strings"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

const maxScore = 100

// fallbackScore is the deterministic keyword-overlap score: the sum of the
// weights of every query term found as a case-insensitive substring of the
// candidate's title, description and category, clamped to 100. The weights
// are the extraction tiers, so this stays directionally comparable with the
// semantic scorer.
func fallbackScore(query profile.Query, c catalog.Candidate) float64 {
	text := c.SearchText()

	total := 0
	for _, kw := range query.Keywords {
		if kw.Term == "" {
			continue
		}
		if strings.Contains(text, kw.Term) {
			total += kw.Weight
		}
	}

	if total > maxScore {
		total = maxScore
	}
	return float64(total)
}

// scoreAllFallback scores every candidate with the deterministic tier,
// preserving input order.
func scoreAllFallback(query profile.Query, candidates []catalog.Candidate) []catalog.ScoredCandidate {
	out := make([]catalog.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, catalog.ScoredCandidate{
			Candidate:   c,
			Score:       fallbackScore(query, c),
			ScoreSource: catalog.ScoreFallback,
		})
	}
	return out
}
