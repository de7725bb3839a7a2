package ranking

import (
	"sort"

	"github.com/masar-app/recommender/internal/catalog"
)

// DefaultTopN bounds the result set handed to the result store.
const DefaultTopN = 3

// SelectTopN orders the scored candidates by descending score with stable
// tie-breaking (first-seen input order wins) and truncates to n. It never
// errors; fewer than n candidates are returned as-is. Ranks are reassigned as
// a strict gap-free 1..len ordering.
func SelectTopN(scored []catalog.ScoredCandidate, n int) []catalog.ScoredCandidate {
	if n <= 0 {
		n = DefaultTopN
	}

	out := make([]catalog.ScoredCandidate, len(scored))
	copy(out, scored)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > n {
		out = out[:n]
	}

	for i := range out {
		out[i].Rank = i + 1
	}

	return out
}
