package profile

import (
	"sort"
	"strings"
)

// Weight tiers assigned by term provenance. The fallback scorer reuses the
// same values so both scoring tiers stay directionally comparable.
const (
	WeightHigh   = 30
	WeightMedium = 20
	WeightLow    = 10
)

// DefaultMaxTerms bounds the query size handed to catalog sources.
const DefaultMaxTerms = 12

// WeightedTerm is a normalized search term with its provenance weight.
type WeightedTerm struct {
	Term   string
	Weight int
}

// Query is the weighted search query extracted from a profile. Keywords keep
// first-seen order; RawText joins them weight-descending for sources that only
// accept free text.
type Query struct {
	Keywords []WeightedTerm
	RawText  string
}

// IsEmpty reports whether the query carries no terms at all.
func (q Query) IsEmpty() bool {
	return len(q.Keywords) == 0
}

// Weight returns the weight recorded for the given term, matching
// case-insensitively. Unknown terms weigh zero.
func (q Query) Weight(term string) int {
	needle := normalizeTerm(term)
	for _, kw := range q.Keywords {
		if kw.Term == needle {
			return kw.Weight
		}
	}
	return 0
}

// Extract turns a profile snapshot into a weighted query. It is a pure
// function: absent fields contribute no terms and the result for an empty
// profile is an empty query. Terms are deduplicated case-insensitively with
// the highest weight winning; first-seen order is preserved for determinism.
func Extract(p UserProfile, maxTerms int) Query {
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}

	type entry struct {
		term   string
		weight int
		seen   int
	}

	index := make(map[string]*entry)
	order := make([]*entry, 0, 16)

	add := func(term string, weight int) {
		term = normalizeTerm(term)
		if term == "" {
			return
		}
		if existing, ok := index[term]; ok {
			if weight > existing.weight {
				existing.weight = weight
			}
			return
		}
		e := &entry{term: term, weight: weight, seen: len(order)}
		index[term] = e
		order = append(order, e)
	}

	// Priority order mirrors the weight tiers: the most specific signals
	// first so they survive the term cap.
	add(p.DreamJob, WeightHigh)
	for _, field := range p.DesiredFields {
		add(field, WeightHigh)
	}
	for _, field := range p.FieldExperience {
		add(field, WeightMedium)
	}
	for _, skill := range p.TechnicalSkills {
		add(skill, WeightMedium)
	}
	add(p.CareerGoal, WeightLow)
	add(p.Region, WeightLow)

	keywords := make([]WeightedTerm, 0, len(order))
	for _, e := range order {
		keywords = append(keywords, WeightedTerm{Term: e.term, Weight: e.weight})
	}

	ranked := make([]*entry, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].seen < ranked[j].seen
	})

	if len(ranked) > maxTerms {
		ranked = ranked[:maxTerms]
	}

	terms := make([]string, 0, len(ranked))
	for _, e := range ranked {
		terms = append(terms, e.term)
	}

	return Query{
		Keywords: keywords,
		RawText:  strings.Join(terms, " "),
	}
}

// normalizeTerm lowercases and collapses internal whitespace.
func normalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}
