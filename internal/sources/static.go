package sources

import (
	"context"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

// Static serves the generated built-in catalog through the same connector
// contract as the live sources, so it composes into the aggregator instead of
// being a special case. The recommendation flow also uses it directly as the
// fallback collaborator when every live source fails.
type Static struct {
	kind    catalog.Kind
	enabled bool
}

func NewStatic(kind catalog.Kind, enabled bool) *Static {
	return &Static{kind: kind, enabled: enabled}
}

func (s *Static) Name() string       { return catalog.StaticSourceID }
func (s *Static) Kind() catalog.Kind { return s.kind }
func (s *Static) Enabled() bool      { return s.enabled }

func (s *Static) Search(_ context.Context, query profile.Query, limit int) ([]catalog.RawItem, error) {
	var all []catalog.Candidate
	switch s.kind {
	case catalog.KindJob:
		all = catalog.StaticJobs()
	default:
		all = catalog.StaticCourses()
	}

	matched := catalog.FilterByKeywords(all, query.RawText)
	if len(matched) == 0 {
		// A fallback source that returns nothing defeats its purpose; serve
		// the generic head of the catalog instead.
		matched = all
	}

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]catalog.RawItem, 0, len(matched))
	for _, c := range matched {
		out = append(out, staticRaw(c))
	}
	return out, nil
}

func staticRaw(c catalog.Candidate) catalog.RawItem {
	nativeID := c.ID
	if prefix := catalog.StaticSourceID + ":"; len(nativeID) > len(prefix) && nativeID[:len(prefix)] == prefix {
		nativeID = nativeID[len(prefix):]
	}

	return catalog.RawItem{
		SourceID: catalog.StaticSourceID,
		Fields: map[string]any{
			"id":          nativeID,
			"kind":        string(c.Kind),
			"title":       c.Title,
			"provider":    c.Provider,
			"category":    c.Category,
			"skills":      c.Skills,
			"description": c.Description,
			"level":       c.Level,
			"location":    c.Location,
		},
	}
}
