package catalog

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two recommendation populations.
type Kind string

const (
	KindCourse Kind = "course"
	KindJob    Kind = "job"
)

// ScoreSource records which scoring tier produced a score.
type ScoreSource string

const (
	ScoreSemantic ScoreSource = "semantic"
	ScoreFallback ScoreSource = "fallback"
)

// RawItem is an opaque source payload tagged with the connector that produced
// it. It is owned by a single connector call and retained on the candidate for
// downstream display.
type RawItem struct {
	SourceID string
	Fields   map[string]any
}

// Candidate is the canonical shape every source listing is normalized into.
type Candidate struct {
	// ID is globally unique and namespaced by source ("{source}:{nativeId}").
	// It is stable for a given source and native id across calls.
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	Title       string   `json:"title"`
	Provider    string   `json:"provider"`
	Category    string   `json:"category"`
	Skills      []string `json:"skills,omitempty"`
	Description string   `json:"description,omitempty"`
	Level       string   `json:"level,omitempty"`
	// Location is populated for jobs only.
	Location string  `json:"location,omitempty"`
	Raw      RawItem `json:"-"`
}

// ScoredCandidate is a candidate with its relevance score attached. Within one
// ranked list Rank is a strict gap-free ordering by descending score, ties
// broken by input order.
type ScoredCandidate struct {
	Candidate
	Score       float64     `json:"score"`
	ScoreSource ScoreSource `json:"scoreSource"`
	Rank        int         `json:"rank"`
}

// ComposeID builds the namespaced candidate id.
func ComposeID(source, nativeID string) string {
	return fmt.Sprintf("%s:%s", strings.TrimSpace(source), strings.TrimSpace(nativeID))
}

// SearchText returns the candidate text the fallback scorer matches query
// terms against.
func (c Candidate) SearchText() string {
	return strings.ToLower(strings.Join([]string{c.Title, c.Description, c.Category}, " "))
}
