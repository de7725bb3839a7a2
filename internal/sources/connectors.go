package sources

import (
	"strings"

	"github.com/masar-app/recommender/internal/catalog"
)

// ConnectorConfig carries the per-connector settings every adapter shares.
type ConnectorConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base-url"`
}

func (c ConnectorConfig) baseURL(fallback string) string {
	if u := strings.TrimSpace(c.BaseURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return fallback
}

// wrapRaw tags decoded payload items with their source and applies the
// per-source limit.
func wrapRaw(sourceID string, items []map[string]any, limit int) []catalog.RawItem {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	out := make([]catalog.RawItem, 0, len(items))
	for _, fields := range items {
		if fields == nil {
			continue
		}
		out = append(out, catalog.RawItem{SourceID: sourceID, Fields: fields})
	}
	return out
}
