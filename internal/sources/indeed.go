package sources

import (
	"context"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

const (
	IndeedSourceID       = "indeed"
	indeedDefaultBaseURL = "https://indeed12.p.rapidapi.com"
	indeedHost           = "indeed12.p.rapidapi.com"
)

// Indeed searches Indeed job postings through their RapidAPI facade.
type Indeed struct {
	client   *Client
	baseURL  string
	location string
	enabled  bool
}

func NewIndeed(client *Client, cfg JobConnectorConfig) *Indeed {
	return &Indeed{
		client:   client,
		baseURL:  cfg.baseURL(indeedDefaultBaseURL),
		location: cfg.Location,
		enabled:  cfg.Enabled,
	}
}

func (i *Indeed) Name() string       { return IndeedSourceID }
func (i *Indeed) Kind() catalog.Kind { return catalog.KindJob }
func (i *Indeed) Enabled() bool      { return i.enabled }

func (i *Indeed) Search(ctx context.Context, query profile.Query, limit int) ([]catalog.RawItem, error) {
	payload := map[string]any{
		"query":    query.RawText,
		"location": i.location,
		"page_id":  "1",
	}

	var resp struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := i.client.postJSON(ctx, i.baseURL+"/jobs/search", indeedHost, payload, &resp); err != nil {
		return nil, err
	}

	return wrapRaw(IndeedSourceID, resp.Jobs, limit), nil
}
