package sources

import (
	"context"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

const (
	LinkedInSourceID       = "linkedin"
	linkedInDefaultBaseURL = "https://linkedin-jobs-search.p.rapidapi.com"
	linkedInHost           = "linkedin-jobs-search.p.rapidapi.com"
)

// LinkedIn searches LinkedIn job postings through their RapidAPI facade.
type LinkedIn struct {
	client   *Client
	baseURL  string
	location string
	enabled  bool
}

func NewLinkedIn(client *Client, cfg JobConnectorConfig) *LinkedIn {
	return &LinkedIn{
		client:   client,
		baseURL:  cfg.baseURL(linkedInDefaultBaseURL),
		location: cfg.Location,
		enabled:  cfg.Enabled,
	}
}

func (l *LinkedIn) Name() string       { return LinkedInSourceID }
func (l *LinkedIn) Kind() catalog.Kind { return catalog.KindJob }
func (l *LinkedIn) Enabled() bool      { return l.enabled }

func (l *LinkedIn) Search(ctx context.Context, query profile.Query, limit int) ([]catalog.RawItem, error) {
	payload := map[string]any{
		"query":        query.RawText,
		"location":     l.location,
		"remoteFilter": "all",
		"limit":        limit,
	}

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	if err := l.client.postJSON(ctx, l.baseURL+"/jobs", linkedInHost, payload, &resp); err != nil {
		return nil, err
	}

	return wrapRaw(LinkedInSourceID, resp.Data, limit), nil
}
