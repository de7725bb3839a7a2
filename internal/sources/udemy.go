package sources

import (
	"context"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

const (
	UdemySourceID       = "udemy"
	udemyDefaultBaseURL = "https://udemy-api2.p.rapidapi.com"
	udemyHost           = "udemy-api2.p.rapidapi.com"
)

// Udemy searches the Udemy course marketplace through its RapidAPI facade.
type Udemy struct {
	client  *Client
	baseURL string
	enabled bool
}

func NewUdemy(client *Client, cfg ConnectorConfig) *Udemy {
	return &Udemy{
		client:  client,
		baseURL: cfg.baseURL(udemyDefaultBaseURL),
		enabled: cfg.Enabled,
	}
}

func (u *Udemy) Name() string       { return UdemySourceID }
func (u *Udemy) Kind() catalog.Kind { return catalog.KindCourse }
func (u *Udemy) Enabled() bool      { return u.enabled }

func (u *Udemy) Search(ctx context.Context, query profile.Query, limit int) ([]catalog.RawItem, error) {
	payload := map[string]any{
		"query": query.RawText,
		"page":  1,
		"limit": limit,
	}

	var resp struct {
		Courses []map[string]any `json:"courses"`
	}
	if err := u.client.postJSON(ctx, u.baseURL+"/v1/udemy/search-courses", udemyHost, payload, &resp); err != nil {
		return nil, err
	}

	return wrapRaw(UdemySourceID, resp.Courses, limit), nil
}
