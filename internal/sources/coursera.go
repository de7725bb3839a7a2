package sources

import (
	"context"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

const (
	CourseraSourceID       = "coursera"
	courseraDefaultBaseURL = "https://coursera-courses.p.rapidapi.com"
	courseraHost           = "coursera-courses.p.rapidapi.com"
)

// Coursera searches the Coursera catalog through its RapidAPI facade.
type Coursera struct {
	client  *Client
	baseURL string
	enabled bool
}

func NewCoursera(client *Client, cfg ConnectorConfig) *Coursera {
	return &Coursera{
		client:  client,
		baseURL: cfg.baseURL(courseraDefaultBaseURL),
		enabled: cfg.Enabled,
	}
}

func (c *Coursera) Name() string       { return CourseraSourceID }
func (c *Coursera) Kind() catalog.Kind { return catalog.KindCourse }
func (c *Coursera) Enabled() bool      { return c.enabled }

func (c *Coursera) Search(ctx context.Context, query profile.Query, limit int) ([]catalog.RawItem, error) {
	payload := map[string]any{
		"query": query.RawText,
		"limit": limit,
	}

	var resp struct {
		Courses []map[string]any `json:"courses"`
	}
	if err := c.client.postJSON(ctx, c.baseURL+"/search", courseraHost, payload, &resp); err != nil {
		return nil, err
	}

	return wrapRaw(CourseraSourceID, resp.Courses, limit), nil
}
