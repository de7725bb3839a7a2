package sources

import (
	"context"
	"net/url"
	"strconv"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

const (
	ClassCentralSourceID       = "classcentral"
	classCentralDefaultBaseURL = "https://www.classcentral.com"
)

// ClassCentral searches the Class Central course directory. Unlike the
// RapidAPI marketplaces it exposes a plain GET search endpoint.
type ClassCentral struct {
	client  *Client
	baseURL string
	enabled bool
}

func NewClassCentral(client *Client, cfg ConnectorConfig) *ClassCentral {
	return &ClassCentral{
		client:  client,
		baseURL: cfg.baseURL(classCentralDefaultBaseURL),
		enabled: cfg.Enabled,
	}
}

func (c *ClassCentral) Name() string       { return ClassCentralSourceID }
func (c *ClassCentral) Kind() catalog.Kind { return catalog.KindCourse }
func (c *ClassCentral) Enabled() bool      { return c.enabled }

func (c *ClassCentral) Search(ctx context.Context, query profile.Query, limit int) ([]catalog.RawItem, error) {
	q := url.Values{}
	q.Set("q", query.RawText)
	q.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Results []map[string]any `json:"results"`
	}
	if err := c.client.getJSON(ctx, c.baseURL+"/api/courses", "", q, &resp); err != nil {
		return nil, err
	}

	return wrapRaw(ClassCentralSourceID, resp.Results, limit), nil
}
