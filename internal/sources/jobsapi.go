package sources

import (
	"context"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

const (
	JobsAPISourceID       = "jobsapi"
	jobsAPIDefaultBaseURL = "https://jobs-api14.p.rapidapi.com"
	jobsAPIHost           = "jobs-api14.p.rapidapi.com"
)

// JobsAPI searches the general jobs-api14 board through RapidAPI.
type JobsAPI struct {
	client   *Client
	baseURL  string
	location string
	enabled  bool
}

// JobConnectorConfig extends the shared connector settings with the region
// filter job boards accept.
type JobConnectorConfig struct {
	ConnectorConfig `mapstructure:",squash"`
	Location        string `mapstructure:"location"`
}

func NewJobsAPI(client *Client, cfg JobConnectorConfig) *JobsAPI {
	return &JobsAPI{
		client:   client,
		baseURL:  cfg.baseURL(jobsAPIDefaultBaseURL),
		location: cfg.Location,
		enabled:  cfg.Enabled,
	}
}

func (j *JobsAPI) Name() string       { return JobsAPISourceID }
func (j *JobsAPI) Kind() catalog.Kind { return catalog.KindJob }
func (j *JobsAPI) Enabled() bool      { return j.enabled }

func (j *JobsAPI) Search(ctx context.Context, query profile.Query, limit int) ([]catalog.RawItem, error) {
	payload := map[string]any{
		"query":      query.RawText,
		"location":   j.location,
		"remoteOnly": j.location == "",
	}

	var resp struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := j.client.postJSON(ctx, j.baseURL+"/job/search", jobsAPIHost, payload, &resp); err != nil {
		return nil, err
	}

	return wrapRaw(JobsAPISourceID, resp.Jobs, limit), nil
}
