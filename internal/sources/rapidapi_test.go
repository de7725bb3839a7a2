package sources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/masar-app/recommender/internal/profile"
)

func TestUdemySearch(t *testing.T) {
	t.Parallel()

	var gotKey, gotHost string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/udemy/search-courses" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")

		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"courses": [{"id": "1", "title": "Go Basics"}, {"id": "2", "title": "Go Advanced"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", zap.NewNop())
	udemy := NewUdemy(client, ConnectorConfig{Enabled: true, BaseURL: srv.URL})

	items, err := udemy.Search(context.Background(), profile.Query{RawText: "golang"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "test-key" {
		t.Fatalf("expected the api key header, got %q", gotKey)
	}

	if gotHost != "udemy-api2.p.rapidapi.com" {
		t.Fatalf("unexpected host header: %q", gotHost)
	}

	if gotPayload["query"] != "golang" {
		t.Fatalf("unexpected query payload: %v", gotPayload)
	}

	if len(items) != 1 {
		t.Fatalf("expected the per-source limit to apply, got %d items", len(items))
	}

	if items[0].SourceID != UdemySourceID {
		t.Fatalf("unexpected source tag: %q", items[0].SourceID)
	}
}

func TestIndeedSearch(t *testing.T) {
	t.Parallel()

	var gotHost string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/jobs/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		gotHost = r.Header.Get("X-RapidAPI-Host")

		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs": [{"job_id": "j-1", "job_title": "Data Engineer", "company_name": "Acme"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", zap.NewNop())
	indeed := NewIndeed(client, JobConnectorConfig{
		ConnectorConfig: ConnectorConfig{Enabled: true, BaseURL: srv.URL},
		Location:        "Dubai, AE",
	})

	items, err := indeed.Search(context.Background(), profile.Query{RawText: "data engineer"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotHost != "indeed12.p.rapidapi.com" {
		t.Fatalf("unexpected host header: %q", gotHost)
	}

	if gotPayload["query"] != "data engineer" || gotPayload["location"] != "Dubai, AE" {
		t.Fatalf("unexpected payload: %v", gotPayload)
	}

	if len(items) != 1 || items[0].SourceID != IndeedSourceID {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestClientStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		status   int
		expected error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusBadGateway, ErrUnavailable},
		{"client error", http.StatusForbidden, ErrInvalidResponse},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			client := NewClient("key", zap.NewNop())
			jobs := NewJobsAPI(client, JobConnectorConfig{ConnectorConfig: ConnectorConfig{Enabled: true, BaseURL: srv.URL}})

			_, err := jobs.Search(context.Background(), profile.Query{RawText: "go"}, 0)
			if !errors.Is(err, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestClientInvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient("key", zap.NewNop())
	linkedin := NewLinkedIn(client, JobConnectorConfig{ConnectorConfig: ConnectorConfig{Enabled: true, BaseURL: srv.URL}})

	_, err := linkedin.Search(context.Background(), profile.Query{RawText: "go"}, 0)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected an invalid response error, got %v", err)
	}
}
