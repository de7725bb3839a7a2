package sources

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

func TestNormalizeUdemy(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(zap.NewNop())

	raw := catalog.RawItem{
		SourceID: UdemySourceID,
		Fields: map[string]any{
			"id":                  12345,
			"title":               "Machine Learning A-Z",
			"description":         "Hands-on course",
			"category":            "Data Science",
			"level":               "Beginner",
			"what_you_will_learn": []any{"Python", "Regression"},
		},
	}

	c, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.ID != "udemy:12345" {
		t.Fatalf("expected numeric native id to be coerced, got %q", c.ID)
	}

	if c.Kind != catalog.KindCourse || c.Provider != "Udemy" {
		t.Fatalf("unexpected candidate: %+v", c)
	}

	if len(c.Skills) != 2 {
		t.Fatalf("expected skills to be mapped, got %v", c.Skills)
	}
}

func TestNormalizeIndeed(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(zap.NewNop())

	raw := catalog.RawItem{
		SourceID: IndeedSourceID,
		Fields: map[string]any{
			"job_id":              "j-9",
			"job_title":           "Platform Engineer",
			"company_name":        "Gulf Cloud Systems",
			"job_location":        "Dubai",
			"job_category":        "Software Engineering",
			"job_description":     "Kubernetes platform work",
			"job_required_skills": []any{"Go", "Kubernetes"},
		},
	}

	c, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.ID != "indeed:j-9" || c.Kind != catalog.KindJob {
		t.Fatalf("unexpected candidate: %+v", c)
	}

	if c.Provider != "Gulf Cloud Systems" || c.Location != "Dubai" {
		t.Fatalf("unexpected candidate: %+v", c)
	}

	if len(c.Skills) != 2 {
		t.Fatalf("expected skills to be mapped, got %v", c.Skills)
	}
}

func TestNormalizeFailsClosed(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(zap.NewNop())

	cases := []struct {
		name string
		raw  catalog.RawItem
	}{
		{
			name: "missing title",
			raw: catalog.RawItem{
				SourceID: UdemySourceID,
				Fields:   map[string]any{"id": "1"},
			},
		},
		{
			name: "missing native id",
			raw: catalog.RawItem{
				SourceID: CourseraSourceID,
				Fields:   map[string]any{"name": "Some Course"},
			},
		},
		{
			name: "unknown source",
			raw: catalog.RawItem{
				SourceID: "mystery",
				Fields:   map[string]any{"id": "1", "title": "X"},
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := n.Normalize(tc.raw); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestNormalizeDefaultsCategory(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(zap.NewNop())

	raw := catalog.RawItem{
		SourceID: JobsAPISourceID,
		Fields: map[string]any{
			"jobId":   "j-1",
			"title":   "Backend Developer",
			"company": "Acme",
		},
	}

	c, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Category != "General" {
		t.Fatalf("expected the default category, got %q", c.Category)
	}

	if c.Kind != catalog.KindJob {
		t.Fatalf("expected a job, got %q", c.Kind)
	}
}

func TestNormalizeAllDropsBrokenItems(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(zap.NewNop())

	items := []catalog.RawItem{
		{SourceID: UdemySourceID, Fields: map[string]any{"id": "1", "title": "Good"}},
		{SourceID: UdemySourceID, Fields: map[string]any{"id": "2"}},
		{SourceID: LinkedInSourceID, Fields: map[string]any{"jobId": "3", "title": "Also Good", "company": "Acme"}},
	}

	out := n.NormalizeAll(items)

	if len(out) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(out))
	}

	if out[0].Title != "Good" || out[1].Title != "Also Good" {
		t.Fatalf("expected input order preserved, got %+v", out)
	}
}

func TestNormalizeStaticRoundTrip(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(zap.NewNop())
	static := NewStatic(catalog.KindJob, true)

	items, err := static.Search(context.Background(), profile.Query{RawText: "consultant"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected static items")
	}

	c, err := n.Normalize(items[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Kind != catalog.KindJob {
		t.Fatalf("expected the static kind to survive the round trip, got %q", c.Kind)
	}
}
