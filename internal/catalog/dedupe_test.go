package catalog

import (
	"reflect"
	"testing"
)

func TestDedupeFirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	candidates := []Candidate{
		{ID: "udemy:1", Title: "Intro to Python", Provider: "Udemy"},
		{ID: "coursera:py", Title: "  intro to python ", Provider: "UDEMY"},
		{ID: "udemy:2", Title: "Intro to Python", Provider: "Coursera"},
	}

	out := Dedupe(candidates)

	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out))
	}

	if out[0].ID != "udemy:1" {
		t.Fatalf("expected the first occurrence to survive, got %s", out[0].ID)
	}

	if out[1].ID != "udemy:2" {
		t.Fatalf("expected a different provider to survive, got %s", out[1].ID)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	t.Parallel()

	candidates := []Candidate{
		{ID: "udemy:1", Title: "Go Basics", Provider: "Udemy"},
		{ID: "static:course-001", Title: "SQL Basics", Provider: "edX"},
	}

	once := Dedupe(candidates)
	twice := Dedupe(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected dedupe to be idempotent: %+v vs %+v", once, twice)
	}
}

func TestComposeID(t *testing.T) {
	t.Parallel()

	if got := ComposeID(" udemy ", " 42 "); got != "udemy:42" {
		t.Fatalf("unexpected id: %q", got)
	}
}
