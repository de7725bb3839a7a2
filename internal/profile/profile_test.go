package profile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFromRecordLooseShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		record   map[string]any
		expected UserProfile
	}{
		{
			name:     "nil record",
			record:   nil,
			expected: UserProfile{},
		},
		{
			name: "plain strings",
			record: map[string]any{
				"dreamJob":   "  AI Consultant  ",
				"careerGoal": "lead a team",
				"region":     "Jordan",
			},
			expected: UserProfile{
				DreamJob:   "AI Consultant",
				CareerGoal: "lead a team",
				Region:     "Jordan",
			},
		},
		{
			name: "set field as single string",
			record: map[string]any{
				"technicalSkills": "Python",
			},
			expected: UserProfile{
				TechnicalSkills: []string{"Python"},
			},
		},
		{
			name: "set field as array",
			record: map[string]any{
				"technicalSkills": []any{"Python", " SQL ", ""},
			},
			expected: UserProfile{
				TechnicalSkills: []string{"Python", "SQL"},
			},
		},
		{
			name: "set field as object with truthy values",
			record: map[string]any{
				"desiredFields": map[string]any{
					"Data Science": true,
					"Marketing":    false,
					"AI":           1,
					"":             true,
				},
			},
			expected: UserProfile{
				DesiredFields: []string{"AI", "Data Science"},
			},
		},
		{
			name: "legacy singular key",
			record: map[string]any{
				"desiredField": "Cybersecurity",
				"experience":   "junior",
			},
			expected: UserProfile{
				DesiredFields:   []string{"Cybersecurity"},
				ExperienceLevel: "junior",
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := FromRecord(tc.record)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Fatalf("expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	p := UserProfile{
		DreamJob:        "Data Engineer",
		TechnicalSkills: []string{"Python", "SQL"},
	}

	summary := p.Summary()

	if !strings.Contains(summary, "Dream job: Data Engineer") {
		t.Fatalf("expected dream job in summary, got %q", summary)
	}

	if !strings.Contains(summary, "Technical skills: Python, SQL") {
		t.Fatalf("expected skills in summary, got %q", summary)
	}

	if strings.Contains(summary, "Region") {
		t.Fatalf("expected absent fields to be omitted, got %q", summary)
	}
}

func TestSummaryEmptyProfile(t *testing.T) {
	t.Parallel()

	if got := (UserProfile{}).Summary(); got != "No profile information provided." {
		t.Fatalf("unexpected empty summary: %q", got)
	}
}

func TestLoadRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profile.json")
	payload := `{"dreamJob": "AI Consultant", "technicalSkills": ["Python"]}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	record, err := LoadRecord(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record["dreamJob"] != "AI Consultant" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestLoadRecordMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadRecord(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
