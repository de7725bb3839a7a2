package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// UserProfile is a read-only snapshot of the user's questionnaire answers.
// Every field is optional; an empty profile is valid and simply produces an
// empty search query.
type UserProfile struct {
	DreamJob        string   `json:"dreamJob,omitempty" mapstructure:"dreamJob"`
	CareerGoal      string   `json:"careerGoal,omitempty" mapstructure:"careerGoal"`
	FieldExperience []string `json:"fieldExperience,omitempty"`
	DesiredFields   []string `json:"desiredFields,omitempty"`
	TechnicalSkills []string `json:"technicalSkills,omitempty"`
	Region          string   `json:"region,omitempty" mapstructure:"region"`
	ExperienceLevel string   `json:"experienceLevel,omitempty" mapstructure:"experienceLevel"`
}

// FromRecord builds a canonical profile from a raw store record. The source
// records are loosely typed: set-like fields show up as a plain string, an
// array, or an object used as a set (keys with truthy values). All shapes are
// collapsed here so downstream components see one representation.
func FromRecord(record map[string]any) UserProfile {
	if record == nil {
		return UserProfile{}
	}

	return UserProfile{
		DreamJob:        valueAsString(record["dreamJob"]),
		CareerGoal:      valueAsString(record["careerGoal"]),
		FieldExperience: valueAsStringSet(record["fieldExperience"]),
		DesiredFields:   valueAsStringSet(firstPresent(record, "desiredFields", "desiredField")),
		TechnicalSkills: valueAsStringSet(record["technicalSkills"]),
		Region:          valueAsString(record["region"]),
		ExperienceLevel: valueAsString(firstPresent(record, "experienceLevel", "experience")),
	}
}

// LoadRecord reads a raw profile record from a JSON file.
func LoadRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile record: %w", err)
	}

	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing profile record %q: %w", path, err)
	}

	return record, nil
}

// Summary renders the profile as a short human-readable description suitable
// for a scoring prompt. Absent fields are omitted.
func (p UserProfile) Summary() string {
	var parts []string

	appendPart := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", label, v))
		}
	}

	appendPart("Dream job", p.DreamJob)
	appendPart("Career goal", p.CareerGoal)
	appendPart("Experience in", strings.Join(p.FieldExperience, ", "))
	appendPart("Wants to work in", strings.Join(p.DesiredFields, ", "))
	appendPart("Technical skills", strings.Join(p.TechnicalSkills, ", "))
	appendPart("Region", p.Region)
	appendPart("Experience level", p.ExperienceLevel)

	if len(parts) == 0 {
		return "No profile information provided."
	}

	return strings.Join(parts, ". ") + "."
}

func firstPresent(record map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func valueAsString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case fmt.Stringer:
		return strings.TrimSpace(typed.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// valueAsStringSet accepts the three shapes the legacy profile store produced
// for the same logical field: a single string, an array of strings, or an
// object whose truthy-valued keys form the set. Map keys are sorted to keep
// the resulting order deterministic.
func valueAsStringSet(v any) []string {
	switch typed := v.(type) {
	case nil:
		return nil
	case string:
		if s := strings.TrimSpace(typed); s != "" {
			return []string{s}
		}
		return nil
	case []string:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s := valueAsString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		out := make([]string, 0, len(typed))
		for key, val := range typed {
			if !truthy(val) {
				continue
			}
			if s := strings.TrimSpace(key); s != "" {
				out = append(out, s)
			}
		}
		sort.Strings(out)
		return out
	default:
		return nil
	}
}

func truthy(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return strings.TrimSpace(typed) != ""
	case float64:
		return typed != 0
	case int:
		return typed != 0
	default:
		return true
	}
}
