package sources

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/masar-app/recommender/internal/catalog"
)

const defaultCategory = "General"

// Normalizer maps each source's raw schema into the canonical candidate
// shape. It fails closed: an item without a resolvable title and native id is
// dropped with a logged reason, never mapped to a zero-value candidate.
type Normalizer struct {
	logger *zap.Logger
}

func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

// NormalizeAll maps every raw item it can and drops the rest, preserving the
// input order of the survivors.
func (n *Normalizer) NormalizeAll(items []catalog.RawItem) []catalog.Candidate {
	out := make([]catalog.Candidate, 0, len(items))
	for _, raw := range items {
		candidate, err := n.Normalize(raw)
		if err != nil {
			n.logger.Debug("dropping raw item",
				zap.String("source", raw.SourceID),
				zap.Error(err),
			)
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// Normalize maps one raw item into a candidate.
func (n *Normalizer) Normalize(raw catalog.RawItem) (catalog.Candidate, error) {
	var (
		candidate catalog.Candidate
		err       error
	)

	switch raw.SourceID {
	case UdemySourceID:
		candidate, err = normalizeUdemy(raw)
	case CourseraSourceID:
		candidate, err = normalizeCoursera(raw)
	case ClassCentralSourceID:
		candidate, err = normalizeClassCentral(raw)
	case JobsAPISourceID:
		candidate, err = normalizeJobsAPI(raw)
	case IndeedSourceID:
		candidate, err = normalizeIndeed(raw)
	case LinkedInSourceID:
		candidate, err = normalizeLinkedIn(raw)
	case catalog.StaticSourceID:
		candidate, err = normalizeStatic(raw)
	default:
		return catalog.Candidate{}, fmt.Errorf("unknown source %q", raw.SourceID)
	}
	if err != nil {
		return catalog.Candidate{}, err
	}

	if strings.TrimSpace(candidate.Title) == "" {
		return catalog.Candidate{}, fmt.Errorf("%s item has no title", raw.SourceID)
	}
	if strings.HasSuffix(candidate.ID, ":") {
		return catalog.Candidate{}, fmt.Errorf("%s item has no native id", raw.SourceID)
	}

	if strings.TrimSpace(candidate.Category) == "" {
		candidate.Category = defaultCategory
	}
	candidate.Raw = raw

	return candidate, nil
}

// decodeFields decodes a loosely typed payload into a source schema struct.
// Weak typing tolerates sources that serialize ids as numbers.
func decodeFields(fields map[string]any, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	if err := decoder.Decode(fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

type udemyCourse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Level       string   `json:"level"`
	Learn       []string `json:"what_you_will_learn"`
}

func normalizeUdemy(raw catalog.RawItem) (catalog.Candidate, error) {
	var course udemyCourse
	if err := decodeFields(raw.Fields, &course); err != nil {
		return catalog.Candidate{}, err
	}

	return catalog.Candidate{
		ID:          catalog.ComposeID(UdemySourceID, course.ID),
		Kind:        catalog.KindCourse,
		Title:       course.Title,
		Provider:    "Udemy",
		Category:    course.Category,
		Skills:      course.Learn,
		Description: course.Description,
		Level:       course.Level,
	}, nil
}

type courseraCourse struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Level       string   `json:"level"`
	Skills      []string `json:"skills"`
	DomainTypes []struct {
		Name string `json:"name"`
	} `json:"domainTypes"`
}

func normalizeCoursera(raw catalog.RawItem) (catalog.Candidate, error) {
	var course courseraCourse
	if err := decodeFields(raw.Fields, &course); err != nil {
		return catalog.Candidate{}, err
	}

	category := ""
	if len(course.DomainTypes) > 0 {
		category = course.DomainTypes[0].Name
	}

	return catalog.Candidate{
		ID:          catalog.ComposeID(CourseraSourceID, course.Slug),
		Kind:        catalog.KindCourse,
		Title:       course.Name,
		Provider:    "Coursera",
		Category:    category,
		Skills:      course.Skills,
		Description: course.Description,
		Level:       course.Level,
	}, nil
}

type classCentralCourse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Provider    string   `json:"provider"`
	Subject     string   `json:"subject"`
	Level       string   `json:"level"`
	Tags        []string `json:"tags"`
}

func normalizeClassCentral(raw catalog.RawItem) (catalog.Candidate, error) {
	var course classCentralCourse
	if err := decodeFields(raw.Fields, &course); err != nil {
		return catalog.Candidate{}, err
	}

	provider := course.Provider
	if strings.TrimSpace(provider) == "" {
		provider = "Class Central"
	}

	return catalog.Candidate{
		ID:          catalog.ComposeID(ClassCentralSourceID, course.ID),
		Kind:        catalog.KindCourse,
		Title:       course.Name,
		Provider:    provider,
		Category:    course.Subject,
		Skills:      course.Tags,
		Description: course.Description,
		Level:       course.Level,
	}, nil
}

type jobsAPIJob struct {
	JobID       string   `json:"jobId"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Family      string   `json:"jobFamily"`
	Description string   `json:"description"`
	Skills      []string `json:"requiredSkills"`
}

func normalizeJobsAPI(raw catalog.RawItem) (catalog.Candidate, error) {
	var job jobsAPIJob
	if err := decodeFields(raw.Fields, &job); err != nil {
		return catalog.Candidate{}, err
	}

	return catalog.Candidate{
		ID:          catalog.ComposeID(JobsAPISourceID, job.JobID),
		Kind:        catalog.KindJob,
		Title:       job.Title,
		Provider:    job.Company,
		Category:    job.Family,
		Skills:      job.Skills,
		Description: job.Description,
		Location:    job.Location,
	}, nil
}

type indeedJob struct {
	JobID       string   `json:"job_id"`
	Title       string   `json:"job_title"`
	Company     string   `json:"company_name"`
	Location    string   `json:"job_location"`
	Category    string   `json:"job_category"`
	Description string   `json:"job_description"`
	Skills      []string `json:"job_required_skills"`
}

func normalizeIndeed(raw catalog.RawItem) (catalog.Candidate, error) {
	var job indeedJob
	if err := decodeFields(raw.Fields, &job); err != nil {
		return catalog.Candidate{}, err
	}

	return catalog.Candidate{
		ID:          catalog.ComposeID(IndeedSourceID, job.JobID),
		Kind:        catalog.KindJob,
		Title:       job.Title,
		Provider:    job.Company,
		Category:    job.Category,
		Skills:      job.Skills,
		Description: job.Description,
		Location:    job.Location,
	}, nil
}

type linkedInJob struct {
	JobID       string   `json:"jobId"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Industries  []string `json:"industries"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

func normalizeLinkedIn(raw catalog.RawItem) (catalog.Candidate, error) {
	var job linkedInJob
	if err := decodeFields(raw.Fields, &job); err != nil {
		return catalog.Candidate{}, err
	}

	category := ""
	if len(job.Industries) > 0 {
		category = job.Industries[0]
	}

	return catalog.Candidate{
		ID:          catalog.ComposeID(LinkedInSourceID, job.JobID),
		Kind:        catalog.KindJob,
		Title:       job.Title,
		Provider:    job.Company,
		Category:    category,
		Skills:      job.Skills,
		Description: job.Description,
		Location:    job.Location,
	}, nil
}

type staticItem struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Provider    string   `json:"provider"`
	Category    string   `json:"category"`
	Skills      []string `json:"skills"`
	Description string   `json:"description"`
	Level       string   `json:"level"`
	Location    string   `json:"location"`
}

func normalizeStatic(raw catalog.RawItem) (catalog.Candidate, error) {
	var item staticItem
	if err := decodeFields(raw.Fields, &item); err != nil {
		return catalog.Candidate{}, err
	}

	kind := catalog.Kind(item.Kind)
	if kind != catalog.KindJob {
		kind = catalog.KindCourse
	}

	return catalog.Candidate{
		ID:          catalog.ComposeID(catalog.StaticSourceID, item.ID),
		Kind:        kind,
		Title:       item.Title,
		Provider:    item.Provider,
		Category:    item.Category,
		Skills:      item.Skills,
		Description: item.Description,
		Level:       item.Level,
		Location:    item.Location,
	}, nil
}
