package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/masar-app/recommender/internal/ai"
	"github.com/masar-app/recommender/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	maxBriefRunes       = 280
)

// Scorer asks Gemini to rate a candidate batch against a profile summary in a
// single structured call.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scorer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// ScoreCandidates builds one prompt for the whole batch and parses the JSON
// response. It returns the parsed structure as-is; the caller owns semantic
// validation (known ids, score ranges).
func (s *Scorer) ScoreCandidates(ctx context.Context, req *ai.ScoreRequest) (*ai.ScoreResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("score request is required")
	}
	if len(req.Candidates) == 0 {
		return &ai.ScoreResponse{}, nil
	}

	briefs := req.Candidates
	if req.MaxCandidates > 0 && len(briefs) > req.MaxCandidates {
		briefs = briefs[:req.MaxCandidates]
	}

	bounded := make([]ai.CandidateBrief, len(briefs))
	for i, brief := range briefs {
		brief.ShortDescription = utils.TruncateForLog(brief.ShortDescription, maxBriefRunes)
		bounded[i] = brief
	}

	candidatesJSON, err := json.Marshal(bounded)
	if err != nil {
		return nil, fmt.Errorf("marshal candidate briefs: %w", err)
	}

	prompt := buildPrompt(req.ProfileSummary, string(candidatesJSON))

	s.logger.Debug("gemini score request",
		zap.String("model", s.generator.Model()),
		zap.Int("candidates", len(bounded)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini score response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(profileSummary, candidatesJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Profile:\n{{PROFILE_SUMMARY}}\n\nCandidates:\n{{CANDIDATES_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{PROFILE_SUMMARY}}", profileSummary)
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATES_JSON}}", candidatesJSON)
	return prompt
}

func parseResponse(raw string) (*ai.ScoreResponse, error) {
	cleaned := extractJSON(raw)

	var resp ai.ScoreResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if resp.Scores == nil {
		return nil, fmt.Errorf("gemini response carries no scores field")
	}

	return &resp, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
