// Package ai defines the contract between the relevance ranker and the
// external semantic scoring service.
package ai

import "context"

// CandidateBrief is the trimmed candidate view sent to the scorer. Only the
// id, title and a short description travel, to bound the payload size.
type CandidateBrief struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
}

// ScoreRequest asks the scorer to rate every candidate against the profile.
type ScoreRequest struct {
	ProfileSummary string           `json:"profileSummary"`
	Candidates     []CandidateBrief `json:"candidates"`
	MaxCandidates  int              `json:"maxCandidates"`
}

// CandidateScore is one scored entry of the response.
type CandidateScore struct {
	ID        string `json:"id"`
	Score     int    `json:"score"`
	Rationale string `json:"rationale"`
}

// ScoreResponse is the structured output expected from the scorer. Any
// deviation from this shape fails the whole call.
type ScoreResponse struct {
	Scores []CandidateScore `json:"scores"`
}

// Scorer rates candidates against a profile. Implementations are treated as
// untrusted: callers validate the response before using it.
type Scorer interface {
	ScoreCandidates(ctx context.Context, req *ScoreRequest) (*ScoreResponse, error)
}
