package filter

import (
	"errors"
	"time"

	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/pkg/snooker"
)

// ErrMissingBody is returned when a comment document has no body
var ErrMissingBody = errors.New("comment body is required")

// CommentRequest is the wire form of a comment, shared by the HTTP API and
// the CLI input files
type CommentRequest struct {
	Author *string `json:"author,omitempty" yaml:"author,omitempty"`
	URL    *string `json:"url,omitempty" yaml:"url,omitempty"`
	Email  *string `json:"email,omitempty" yaml:"email,omitempty"`
	// Body is a pointer only to tell a missing body from an empty one
	Body *string `json:"body" yaml:"body"`

	PreviouslyAcceptedForEmail *int     `json:"previously_accepted_for_email,omitempty" yaml:"previously_accepted_for_email,omitempty"`
	PreviouslyRejectedForEmail *int     `json:"previously_rejected_for_email,omitempty" yaml:"previously_rejected_for_email,omitempty"`
	PreviousCommentBodies      []string `json:"previous_comment_bodies,omitempty" yaml:"previous_comment_bodies,omitempty"`
}

// ToComment converts the request into a comment
func (r *CommentRequest) ToComment() (*snooker.Comment, error) {
	if r.Body == nil {
		return nil, ErrMissingBody
	}
	return &snooker.Comment{
		Author:                     r.Author,
		URL:                        r.URL,
		Email:                      r.Email,
		Body:                       *r.Body,
		PreviouslyAcceptedForEmail: r.PreviouslyAcceptedForEmail,
		PreviouslyRejectedForEmail: r.PreviouslyRejectedForEmail,
		PreviousCommentBodies:      r.PreviousCommentBodies,
	}, nil
}

// RuleDeltaResponse is the wire form of one rule contribution
type RuleDeltaResponse struct {
	Rule  string `json:"rule" yaml:"rule"`
	Delta int    `json:"delta" yaml:"delta"`
}

// AnalysisResponse is the wire form of an analysis
type AnalysisResponse struct {
	ProcessingID string              `json:"processing_id" yaml:"processing_id"`
	Score        int                 `json:"score" yaml:"score"`
	Status       snooker.Status      `json:"status" yaml:"status"`
	Decision     snooker.Status      `json:"decision" yaml:"decision"`
	Whitelisted  bool                `json:"whitelisted" yaml:"whitelisted"`
	HistoryUsed  bool                `json:"history_used" yaml:"history_used"`
	Breakdown    []RuleDeltaResponse `json:"breakdown" yaml:"breakdown"`
	AnalyzedAt   time.Time           `json:"analyzed_at" yaml:"analyzed_at"`
}

// NewAnalysisResponse converts an analysis into its wire form
func NewAnalysisResponse(a *core.Analysis) AnalysisResponse {
	breakdown := make([]RuleDeltaResponse, len(a.Result.Breakdown))
	for i, d := range a.Result.Breakdown {
		breakdown[i] = RuleDeltaResponse{Rule: d.Rule, Delta: d.Delta}
	}
	return AnalysisResponse{
		ProcessingID: a.ProcessingID,
		Score:        a.Result.Score,
		Status:       a.Result.Status(),
		Decision:     a.Decision,
		Whitelisted:  a.Whitelisted,
		HistoryUsed:  a.HistoryUsed,
		Breakdown:    breakdown,
		AnalyzedAt:   a.AnalyzedAt,
	}
}

// ModerationRequest is a moderator's verdict on a comment
type ModerationRequest struct {
	Email  string         `json:"email"`
	Body   string         `json:"body"`
	Status snooker.Status `json:"status"`
}
