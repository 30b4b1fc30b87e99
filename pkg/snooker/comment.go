// Package snooker scores blog comments with a fixed set of heuristic rules.
//
// Every rule inspects one aspect of a comment and contributes a signed point
// delta. The deltas are summed and the total is mapped to a Status:
// positive scores are valid, zero needs moderation, negative is spam.
package snooker

// Status is the classification derived from a comment's score
type Status string

const (
	StatusValid    Status = "valid"
	StatusModerate Status = "moderate"
	StatusSpam     Status = "spam"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusValid, StatusModerate, StatusSpam:
		return true
	}
	return false
}

// StatusForScore maps a score onto the three status ranges
func StatusForScore(score int) Status {
	switch {
	case score >= 1:
		return StatusValid
	case score == 0:
		return StatusModerate
	default:
		return StatusSpam
	}
}

// Comment is a single submitted comment. Body is the only required field;
// nil optional fields mean "no information" and never move the score.
type Comment struct {
	Author *string
	URL    *string
	Email  *string
	Body   string

	PreviouslyAcceptedForEmail *int
	PreviouslyRejectedForEmail *int
	PreviousCommentBodies      []string
}

// HasHistory reports whether any of the history fields were supplied
func (c *Comment) HasHistory() bool {
	return c.PreviouslyAcceptedForEmail != nil ||
		c.PreviouslyRejectedForEmail != nil ||
		c.PreviousCommentBodies != nil
}

// RuleDelta is the contribution of one rule to a score
type RuleDelta struct {
	Rule  string
	Delta int
}

// ScoreResult is the outcome of evaluating one comment
type ScoreResult struct {
	Score     int
	Breakdown []RuleDelta
}

// Status derives the classification from the score
func (r ScoreResult) Status() Status {
	return StatusForScore(r.Score)
}

// Fired returns the rules that contributed a non-zero delta
func (r ScoreResult) Fired() []RuleDelta {
	var fired []RuleDelta
	for _, d := range r.Breakdown {
		if d.Delta != 0 {
			fired = append(fired, d)
		}
	}
	return fired
}

// String returns a pointer to s, for filling optional Comment fields
func String(s string) *string {
	return &s
}

// Int returns a pointer to n, for filling optional Comment fields
func Int(n int) *int {
	return &n
}
