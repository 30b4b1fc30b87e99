package core

import (
	"time"

	"github.com/mikey/snooker/pkg/snooker"
)

// Analysis represents the result of analyzing a comment
type Analysis struct {
	Result snooker.ScoreResult
	// Decision is what the host should do with the comment. It equals
	// Result.Status() unless a host policy (trusted domain) overrides it.
	Decision     snooker.Status
	Whitelisted  bool
	HistoryUsed  bool
	AnalyzedAt   time.Time
	ProcessingID string
}

// HistoryEntry is the stored submission history of one email address
type HistoryEntry struct {
	Email    string
	Accepted int
	Rejected int
	// Bodies holds the most recent comment bodies, oldest first
	Bodies    []string
	LastSeen  time.Time
	ExpiresAt time.Time
}

// Apply fills the history fields of c from the entry
func (h *HistoryEntry) Apply(c *snooker.Comment) {
	c.PreviouslyAcceptedForEmail = snooker.Int(h.Accepted)
	c.PreviouslyRejectedForEmail = snooker.Int(h.Rejected)
	c.PreviousCommentBodies = append([]string{}, h.Bodies...)
}
