// Package history stores the submission history of commenters. The
// repositories feed the optional history fields of a comment before it is
// scored; the scoring rules never read them directly.
package history

import (
	"math"
	"time"

	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/pkg/snooker"
)

// ErrNotFound is returned when an email address has no stored history
var ErrNotFound = core.ErrNotFound

// verdictCounts returns how a verdict moves the accepted and rejected counts
func verdictCounts(status snooker.Status) (accepted, rejected int) {
	switch status {
	case snooker.StatusValid:
		return 1, 0
	case snooker.StatusSpam:
		return 0, 1
	default:
		return 0, 0
	}
}

// expiresAt returns when an entry touched at now expires. A zero time means
// the entry never expires.
func expiresAt(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// toUnix and fromUnix map expiry times onto integer columns; "never" is
// stored as the largest int64.
func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return math.MaxInt64
	}
	return t.Unix()
}

func fromUnix(n int64) time.Time {
	if n == math.MaxInt64 {
		return time.Time{}
	}
	return time.Unix(n, 0)
}

// keepLast returns at most the last n bodies
func keepLast(bodies []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(bodies) > n {
		bodies = bodies[len(bodies)-n:]
	}
	return bodies
}
