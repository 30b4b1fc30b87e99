package core

import (
	"context"
	"errors"

	"github.com/mikey/snooker/pkg/snooker"
)

// CommentScorer scores a single comment
type CommentScorer interface {
	// Evaluate applies the scoring rules to a comment
	Evaluate(c snooker.Comment) snooker.ScoreResult
}

// HistoryRepository stores the submission history of commenters, keyed by
// email address
type HistoryRepository interface {
	// Get retrieves the history of an email address
	Get(ctx context.Context, email string) (*HistoryEntry, error)

	// Record adds a comment and its verdict to the history of an email address
	Record(ctx context.Context, email, body string, status snooker.Status) error

	// Delete removes the history of an email address
	Delete(ctx context.Context, email string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

var (
	// ErrNotFound is returned when an email address has no stored history
	ErrNotFound = errors.New("history entry not found")
	// ErrHistoryDisabled is returned when a history operation is requested
	// but no repository is configured
	ErrHistoryDisabled = errors.New("comment history is disabled")
)
