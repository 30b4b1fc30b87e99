package ports

import (
	"context"

	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/pkg/snooker"
)

// CommentFilter defines the interface for comment filtering front-ends
type CommentFilter interface {
	// ProcessComment processes a comment and returns the filtering result
	ProcessComment(ctx context.Context, comment *snooker.Comment) (*core.Analysis, error)

	// Start starts the comment filter service
	Start() error

	// Stop stops the comment filter service
	Stop() error
}
