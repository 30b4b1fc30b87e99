package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/snooker/internal/utils"
	"github.com/mikey/snooker/internal/whitelist"
	"github.com/mikey/snooker/pkg/snooker"
	"go.uber.org/zap"
)

// ServiceOptions holds the tunables of the comment filter service
type ServiceOptions struct {
	// HistoryEnabled makes the service fill missing history fields from
	// the history repository
	HistoryEnabled bool
	// RecordHistory makes the service store every verdict
	RecordHistory bool
	// MaxBodySize caps the number of body bytes that are scored; 0 means
	// no limit
	MaxBodySize int
}

// CommentFilterService is the core service for comment classification
type CommentFilterService struct {
	scorer        CommentScorer
	history       HistoryRepository
	whitelist     *whitelist.Checker
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	opts          ServiceOptions
}

// NewCommentFilterService creates a new comment filter service. history and
// checker may be nil.
func NewCommentFilterService(
	scorer CommentScorer,
	history HistoryRepository,
	checker *whitelist.Checker,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
	opts ServiceOptions,
) *CommentFilterService {
	return &CommentFilterService{
		scorer:        scorer,
		history:       history,
		whitelist:     checker,
		textProcessor: textProcessor,
		logger:        logger,
		opts:          opts,
	}
}

// AnalyzeComment scores a comment and decides what to do with it. The
// caller's comment is never modified.
func (s *CommentFilterService) AnalyzeComment(ctx context.Context, comment *snooker.Comment) (*Analysis, error) {
	if comment == nil {
		return nil, errors.New("comment is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := *comment
	c.Body = s.textProcessor.ProcessText(c.Body, s.opts.MaxBodySize)
	email := normalizeEmail(c.Email)

	analysis := &Analysis{ProcessingID: uuid.NewString()}

	// Only fill history the caller did not supply
	if s.opts.HistoryEnabled && s.history != nil && email != "" && !c.HasHistory() {
		entry, err := s.history.Get(ctx, email)
		switch {
		case err == nil:
			entry.Apply(&c)
			analysis.HistoryUsed = true
			s.logger.Debug("Loaded comment history",
				zap.String("email", email),
				zap.Int("accepted", entry.Accepted),
				zap.Int("rejected", entry.Rejected),
				zap.Int("bodies", len(entry.Bodies)))
		case errors.Is(err, ErrNotFound):
			s.logger.Debug("No comment history for sender", zap.String("email", email))
		default:
			s.logger.Warn("Failed to load comment history, scoring without it",
				zap.String("email", email),
				zap.Error(err))
		}
	}

	analysis.Result = s.scorer.Evaluate(c)
	analysis.Decision = analysis.Result.Status()
	analysis.AnalyzedAt = time.Now()

	if email != "" && s.whitelist != nil && s.whitelist.IsWhitelisted(email) {
		s.logger.Info("Accepting comment from trusted domain",
			zap.String("email", email),
			zap.Int("score", analysis.Result.Score),
			zap.String("action", "whitelist_bypass"))
		analysis.Decision = snooker.StatusValid
		analysis.Whitelisted = true
	}

	s.logger.Debug("Comment scored",
		zap.String("processing_id", analysis.ProcessingID),
		zap.Int("score", analysis.Result.Score),
		zap.String("status", string(analysis.Result.Status())),
		zap.String("decision", string(analysis.Decision)),
		zap.Strings("fired", firedRules(analysis.Result)))

	if s.opts.RecordHistory && s.history != nil && email != "" {
		if err := s.history.Record(ctx, email, c.Body, analysis.Decision); err != nil {
			s.logger.Error("Failed to update comment history", zap.Error(err), zap.String("email", email))
		}
	}

	return analysis, nil
}

// RecordModeration stores a moderator's verdict on a comment
func (s *CommentFilterService) RecordModeration(ctx context.Context, email, body string, status snooker.Status) error {
	if s.history == nil {
		return ErrHistoryDisabled
	}
	email = normalizeEmail(&email)
	if email == "" {
		return errors.New("email is required")
	}
	if !status.Valid() {
		return fmt.Errorf("invalid status: %q", status)
	}
	if err := s.history.Record(ctx, email, s.textProcessor.ProcessText(body, s.opts.MaxBodySize), status); err != nil {
		return fmt.Errorf("failed to record moderation: %w", err)
	}
	s.logger.Info("Recorded moderation verdict",
		zap.String("email", email),
		zap.String("status", string(status)))
	return nil
}

// IsSpam reports whether an analysis ended in a spam decision
func (s *CommentFilterService) IsSpam(analysis *Analysis) bool {
	return analysis.Decision == snooker.StatusSpam
}

func normalizeEmail(email *string) string {
	if email == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*email))
}

func firedRules(r snooker.ScoreResult) []string {
	fired := r.Fired()
	out := make([]string, len(fired))
	for i, d := range fired {
		out[i] = fmt.Sprintf("%s=%+d", d.Rule, d.Delta)
	}
	return out
}
