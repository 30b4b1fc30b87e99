package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/pkg/snooker"
	"go.uber.org/zap"
)

// dialect holds the statements that differ between SQL backends
type dialect struct {
	name string
	// upsert inserts a history row or adds to the counts of an existing one
	upsert string
	// trimBodies keeps the newest N bodies of one email address
	trimBodies string
}

// sqlHistory is the HistoryRepository logic shared by the SQL backends.
// Timestamps are stored as unix seconds.
type sqlHistory struct {
	db          *sql.DB
	dialect     dialect
	logger      *zap.Logger
	ttl         time.Duration
	maxBodies   int
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

func newSQLHistory(db *sql.DB, d dialect, logger *zap.Logger, ttl time.Duration, maxBodies int, cleanupFreq time.Duration) *sqlHistory {
	h := &sqlHistory{
		db:          db,
		dialect:     d,
		logger:      logger,
		ttl:         ttl,
		maxBodies:   maxBodies,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
		now:         time.Now,
	}

	// Start background cleanup
	go h.startCleanupTask()

	return h
}

// Get retrieves the history of an email address
func (h *sqlHistory) Get(ctx context.Context, email string) (*core.HistoryEntry, error) {
	entry := core.HistoryEntry{Email: email}
	var lastSeen, expires int64

	err := h.db.QueryRowContext(ctx, `
		SELECT accepted, rejected, last_seen, expires_at
		FROM comment_history
		WHERE email = ? AND expires_at > ?
	`, email, h.now().Unix()).Scan(&entry.Accepted, &entry.Rejected, &lastSeen, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	entry.LastSeen = time.Unix(lastSeen, 0)
	entry.ExpiresAt = fromUnix(expires)

	rows, err := h.db.QueryContext(ctx, `
		SELECT body FROM comment_bodies
		WHERE email = ?
		ORDER BY id
	`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query comment bodies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan comment body: %w", err)
		}
		entry.Bodies = append(entry.Bodies, body)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comment bodies: %w", err)
	}

	return &entry, nil
}

// Record adds a comment and its verdict to the history of an email address
func (h *sqlHistory) Record(ctx context.Context, email, body string, status snooker.Status) error {
	now := h.now()
	accepted, rejected := verdictCounts(status)

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// An expired history starts over
	res, err := tx.ExecContext(ctx, `
		DELETE FROM comment_history
		WHERE email = ? AND expires_at <= ?
	`, email, now.Unix())
	if err != nil {
		return fmt.Errorf("failed to reset expired history: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM comment_bodies WHERE email = ?`, email); err != nil {
			return fmt.Errorf("failed to reset expired comment bodies: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, h.dialect.upsert,
		email, accepted, rejected, now.Unix(), toUnix(expiresAt(now, h.ttl)))
	if err != nil {
		return fmt.Errorf("failed to upsert history entry: %w", err)
	}

	if h.maxBodies > 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO comment_bodies (email, body, created_at)
			VALUES (?, ?, ?)
		`, email, body, now.Unix())
		if err != nil {
			return fmt.Errorf("failed to insert comment body: %w", err)
		}
		if _, err := tx.ExecContext(ctx, h.dialect.trimBodies, email, email, h.maxBodies); err != nil {
			return fmt.Errorf("failed to trim comment bodies: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history entry: %w", err)
	}
	return nil
}

// Delete removes the history of an email address
func (h *sqlHistory) Delete(ctx context.Context, email string) error {
	if _, err := h.db.ExecContext(ctx, `DELETE FROM comment_bodies WHERE email = ?`, email); err != nil {
		return fmt.Errorf("failed to delete comment bodies: %w", err)
	}
	if _, err := h.db.ExecContext(ctx, `DELETE FROM comment_history WHERE email = ?`, email); err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries
func (h *sqlHistory) Cleanup(ctx context.Context) error {
	now := h.now().Unix()

	_, err := h.db.ExecContext(ctx, `
		DELETE FROM comment_bodies
		WHERE email IN (SELECT email FROM comment_history WHERE expires_at <= ?)
	`, now)
	if err != nil {
		return fmt.Errorf("failed to clean up expired comment bodies: %w", err)
	}

	result, err := h.db.ExecContext(ctx, `
		DELETE FROM comment_history
		WHERE expires_at <= ?
	`, now)
	if err != nil {
		return fmt.Errorf("failed to clean up expired entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		h.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else {
		h.logger.Debug("Cleaned up expired history entries",
			zap.String("backend", h.dialect.name),
			zap.Int64("expired_count", rowsAffected))
	}

	return nil
}

// startCleanupTask starts a background task to clean up expired entries
func (h *sqlHistory) startCleanupTask() {
	ticker := time.NewTicker(h.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := h.Cleanup(context.Background()); err != nil {
				h.logger.Error("Failed to clean up history", zap.Error(err))
			}
		case <-h.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task and closes the database connection
func (h *sqlHistory) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		if err := h.db.Close(); err != nil {
			h.logger.Error("Failed to close database", zap.String("backend", h.dialect.name), zap.Error(err))
		}
	})
}
