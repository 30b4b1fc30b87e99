package history

import (
	"context"
	"sync"
	"time"

	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/pkg/snooker"
	"go.uber.org/zap"
)

// MemoryHistory is an in-memory implementation of the HistoryRepository interface
type MemoryHistory struct {
	entries     map[string]*core.HistoryEntry
	mu          sync.RWMutex
	logger      *zap.Logger
	ttl         time.Duration
	maxBodies   int
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewMemoryHistory creates a new in-memory history store
func NewMemoryHistory(logger *zap.Logger, ttl time.Duration, maxBodies int, cleanupFreq time.Duration) *MemoryHistory {
	h := &MemoryHistory{
		entries:     make(map[string]*core.HistoryEntry),
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
func (h *MemoryHistory) Get(ctx context.Context, email string) (*core.HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	entry, ok := h.entries[email]
	if !ok || h.expired(entry) {
		return nil, ErrNotFound
	}

	// Hand out a copy so callers never share the stored slice
	out := *entry
	out.Bodies = append([]string(nil), entry.Bodies...)
	return &out, nil
}

// Record adds a comment and its verdict to the history of an email address
func (h *MemoryHistory) Record(ctx context.Context, email, body string, status snooker.Status) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.entries[email]
	if !ok || h.expired(entry) {
		entry = &core.HistoryEntry{Email: email}
		h.entries[email] = entry
	}

	accepted, rejected := verdictCounts(status)
	entry.Accepted += accepted
	entry.Rejected += rejected
	entry.Bodies = keepLast(append(entry.Bodies, body), h.maxBodies)
	entry.LastSeen = h.now()
	entry.ExpiresAt = expiresAt(entry.LastSeen, h.ttl)

	return nil
}

// Delete removes the history of an email address
func (h *MemoryHistory) Delete(ctx context.Context, email string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.entries, email)
	return nil
}

// Cleanup removes expired entries
func (h *MemoryHistory) Cleanup(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	expiredCount := 0
	for email, entry := range h.entries {
		if h.expired(entry) {
			delete(h.entries, email)
			expiredCount++
		}
	}

	h.logger.Debug("Cleaned up expired history entries", zap.Int("expired_count", expiredCount))
	return nil
}

func (h *MemoryHistory) expired(entry *core.HistoryEntry) bool {
	return !entry.ExpiresAt.IsZero() && !h.now().Before(entry.ExpiresAt)
}

// startCleanupTask starts a background task to clean up expired entries
func (h *MemoryHistory) startCleanupTask() {
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

// Stop stops the background cleanup task
func (h *MemoryHistory) Stop() {
	h.stopOnce.Do(func() { close(h.stopCh) })
}
