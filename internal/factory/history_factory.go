package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/snooker/internal/adapters/history"
	"github.com/mikey/snooker/internal/config"
	"github.com/mikey/snooker/internal/core"
	"go.uber.org/zap"
)

// HistoryFactory creates history repositories based on configuration
type HistoryFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewHistoryFactory creates a new history factory
func NewHistoryFactory(cfg *config.Config, logger *zap.Logger) *HistoryFactory {
	return &HistoryFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateHistoryRepository creates a history repository based on the
// configuration. It returns a nil repository when history is neither read
// nor recorded.
func (f *HistoryFactory) CreateHistoryRepository() (core.HistoryRepository, error) {
	hc, err := f.cfg.GetHistory()
	if err != nil {
		return nil, err
	}
	if !hc.Enabled && !hc.Record {
		f.logger.Info("Comment history disabled")
		return nil, nil
	}

	f.logger.Info("Creating comment history store",
		zap.String("type", hc.Type),
		zap.Duration("ttl", hc.TTL),
		zap.Int("max_bodies", hc.MaxBodies))

	switch hc.Type {
	case "memory":
		return history.NewMemoryHistory(f.logger, hc.TTL, hc.MaxBodies, hc.CleanupFrequency), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(hc.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return history.NewSQLiteHistory(hc.SQLitePath, f.logger, hc.TTL, hc.MaxBodies, hc.CleanupFrequency)
	case "mysql":
		return history.NewMySQLHistory(hc.MySQLDSN, f.logger, hc.TTL, hc.MaxBodies, hc.CleanupFrequency)
	default:
		return nil, fmt.Errorf("unsupported history type: %s", hc.Type)
	}
}
