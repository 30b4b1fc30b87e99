package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var sqliteDialect = dialect{
	name: "sqlite",
	upsert: `
		INSERT INTO comment_history (email, accepted, rejected, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			accepted = accepted + excluded.accepted,
			rejected = rejected + excluded.rejected,
			last_seen = excluded.last_seen,
			expires_at = excluded.expires_at
	`,
	trimBodies: `
		DELETE FROM comment_bodies
		WHERE email = ? AND id NOT IN (
			SELECT id FROM comment_bodies WHERE email = ? ORDER BY id DESC LIMIT ?
		)
	`,
}

// SQLiteHistory is a SQLite implementation of the HistoryRepository interface
type SQLiteHistory struct {
	*sqlHistory
}

// NewSQLiteHistory creates a new SQLite history store
func NewSQLiteHistory(dbPath string, logger *zap.Logger, ttl time.Duration, maxBodies int, cleanupFreq time.Duration) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	// Create tables if they don't exist
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS comment_history (
			email TEXT PRIMARY KEY,
			accepted INTEGER NOT NULL DEFAULT 0,
			rejected INTEGER NOT NULL DEFAULT 0,
			last_seen INTEGER NOT NULL,
			expires_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_expires_at ON comment_history(expires_at)`,
		`CREATE TABLE IF NOT EXISTS comment_bodies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bodies_email ON comment_bodies(email, id)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &SQLiteHistory{newSQLHistory(db, sqliteDialect, logger, ttl, maxBodies, cleanupFreq)}, nil
}
