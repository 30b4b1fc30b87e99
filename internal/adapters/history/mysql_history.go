package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var mysqlDialect = dialect{
	name: "mysql",
	upsert: `
		INSERT INTO comment_history (email, accepted, rejected, last_seen, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			accepted = accepted + VALUES(accepted),
			rejected = rejected + VALUES(rejected),
			last_seen = VALUES(last_seen),
			expires_at = VALUES(expires_at)
	`,
	// MySQL refuses LIMIT inside IN, the derived table works around it
	trimBodies: `
		DELETE FROM comment_bodies
		WHERE email = ? AND id NOT IN (
			SELECT id FROM (
				SELECT id FROM comment_bodies WHERE email = ? ORDER BY id DESC LIMIT ?
			) AS newest
		)
	`,
}

// MySQLHistory is a MySQL implementation of the HistoryRepository interface
type MySQLHistory struct {
	*sqlHistory
}

// NewMySQLHistory creates a new MySQL history store
func NewMySQLHistory(dsn string, logger *zap.Logger, ttl time.Duration, maxBodies int, cleanupFreq time.Duration) (*MySQLHistory, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Create tables if they don't exist
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS comment_history (
			email VARCHAR(255) PRIMARY KEY,
			accepted INT NOT NULL DEFAULT 0,
			rejected INT NOT NULL DEFAULT 0,
			last_seen BIGINT NOT NULL,
			expires_at BIGINT NOT NULL,
			INDEX idx_history_expires_at (expires_at)
		) DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS comment_bodies (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			body MEDIUMTEXT NOT NULL,
			created_at BIGINT NOT NULL,
			INDEX idx_bodies_email (email, id)
		) DEFAULT CHARSET=utf8mb4`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &MySQLHistory{newSQLHistory(db, mysqlDialect, logger, ttl, maxBodies, cleanupFreq)}, nil
}
