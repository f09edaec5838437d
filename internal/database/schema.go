package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables in parent-to-child order.  Drops run in reverse.
var tables = []string{"users", "sessions", "requests", "comments"}

// Foreign keys are declared without ON DELETE CASCADE; dependents are removed
// explicitly by the repository layer.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		display_name VARCHAR(255) NOT NULL UNIQUE,
		pin_hash VARCHAR(255) NOT NULL,
		session_count INT NOT NULL DEFAULT 0,
		session_limit INT NOT NULL DEFAULT 30,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		is_live BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_sessions_user (user_id, is_live),
		CONSTRAINT fk_sessions_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS requests (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		session_id BIGINT UNSIGNED NOT NULL,
		title VARCHAR(255) NOT NULL,
		artist VARCHAR(255) NOT NULL,
		requestor_name VARCHAR(255) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		approve_reject_reason TEXT NULL,
		votes INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_requests_session (session_id),
		CONSTRAINT fk_requests_session FOREIGN KEY (session_id) REFERENCES sessions(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		request_id BIGINT UNSIGNED NOT NULL,
		comment TEXT NOT NULL,
		author VARCHAR(255) NOT NULL,
		role VARCHAR(64) NOT NULL DEFAULT 'user',
		pinned BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_comments_request (request_id),
		CONSTRAINT fk_comments_request FOREIGN KEY (request_id) REFERENCES requests(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// DATETIME column types let the sqlite driver hand back time.Time values.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		display_name TEXT NOT NULL UNIQUE,
		pin_hash TEXT NOT NULL,
		session_count INTEGER NOT NULL DEFAULT 0,
		session_limit INTEGER NOT NULL DEFAULT 30,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		is_live BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, is_live)`,
	`CREATE TABLE IF NOT EXISTS requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL REFERENCES sessions(id),
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		requestor_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		approve_reject_reason TEXT,
		votes INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_session ON requests(session_id)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id INTEGER NOT NULL REFERENCES requests(id),
		comment TEXT NOT NULL,
		author TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		pinned BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_request ON comments(request_id)`,
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB, driver string) error {
	stmts := mysqlSchema
	if driver == DriverSQLite {
		stmts = sqliteSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Reset drops every table and recreates the schema.
func Reset(ctx context.Context, db *sql.DB, driver string) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+tables[i]); err != nil {
			return fmt.Errorf("drop %s: %w", tables[i], err)
		}
	}
	return CreateSchema(ctx, db, driver)
}
