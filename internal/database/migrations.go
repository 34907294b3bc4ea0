package database

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; each runs once and is recorded in
// schema_migrations by its index
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS executors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		file TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL CHECK (status IN ('TO_DO', 'IN_PROGRESS', 'DONE')),
		priority TEXT NOT NULL CHECK (priority IN ('LOW', 'MEDIUM', 'HIGH')),
		deadline TEXT NOT NULL,
		executor_id TEXT REFERENCES executors(id) ON DELETE SET NULL,
		order_in_column INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_status_order
		ON items(status, order_in_column)`,
}

// runMigrations brings the schema up to date inside a single transaction
func runMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	return withTx(ctx, db, func(tx *sql.Tx) error {
		var applied int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		for version := applied; version < len(migrations); version++ {
			if _, err := tx.ExecContext(ctx, migrations[version]); err != nil {
				return fmt.Errorf("migration %d: %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", version, err)
			}
		}
		return nil
	})
}
