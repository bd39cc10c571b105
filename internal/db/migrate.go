package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE additions tolerate re-runs via the duplicate-column check.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS calendars (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		color          TEXT NOT NULL DEFAULT '',
		source         TEXT NOT NULL DEFAULT 'manual'
		               CHECK(source IN ('manual','ics')),
		feed_url       TEXT NOT NULL DEFAULT '',
		last_synced_at TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id           TEXT PRIMARY KEY,
		calendar_id  TEXT NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		location     TEXT NOT NULL DEFAULT '',
		notes        TEXT NOT NULL DEFAULT '',
		start_at     TEXT NOT NULL,
		end_at       TEXT NOT NULL,
		all_day      INTEGER NOT NULL DEFAULT 0,
		status       TEXT NOT NULL DEFAULT 'confirmed'
		             CHECK(status IN ('confirmed','tentative','cancelled')),
		feed_uid     TEXT NOT NULL DEFAULT '',
		instance_key TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_calendar ON events(calendar_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_events_feed_instance
		ON events(calendar_id, feed_uid, instance_key)
		WHERE feed_uid <> ''`,

	`CREATE TABLE IF NOT EXISTS folders (
		id         TEXT PRIMARY KEY,
		parent_id  TEXT REFERENCES folders(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_id)`,

	`CREATE TABLE IF NOT EXISTS documents (
		id         TEXT PRIMARY KEY,
		folder_id  TEXT REFERENCES folders(id) ON DELETE SET NULL,
		title      TEXT NOT NULL,
		body       TEXT NOT NULL DEFAULT '',
		pinned     INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_documents_folder ON documents(folder_id)`,

	`CREATE TABLE IF NOT EXISTS alerts (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		message    TEXT NOT NULL DEFAULT '',
		level      TEXT NOT NULL DEFAULT 'info'
		           CHECK(level IN ('info','warn','urgent')),
		due_at     TEXT,
		schedule   TEXT NOT NULL DEFAULT '',
		acked_at   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_alerts_due ON alerts(due_at)`,
}
