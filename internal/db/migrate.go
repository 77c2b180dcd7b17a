package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and are
// re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS user_state (
		id            TEXT PRIMARY KEY DEFAULT 'default',
		streak        INTEGER NOT NULL DEFAULT 0 CHECK(streak >= 0),
		last_log_date TEXT,
		updated_at    TEXT NOT NULL DEFAULT ''
	)`,

	// Seed the singleton row
	`INSERT OR IGNORE INTO user_state (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS checkin_logs (
		id              TEXT PRIMARY KEY,
		seq             INTEGER NOT NULL UNIQUE,
		log_date        TEXT NOT NULL,
		energy          INTEGER NOT NULL CHECK(energy BETWEEN 0 AND 10),
		mood            INTEGER NOT NULL CHECK(mood BETWEEN 0 AND 10),
		fatigue         INTEGER NOT NULL CHECK(fatigue BETWEEN 0 AND 10),
		notes           TEXT NOT NULL DEFAULT '',
		plan_exercise   TEXT NOT NULL,
		plan_rest       TEXT NOT NULL,
		plan_wellness   TEXT NOT NULL,
		plan_medication TEXT NOT NULL,
		ai_reply        TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_checkin_logs_date ON checkin_logs(log_date)`,

	`CREATE TABLE IF NOT EXISTS chat_turns (
		id           TEXT PRIMARY KEY,
		seq          INTEGER NOT NULL UNIQUE,
		user_message TEXT NOT NULL,
		ai_reply     TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,

	// Longest streak seen, kept alongside the current one
	`ALTER TABLE user_state ADD COLUMN best_streak INTEGER NOT NULL DEFAULT 0`,
}
