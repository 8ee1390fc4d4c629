package database

import (
	"database/sql"
	"fmt"
)

// Migrate creates the watchlist and episode_watches tables. Statements
// are idempotent so the server can run them on every start.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS watchlist (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			anime_id BIGINT NOT NULL,
			anime_title TEXT NOT NULL,
			anime_image TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL CHECK (status IN ('watching', 'completed', 'on_hold', 'dropped', 'plan_to_watch')),
			episodes_watched INTEGER NOT NULL DEFAULT 0,
			total_episodes INTEGER NOT NULL DEFAULT 0,
			score DOUBLE PRECISION,
			start_date TIMESTAMPTZ,
			finish_date TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS watchlist_user_anime_idx
			ON watchlist (user_id, anime_id);`,
		`CREATE INDEX IF NOT EXISTS watchlist_user_status_idx
			ON watchlist (user_id, status);`,
		`CREATE TABLE IF NOT EXISTS episode_watches (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			anime_id BIGINT NOT NULL,
			episode_number INTEGER NOT NULL CHECK (episode_number > 0),
			watched_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			duration INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS episode_watches_user_anime_ep_idx
			ON episode_watches (user_id, anime_id, episode_number);`,
		`CREATE INDEX IF NOT EXISTS episode_watches_user_idx
			ON episode_watches (user_id);`,
	}

	for i, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("migrate stmt %d: %w", i, err)
		}
	}
	return nil
}
