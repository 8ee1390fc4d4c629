package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"aniview/pkg/models"
)

const watchlistColumns = `id, user_id, anime_id, anime_title, anime_image, status,
		episodes_watched, total_episodes, score, start_date, finish_date, created_at, updated_at`

// WatchlistRepository handles watchlist entry persistence
type WatchlistRepository interface {
	Insert(ctx context.Context, entry *models.WatchlistEntry) error
	GetByID(ctx context.Context, id string) (*models.WatchlistEntry, error)
	GetByUserAndAnime(ctx context.Context, userID string, animeID int64) (*models.WatchlistEntry, error)
	ListByUser(ctx context.Context, userID string) ([]models.WatchlistEntry, error)
	ListByUserAndStatus(ctx context.Context, userID string, status models.WatchStatus) ([]models.WatchlistEntry, error)
	UpdateStatus(ctx context.Context, entryID string, status models.WatchStatus, episodesWatched *int, score *float64) error
	SetEpisodesWatched(ctx context.Context, entryID string, count int) error
	ResetProgress(ctx context.Context, entryID string) error
	Delete(ctx context.Context, entryID string) error
}

type watchlistRepository struct {
	pool *pgxpool.Pool
}

// NewWatchlistRepository creates a new PostgreSQL watchlist repository
func NewWatchlistRepository(pool *pgxpool.Pool) WatchlistRepository {
	return &watchlistRepository{pool: pool}
}

// Insert creates a watchlist entry. The unique index on (user_id,
// anime_id) rejects a second entry for the same pair.
func (r *watchlistRepository) Insert(ctx context.Context, entry *models.WatchlistEntry) error {
	query := `
		INSERT INTO watchlist (` + watchlistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.AnimeID,
		entry.AnimeTitle,
		entry.AnimeImage,
		string(entry.Status),
		entry.EpisodesWatched,
		entry.TotalEpisodes,
		entry.Score,
		entry.StartDate,
		entry.FinishDate,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return r.mapDBError(err, "insert_entry")
	}
	return nil
}

// GetByID retrieves an entry by its id
func (r *watchlistRepository) GetByID(ctx context.Context, id string) (*models.WatchlistEntry, error) {
	query := `SELECT ` + watchlistColumns + ` FROM watchlist WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "get_entry_by_id")
}

// GetByUserAndAnime retrieves the entry for a (user, anime) pair.
// The unique index guarantees at most one row.
func (r *watchlistRepository) GetByUserAndAnime(ctx context.Context, userID string, animeID int64) (*models.WatchlistEntry, error) {
	query := `SELECT ` + watchlistColumns + ` FROM watchlist WHERE user_id = $1 AND anime_id = $2`
	return r.scanOne(r.pool.QueryRow(ctx, query, userID, animeID), "get_entry_by_user_anime")
}

// ListByUser retrieves all entries for a user
func (r *watchlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	query := `SELECT ` + watchlistColumns + ` FROM watchlist WHERE user_id = $1`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, r.mapDBError(err, "list_entries")
	}
	defer rows.Close()
	return r.scanMany(rows, "list_entries")
}

// ListByUserAndStatus retrieves the entries with one status, most
// recently updated first
func (r *watchlistRepository) ListByUserAndStatus(ctx context.Context, userID string, status models.WatchStatus) ([]models.WatchlistEntry, error) {
	query := `SELECT ` + watchlistColumns + `
		FROM watchlist
		WHERE user_id = $1 AND status = $2
		ORDER BY updated_at DESC`
	rows, err := r.pool.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, r.mapDBError(err, "list_entries_by_status")
	}
	defer rows.Close()
	return r.scanMany(rows, "list_entries_by_status")
}

// UpdateStatus patches status and the optional fields; updated_at is
// always refreshed
func (r *watchlistRepository) UpdateStatus(ctx context.Context, entryID string, status models.WatchStatus, episodesWatched *int, score *float64) error {
	query := `
		UPDATE watchlist
		SET status = $2,
		    episodes_watched = COALESCE($3, episodes_watched),
		    score = COALESCE($4, score),
		    updated_at = $5
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, entryID, string(status), episodesWatched, score, time.Now())
	if err != nil {
		return r.mapDBError(err, "update_status")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update_status: %w", models.ErrEntryNotFound)
	}
	return nil
}

// SetEpisodesWatched writes the recomputed derived counter
func (r *watchlistRepository) SetEpisodesWatched(ctx context.Context, entryID string, count int) error {
	query := `UPDATE watchlist SET episodes_watched = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, entryID, count, time.Now())
	if err != nil {
		return r.mapDBError(err, "set_episodes_watched")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set_episodes_watched: %w", models.ErrEntryNotFound)
	}
	return nil
}

// ResetProgress zeroes the counter and clears score and watch dates
func (r *watchlistRepository) ResetProgress(ctx context.Context, entryID string) error {
	query := `
		UPDATE watchlist
		SET episodes_watched = 0,
		    score = NULL,
		    start_date = NULL,
		    finish_date = NULL,
		    updated_at = $2
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, entryID, time.Now())
	if err != nil {
		return r.mapDBError(err, "reset_progress")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reset_progress: %w", models.ErrEntryNotFound)
	}
	return nil
}

// Delete hard-deletes the entry document only; episode watch records
// for the pair are left in place
func (r *watchlistRepository) Delete(ctx context.Context, entryID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM watchlist WHERE id = $1`, entryID)
	if err != nil {
		return r.mapDBError(err, "delete_entry")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete_entry: %w", models.ErrEntryNotFound)
	}
	return nil
}

func (r *watchlistRepository) scanOne(row pgx.Row, operation string) (*models.WatchlistEntry, error) {
	entry := &models.WatchlistEntry{}
	var statusStr string
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.AnimeID,
		&entry.AnimeTitle,
		&entry.AnimeImage,
		&statusStr,
		&entry.EpisodesWatched,
		&entry.TotalEpisodes,
		&entry.Score,
		&entry.StartDate,
		&entry.FinishDate,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, r.mapDBError(err, operation)
	}
	entry.Status = models.WatchStatus(statusStr)
	return entry, nil
}

func (r *watchlistRepository) scanMany(rows pgx.Rows, operation string) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	for rows.Next() {
		var entry models.WatchlistEntry
		var statusStr string
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.AnimeID,
			&entry.AnimeTitle,
			&entry.AnimeImage,
			&statusStr,
			&entry.EpisodesWatched,
			&entry.TotalEpisodes,
			&entry.Score,
			&entry.StartDate,
			&entry.FinishDate,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, r.mapDBError(err, operation)
		}
		entry.Status = models.WatchStatus(statusStr)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// mapDBError maps database errors to application errors
func (r *watchlistRepository) mapDBError(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, models.ErrEntryNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", operation, models.ErrEntryExists)
		case "23514": // check_violation
			return fmt.Errorf("%s: %w", operation, models.ErrInvalidInput)
		}
	}

	return fmt.Errorf("database error during %s: %w", operation, err)
}
