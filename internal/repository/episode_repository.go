package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"aniview/pkg/models"
)

// EpisodeRepository handles episode watch record persistence
type EpisodeRepository interface {
	// Replace deletes any existing record for the (user, anime, episode)
	// triple and inserts the fresh one; mark-watched is idempotent.
	Replace(ctx context.Context, record *models.EpisodeWatchRecord) error
	Delete(ctx context.Context, userID string, animeID int64, episodeNumber int) error
	DeleteAllForAnime(ctx context.Context, userID string, animeID int64) error
	ListEpisodeNumbers(ctx context.Context, userID string, animeID int64) ([]int, error)
	ListByUser(ctx context.Context, userID string) ([]models.EpisodeWatchRecord, error)
	CountForAnime(ctx context.Context, userID string, animeID int64) (int, error)
}

type episodeRepository struct {
	pool *pgxpool.Pool
}

// NewEpisodeRepository creates a new PostgreSQL episode watch repository
func NewEpisodeRepository(pool *pgxpool.Pool) EpisodeRepository {
	return &episodeRepository{pool: pool}
}

// Replace runs delete-then-insert in one transaction
func (r *episodeRepository) Replace(ctx context.Context, record *models.EpisodeWatchRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return r.mapDBError(err, "replace_record_begin")
	}
	defer tx.Rollback(ctx)

	deleteQuery := `
		DELETE FROM episode_watches
		WHERE user_id = $1 AND anime_id = $2 AND episode_number = $3
	`
	if _, err := tx.Exec(ctx, deleteQuery, record.UserID, record.AnimeID, record.EpisodeNumber); err != nil {
		return r.mapDBError(err, "replace_record_delete")
	}

	insertQuery := `
		INSERT INTO episode_watches (id, user_id, anime_id, episode_number, watched_at, duration)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.Exec(ctx, insertQuery,
		record.ID,
		record.UserID,
		record.AnimeID,
		record.EpisodeNumber,
		record.WatchedAt,
		record.Duration,
	)
	if err != nil {
		return r.mapDBError(err, "replace_record_insert")
	}

	if err := tx.Commit(ctx); err != nil {
		return r.mapDBError(err, "replace_record_commit")
	}
	return nil
}

// Delete removes the record for one episode if present. Deleting a
// record that does not exist is not an error.
func (r *episodeRepository) Delete(ctx context.Context, userID string, animeID int64, episodeNumber int) error {
	query := `
		DELETE FROM episode_watches
		WHERE user_id = $1 AND anime_id = $2 AND episode_number = $3
	`
	if _, err := r.pool.Exec(ctx, query, userID, animeID, episodeNumber); err != nil {
		return r.mapDBError(err, "delete_record")
	}
	return nil
}

// DeleteAllForAnime removes every record for a (user, anime) pair in
// one batch
func (r *episodeRepository) DeleteAllForAnime(ctx context.Context, userID string, animeID int64) error {
	query := `DELETE FROM episode_watches WHERE user_id = $1 AND anime_id = $2`
	if _, err := r.pool.Exec(ctx, query, userID, animeID); err != nil {
		return r.mapDBError(err, "delete_all_records")
	}
	return nil
}

// ListEpisodeNumbers returns watched episode numbers in ascending order
func (r *episodeRepository) ListEpisodeNumbers(ctx context.Context, userID string, animeID int64) ([]int, error) {
	query := `
		SELECT episode_number FROM episode_watches
		WHERE user_id = $1 AND anime_id = $2
		ORDER BY episode_number ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, animeID)
	if err != nil {
		return nil, r.mapDBError(err, "list_episode_numbers")
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, r.mapDBError(err, "scan_episode_number")
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// ListByUser returns all episode watch records for a user
func (r *episodeRepository) ListByUser(ctx context.Context, userID string) ([]models.EpisodeWatchRecord, error) {
	query := `
		SELECT id, user_id, anime_id, episode_number, watched_at, duration
		FROM episode_watches
		WHERE user_id = $1
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, r.mapDBError(err, "list_records")
	}
	defer rows.Close()

	var records []models.EpisodeWatchRecord
	for rows.Next() {
		var rec models.EpisodeWatchRecord
		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.AnimeID,
			&rec.EpisodeNumber,
			&rec.WatchedAt,
			&rec.Duration,
		)
		if err != nil {
			return nil, r.mapDBError(err, "scan_record")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountForAnime returns the live record count for a (user, anime) pair.
// This is the ground truth the episodes_watched counter is recomputed
// from.
func (r *episodeRepository) CountForAnime(ctx context.Context, userID string, animeID int64) (int, error) {
	query := `SELECT COUNT(*) FROM episode_watches WHERE user_id = $1 AND anime_id = $2`
	var count int
	if err := r.pool.QueryRow(ctx, query, userID, animeID).Scan(&count); err != nil {
		return 0, r.mapDBError(err, "count_records")
	}
	return count, nil
}

// mapDBError maps database errors to application errors
func (r *episodeRepository) mapDBError(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, models.ErrEntryNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: duplicate episode record: %w", operation, err)
		case "23514": // check_violation
			return fmt.Errorf("%s: %w", operation, models.ErrInvalidInput)
		}
	}

	return fmt.Errorf("database error during %s: %w", operation, err)
}
