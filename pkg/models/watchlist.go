package models

import (
	"time"
)

// WatchStatus represents valid watchlist status values
type WatchStatus string

const (
	StatusWatching    WatchStatus = "watching"
	StatusCompleted   WatchStatus = "completed"
	StatusOnHold      WatchStatus = "on_hold"
	StatusDropped     WatchStatus = "dropped"
	StatusPlanToWatch WatchStatus = "plan_to_watch"
)

// IsValidWatchStatus validates status against schema constraints
func IsValidWatchStatus(status string) bool {
	switch WatchStatus(status) {
	case StatusWatching, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanToWatch:
		return true
	default:
		return false
	}
}

// WatchlistEntry is a user's tracked relationship to one anime.
// AnimeTitle, AnimeImage and TotalEpisodes are denormalized snapshots
// taken at add time; they may drift from catalog truth.
// EpisodesWatched is a cached counter recomputed from episode watch
// records on every mark/unmark, never incremented in place.
type WatchlistEntry struct {
	ID              string      `json:"id" db:"id"`
	UserID          string      `json:"user_id" db:"user_id"`
	AnimeID         int64       `json:"anime_id" db:"anime_id"`
	AnimeTitle      string      `json:"anime_title" db:"anime_title"`
	AnimeImage      string      `json:"anime_image" db:"anime_image"`
	Status          WatchStatus `json:"status" db:"status"`
	EpisodesWatched int         `json:"episodes_watched" db:"episodes_watched"`
	TotalEpisodes   int         `json:"total_episodes" db:"total_episodes"`
	Score           *float64    `json:"score,omitempty" db:"score"`
	StartDate       *time.Time  `json:"start_date,omitempty" db:"start_date"`
	FinishDate      *time.Time  `json:"finish_date,omitempty" db:"finish_date"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// EpisodeWatchRecord marks a single episode as watched. At most one
// record exists per (user, anime, episode).
type EpisodeWatchRecord struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	AnimeID       int64     `json:"anime_id" db:"anime_id"`
	EpisodeNumber int       `json:"episode_number" db:"episode_number"`
	WatchedAt     time.Time `json:"watched_at" db:"watched_at"`
	Duration      int       `json:"duration" db:"duration"` // minutes
}

// AddEntryRequest represents a request to add an anime to the watchlist
type AddEntryRequest struct {
	AnimeID       int64  `json:"anime_id" binding:"required"`
	AnimeTitle    string `json:"anime_title" binding:"required"`
	AnimeImage    string `json:"anime_image"`
	TotalEpisodes int    `json:"total_episodes"`
	Status        string `json:"status"`
}

// UpdateStatusRequest represents a request to patch a watchlist entry.
// Nil fields are left untouched.
type UpdateStatusRequest struct {
	Status          string   `json:"status" binding:"required"`
	EpisodesWatched *int     `json:"episodes_watched"`
	Score           *float64 `json:"score"`
}

// MarkEpisodeRequest carries the optional duration for a mark-watched call
type MarkEpisodeRequest struct {
	Duration int `json:"duration"`
}
