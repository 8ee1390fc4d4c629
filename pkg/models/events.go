package models

import "time"

// Progress event types pushed to connected sessions
const (
	EventEntryAdded      = "entry_added"
	EventEntryUpdated    = "entry_updated"
	EventEntryRemoved    = "entry_removed"
	EventEpisodeMarked   = "episode_marked"
	EventEpisodeUnmarked = "episode_unmarked"
	EventHistoryCleared  = "history_cleared"
)

// ProgressEvent describes one watchlist mutation. The websocket hub
// fans these out to the owning user's connected sessions.
type ProgressEvent struct {
	Type            string    `json:"type"`
	UserID          string    `json:"user_id"`
	AnimeID         int64     `json:"anime_id,omitempty"`
	EpisodeNumber   int       `json:"episode_number,omitempty"`
	EpisodesWatched int       `json:"episodes_watched,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
