// Package core - Watch tracking business logic
// Protocol-agnostic services over the watchlist and episode stores
package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"aniview/internal/repository"
	"aniview/pkg/models"
	"aniview/pkg/utils"
)

// ProgressPublisher receives watchlist mutation events. The websocket
// hub implements it; a nil publisher disables fan-out.
type ProgressPublisher interface {
	Publish(event models.ProgressEvent)
}

// WatchlistService defines watch record store operations
type WatchlistService interface {
	AddEntry(ctx context.Context, userID string, req models.AddEntryRequest) (*models.WatchlistEntry, error)
	GetEntry(ctx context.Context, userID string, animeID int64) (*models.WatchlistEntry, error)
	ListEntries(ctx context.Context, userID string) ([]models.WatchlistEntry, error)
	ListByStatus(ctx context.Context, userID string, status models.WatchStatus) ([]models.WatchlistEntry, error)
	RecentlyUpdated(ctx context.Context, userID string, limit int) ([]models.WatchlistEntry, error)
	CurrentlyWatching(ctx context.Context, userID string) ([]models.WatchlistEntry, error)
	RemoveEntry(ctx context.Context, userID, entryID string) error
	UpdateStatus(ctx context.Context, userID, entryID string, req models.UpdateStatusRequest) error
	MarkEpisodeWatched(ctx context.Context, userID string, animeID int64, episodeNumber, duration int) error
	UnmarkEpisodeWatched(ctx context.Context, userID string, animeID int64, episodeNumber int) error
	ListWatchedEpisodes(ctx context.Context, userID string, animeID int64) ([]int, error)
	ClearHistory(ctx context.Context, userID string, animeID int64) error
}

type watchlistService struct {
	watchRepo   repository.WatchlistRepository
	episodeRepo repository.EpisodeRepository
	publisher   ProgressPublisher
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(
	watchRepo repository.WatchlistRepository,
	episodeRepo repository.EpisodeRepository,
	publisher ProgressPublisher,
) WatchlistService {
	return &watchlistService{
		watchRepo:   watchRepo,
		episodeRepo: episodeRepo,
		publisher:   publisher,
	}
}

// AddEntry creates a watchlist entry with zero episodes watched. The
// unique (user, anime) constraint turns a repeated add into
// models.ErrEntryExists.
func (s *watchlistService) AddEntry(ctx context.Context, userID string, req models.AddEntryRequest) (*models.WatchlistEntry, error) {
	if userID == "" || req.AnimeID == 0 {
		return nil, models.ErrInvalidInput
	}
	if req.AnimeTitle == "" {
		return nil, fmt.Errorf("anime title is required: %w", models.ErrInvalidInput)
	}
	if req.Status == "" {
		req.Status = string(models.StatusPlanToWatch)
	}
	if !models.IsValidWatchStatus(req.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", req.Status, models.ErrInvalidInput)
	}

	now := time.Now()
	entry := &models.WatchlistEntry{
		ID:              utils.NewEntryID(),
		UserID:          userID,
		AnimeID:         req.AnimeID,
		AnimeTitle:      req.AnimeTitle,
		AnimeImage:      req.AnimeImage,
		Status:          models.WatchStatus(req.Status),
		EpisodesWatched: 0,
		TotalEpisodes:   req.TotalEpisodes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.watchRepo.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add watchlist entry: %w", err)
	}

	s.publish(models.ProgressEvent{
		Type:    models.EventEntryAdded,
		UserID:  userID,
		AnimeID: req.AnimeID,
	})
	return entry, nil
}

// GetEntry returns the entry for a (user, anime) pair, or nil when the
// anime is not on the list. Missing identifiers short-circuit to nil
// without touching the store.
func (s *watchlistService) GetEntry(ctx context.Context, userID string, animeID int64) (*models.WatchlistEntry, error) {
	if userID == "" || animeID == 0 {
		return nil, nil
	}
	entry, err := s.watchRepo.GetByUserAndAnime(ctx, userID, animeID)
	if err != nil {
		if errors.Is(err, models.ErrEntryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get watchlist entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns all entries for a user, unordered
func (s *watchlistService) ListEntries(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	if userID == "" {
		return nil, nil
	}
	entries, err := s.watchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return entries, nil
}

// ListByStatus returns the entries with one status, most recently
// updated first
func (s *watchlistService) ListByStatus(ctx context.Context, userID string, status models.WatchStatus) ([]models.WatchlistEntry, error) {
	if userID == "" {
		return nil, nil
	}
	if !models.IsValidWatchStatus(string(status)) {
		return nil, fmt.Errorf("invalid status %q: %w", status, models.ErrInvalidInput)
	}
	entries, err := s.watchRepo.ListByUserAndStatus(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist by status: %w", err)
	}
	return entries, nil
}

// RecentlyUpdated returns the most recently touched entries
func (s *watchlistService) RecentlyUpdated(ctx context.Context, userID string, limit int) ([]models.WatchlistEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// CurrentlyWatching returns the entries with watching status
func (s *watchlistService) CurrentlyWatching(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	return s.ListByStatus(ctx, userID, models.StatusWatching)
}

// RemoveEntry hard-deletes the watchlist entry only. Episode watch
// records for the pair are kept; clearHistory is the explicit path for
// removing them.
func (s *watchlistService) RemoveEntry(ctx context.Context, userID, entryID string) error {
	if entryID == "" {
		return models.ErrInvalidInput
	}
	if err := s.requireOwnership(ctx, userID, entryID); err != nil {
		return err
	}
	if err := s.watchRepo.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", err)
	}
	s.publish(models.ProgressEvent{
		Type:   models.EventEntryRemoved,
		UserID: userID,
	})
	return nil
}

// UpdateStatus patches status and the optional episode count and score
func (s *watchlistService) UpdateStatus(ctx context.Context, userID, entryID string, req models.UpdateStatusRequest) error {
	if entryID == "" {
		return models.ErrInvalidInput
	}
	if !models.IsValidWatchStatus(req.Status) {
		return fmt.Errorf("invalid status %q: %w", req.Status, models.ErrInvalidInput)
	}
	if req.EpisodesWatched != nil && *req.EpisodesWatched < 0 {
		return fmt.Errorf("episodes watched must be non-negative: %w", models.ErrInvalidInput)
	}
	if err := s.requireOwnership(ctx, userID, entryID); err != nil {
		return err
	}

	err := s.watchRepo.UpdateStatus(ctx, entryID, models.WatchStatus(req.Status), req.EpisodesWatched, req.Score)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	s.publish(models.ProgressEvent{
		Type:   models.EventEntryUpdated,
		UserID: userID,
	})
	return nil
}

// MarkEpisodeWatched records one episode as watched, idempotently, then
// recomputes the entry's episodes_watched counter from the live record
// count. Without a watchlist entry the recount is silently skipped.
func (s *watchlistService) MarkEpisodeWatched(ctx context.Context, userID string, animeID int64, episodeNumber, duration int) error {
	if userID == "" || animeID == 0 || episodeNumber <= 0 {
		return nil
	}

	record := &models.EpisodeWatchRecord{
		ID:            utils.NewRecordID(),
		UserID:        userID,
		AnimeID:       animeID,
		EpisodeNumber: episodeNumber,
		WatchedAt:     time.Now(),
		Duration:      duration,
	}
	if err := s.episodeRepo.Replace(ctx, record); err != nil {
		return fmt.Errorf("failed to mark episode watched: %w", err)
	}

	count, err := s.recountEpisodes(ctx, userID, animeID)
	if err != nil {
		return err
	}
	s.publish(models.ProgressEvent{
		Type:            models.EventEpisodeMarked,
		UserID:          userID,
		AnimeID:         animeID,
		EpisodeNumber:   episodeNumber,
		EpisodesWatched: count,
	})
	return nil
}

// UnmarkEpisodeWatched deletes the matching record, then runs the same
// recount-and-write as mark
func (s *watchlistService) UnmarkEpisodeWatched(ctx context.Context, userID string, animeID int64, episodeNumber int) error {
	if userID == "" || animeID == 0 || episodeNumber <= 0 {
		return nil
	}

	if err := s.episodeRepo.Delete(ctx, userID, animeID, episodeNumber); err != nil {
		return fmt.Errorf("failed to unmark episode: %w", err)
	}

	count, err := s.recountEpisodes(ctx, userID, animeID)
	if err != nil {
		return err
	}
	s.publish(models.ProgressEvent{
		Type:            models.EventEpisodeUnmarked,
		UserID:          userID,
		AnimeID:         animeID,
		EpisodeNumber:   episodeNumber,
		EpisodesWatched: count,
	})
	return nil
}

// ListWatchedEpisodes returns the watched episode numbers, ascending
func (s *watchlistService) ListWatchedEpisodes(ctx context.Context, userID string, animeID int64) ([]int, error) {
	if userID == "" || animeID == 0 {
		return nil, nil
	}
	numbers, err := s.episodeRepo.ListEpisodeNumbers(ctx, userID, animeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watched episodes: %w", err)
	}
	return numbers, nil
}

// ClearHistory batch-deletes the episode records for a pair, then
// resets the entry's counter, score and watch dates
func (s *watchlistService) ClearHistory(ctx context.Context, userID string, animeID int64) error {
	if userID == "" || animeID == 0 {
		return nil
	}

	if err := s.episodeRepo.DeleteAllForAnime(ctx, userID, animeID); err != nil {
		return fmt.Errorf("failed to clear watch history: %w", err)
	}

	entry, err := s.GetEntry(ctx, userID, animeID)
	if err != nil {
		return err
	}
	if entry != nil {
		if err := s.watchRepo.ResetProgress(ctx, entry.ID); err != nil {
			return fmt.Errorf("failed to reset progress: %w", err)
		}
	}

	s.publish(models.ProgressEvent{
		Type:    models.EventHistoryCleared,
		UserID:  userID,
		AnimeID: animeID,
	})
	return nil
}

// recountEpisodes writes the live record count onto the watchlist entry.
// The counter is always recomputed from ground truth so it self-heals
// from a crash between the record write and a previous counter update.
func (s *watchlistService) recountEpisodes(ctx context.Context, userID string, animeID int64) (int, error) {
	entry, err := s.GetEntry(ctx, userID, animeID)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		// Episode tracked before the anime was added to the list
		return 0, nil
	}

	count, err := s.episodeRepo.CountForAnime(ctx, userID, animeID)
	if err != nil {
		return 0, fmt.Errorf("failed to recount episodes: %w", err)
	}
	if err := s.watchRepo.SetEpisodesWatched(ctx, entry.ID, count); err != nil {
		return 0, fmt.Errorf("failed to write episode count: %w", err)
	}
	return count, nil
}

// requireOwnership rejects mutations against another user's entry
func (s *watchlistService) requireOwnership(ctx context.Context, userID, entryID string) error {
	entry, err := s.watchRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, models.ErrEntryNotFound) {
			return models.ErrEntryNotFound
		}
		return fmt.Errorf("failed to load entry: %w", err)
	}
	if userID != "" && entry.UserID != userID {
		return models.ErrUnauthorized
	}
	return nil
}

func (s *watchlistService) publish(event models.ProgressEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = time.Now()
	s.publisher.Publish(event)
}
