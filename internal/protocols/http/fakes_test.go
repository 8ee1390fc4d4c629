package http

import (
	"context"
	"time"

	"aniview/pkg/models"
)

// fakeWatchlistService records calls and returns canned results
type fakeWatchlistService struct {
	entries  []models.WatchlistEntry
	episodes []int
	added    *models.WatchlistEntry
	failWith error
}

func (f *fakeWatchlistService) AddEntry(ctx context.Context, userID string, req models.AddEntryRequest) (*models.WatchlistEntry, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	entry := &models.WatchlistEntry{
		ID:            "entry-1",
		UserID:        userID,
		AnimeID:       req.AnimeID,
		AnimeTitle:    req.AnimeTitle,
		Status:        models.WatchStatus(req.Status),
		TotalEpisodes: req.TotalEpisodes,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.added = entry
	return entry, nil
}

func (f *fakeWatchlistService) GetEntry(ctx context.Context, userID string, animeID int64) (*models.WatchlistEntry, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.entries {
		if f.entries[i].AnimeID == animeID {
			return &f.entries[i], nil
		}
	}
	return nil, nil
}

func (f *fakeWatchlistService) ListEntries(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.entries, nil
}

func (f *fakeWatchlistService) ListByStatus(ctx context.Context, userID string, status models.WatchStatus) ([]models.WatchlistEntry, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []models.WatchlistEntry
	for _, e := range f.entries {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWatchlistService) RecentlyUpdated(ctx context.Context, userID string, limit int) ([]models.WatchlistEntry, error) {
	return f.ListEntries(ctx, userID)
}

func (f *fakeWatchlistService) CurrentlyWatching(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	return f.ListByStatus(ctx, userID, models.StatusWatching)
}

func (f *fakeWatchlistService) RemoveEntry(ctx context.Context, userID, entryID string) error {
	return f.failWith
}

func (f *fakeWatchlistService) UpdateStatus(ctx context.Context, userID, entryID string, req models.UpdateStatusRequest) error {
	return f.failWith
}

func (f *fakeWatchlistService) MarkEpisodeWatched(ctx context.Context, userID string, animeID int64, episodeNumber, duration int) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.episodes = append(f.episodes, episodeNumber)
	return nil
}

func (f *fakeWatchlistService) UnmarkEpisodeWatched(ctx context.Context, userID string, animeID int64, episodeNumber int) error {
	return f.failWith
}

func (f *fakeWatchlistService) ListWatchedEpisodes(ctx context.Context, userID string, animeID int64) ([]int, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.episodes, nil
}

func (f *fakeWatchlistService) ClearHistory(ctx context.Context, userID string, animeID int64) error {
	return f.failWith
}

// fakeStatsService returns fixed aggregates
type fakeStatsService struct {
	stats   *models.WatchListStats
	monthly *models.MonthlyProgress
	watch   *models.WatchTime
}

func (f *fakeStatsService) ComputeStats(ctx context.Context, userID string) *models.WatchListStats {
	if f.stats != nil {
		return f.stats
	}
	return &models.WatchListStats{}
}

func (f *fakeStatsService) ComputeMonthlyProgress(ctx context.Context, userID string) *models.MonthlyProgress {
	if f.monthly != nil {
		return f.monthly
	}
	return &models.MonthlyProgress{}
}

func (f *fakeStatsService) TotalWatchTime(ctx context.Context, userID string) *models.WatchTime {
	if f.watch != nil {
		return f.watch
	}
	return &models.WatchTime{}
}
