package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aniview/pkg/models"
	"aniview/pkg/utils"
)

func newStatsFixture() (StatsService, *fakeWatchlistRepo, *fakeEpisodeRepo) {
	watchRepo := newFakeWatchlistRepo()
	episodeRepo := newFakeEpisodeRepo()
	return NewStatsService(watchRepo, episodeRepo), watchRepo, episodeRepo
}

func seedEntry(repo *fakeWatchlistRepo, id, userID string, animeID int64, status models.WatchStatus, episodes int, score *float64, createdAt, updatedAt time.Time) {
	repo.entries[id] = &models.WatchlistEntry{
		ID:              id,
		UserID:          userID,
		AnimeID:         animeID,
		AnimeTitle:      "Seed",
		Status:          status,
		EpisodesWatched: episodes,
		Score:           score,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

func scoreOf(v float64) *float64 { return &v }

func TestComputeStatsEmptyUser(t *testing.T) {
	svc, _, _ := newStatsFixture()

	stats := svc.ComputeStats(context.Background(), "user-1")

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.TotalEpisodesWatched)
	assert.Equal(t, 0.0, stats.MeanScore)
}

func TestComputeStatsTallies(t *testing.T) {
	svc, watchRepo, _ := newStatsFixture()
	now := time.Now()

	seedEntry(watchRepo, "e1", "user-1", 1, models.StatusWatching, 5, scoreOf(7), now, now)
	seedEntry(watchRepo, "e2", "user-1", 2, models.StatusCompleted, 24, scoreOf(8), now, now)
	seedEntry(watchRepo, "e3", "user-1", 3, models.StatusOnHold, 3, nil, now, now)
	seedEntry(watchRepo, "e4", "user-1", 4, models.StatusDropped, 1, nil, now, now)
	seedEntry(watchRepo, "e5", "user-1", 5, models.StatusPlanToWatch, 0, nil, now, now)
	// another user's entry must not leak in
	seedEntry(watchRepo, "e6", "user-2", 6, models.StatusCompleted, 12, scoreOf(10), now, now)

	stats := svc.ComputeStats(context.Background(), "user-1")

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Watching)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.OnHold)
	assert.Equal(t, 1, stats.Dropped)
	assert.Equal(t, 1, stats.PlanToWatch)
	assert.Equal(t, 33, stats.TotalEpisodesWatched)
	assert.Equal(t, 7.5, stats.MeanScore)
}

func TestComputeStatsMeanScoreRounding(t *testing.T) {
	svc, watchRepo, _ := newStatsFixture()
	now := time.Now()

	// mean of 7, 8, 8 = 7.666... rounds half-up to 7.7
	seedEntry(watchRepo, "e1", "user-1", 1, models.StatusCompleted, 1, scoreOf(7), now, now)
	seedEntry(watchRepo, "e2", "user-1", 2, models.StatusCompleted, 1, scoreOf(8), now, now)
	seedEntry(watchRepo, "e3", "user-1", 3, models.StatusCompleted, 1, scoreOf(8), now, now)

	stats := svc.ComputeStats(context.Background(), "user-1")
	assert.Equal(t, 7.7, stats.MeanScore)
}

func TestComputeStatsDegradesOnStoreError(t *testing.T) {
	svc, watchRepo, _ := newStatsFixture()
	watchRepo.failWith = errors.New("connection refused")

	stats := svc.ComputeStats(context.Background(), "user-1")
	assert.Equal(t, &models.WatchListStats{}, stats)
}

func TestMonthlyProgressCountsCurrentMonth(t *testing.T) {
	svc, watchRepo, episodeRepo := newStatsFixture()
	now := time.Now()
	lastYear := now.AddDate(-1, 0, 0)

	for ep := 1; ep <= 6; ep++ {
		episodeRepo.records[episodeKey{"user-1", 1, ep}] = &models.EpisodeWatchRecord{
			UserID: "user-1", AnimeID: 1, EpisodeNumber: ep, WatchedAt: now,
		}
	}
	// outside the current month
	episodeRepo.records[episodeKey{"user-1", 2, 1}] = &models.EpisodeWatchRecord{
		UserID: "user-1", AnimeID: 2, EpisodeNumber: 1, WatchedAt: lastYear,
	}

	seedEntry(watchRepo, "e1", "user-1", 1, models.StatusWatching, 6, nil, now, now)
	seedEntry(watchRepo, "e2", "user-1", 2, models.StatusCompleted, 12, nil, lastYear, now)
	seedEntry(watchRepo, "e3", "user-1", 3, models.StatusCompleted, 12, nil, lastYear, lastYear)

	progress := svc.ComputeMonthlyProgress(context.Background(), "user-1")

	assert.Equal(t, utils.CurrentMonthKey(), progress.Month)
	assert.Equal(t, 6, progress.EpisodesThisMonth)
	assert.Equal(t, 6, progress.EpisodesWatched)
	assert.Equal(t, 1, progress.AnimeStarted)   // e1 created this month
	assert.Equal(t, 1, progress.AnimeCompleted) // e2 completed and touched this month
	assert.Equal(t, 5, progress.PercentComplete)
	assert.Equal(t, 2, progress.EpisodesThisWeek) // round(6/4)
	assert.Equal(t, models.MonthlyGoalEpisodes, progress.MonthlyGoal)
}

func TestMonthlyProgressCapsAtHundredPercent(t *testing.T) {
	svc, watchRepo, episodeRepo := newStatsFixture()
	now := time.Now()
	seedEntry(watchRepo, "e1", "user-1", 1, models.StatusWatching, 0, nil, now, now)

	for ep := 1; ep <= 150; ep++ {
		episodeRepo.records[episodeKey{"user-1", 1, ep}] = &models.EpisodeWatchRecord{
			UserID: "user-1", AnimeID: 1, EpisodeNumber: ep, WatchedAt: now,
		}
	}

	progress := svc.ComputeMonthlyProgress(context.Background(), "user-1")
	assert.Equal(t, 100, progress.PercentComplete)
}

func TestMonthlyProgressDefaultsWhenStoreUnavailable(t *testing.T) {
	svc, _, episodeRepo := newStatsFixture()
	episodeRepo.failWith = errors.New("connection refused")

	progress := svc.ComputeMonthlyProgress(context.Background(), "user-1")

	require.NotNil(t, progress)
	assert.Equal(t, utils.CurrentMonthKey(), progress.Month)
	assert.Equal(t, 0, progress.EpisodesThisMonth)
	assert.Equal(t, 0, progress.PercentComplete)
	assert.Equal(t, models.MonthlyGoalEpisodes, progress.MonthlyGoal)
}

func TestTotalWatchTimeSumsDurations(t *testing.T) {
	svc, _, episodeRepo := newStatsFixture()
	now := time.Now()

	episodeRepo.records[episodeKey{"user-1", 1, 1}] = &models.EpisodeWatchRecord{
		UserID: "user-1", AnimeID: 1, EpisodeNumber: 1, WatchedAt: now, Duration: 24,
	}
	episodeRepo.records[episodeKey{"user-1", 1, 2}] = &models.EpisodeWatchRecord{
		UserID: "user-1", AnimeID: 1, EpisodeNumber: 2, WatchedAt: now, Duration: 25,
	}

	watchTime := svc.TotalWatchTime(context.Background(), "user-1")
	assert.Equal(t, 49, watchTime.TotalMinutes)
}
