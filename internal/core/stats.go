package core

import (
	"context"
	"math"

	"aniview/internal/repository"
	"aniview/pkg/logger"
	"aniview/pkg/models"
	"aniview/pkg/utils"
)

// StatsService derives aggregate views from the watch record store.
// Its methods never fail: a store error degrades to zeroed defaults so
// the dashboard always has something to render.
type StatsService interface {
	ComputeStats(ctx context.Context, userID string) *models.WatchListStats
	ComputeMonthlyProgress(ctx context.Context, userID string) *models.MonthlyProgress
	TotalWatchTime(ctx context.Context, userID string) *models.WatchTime
}

type statsService struct {
	watchRepo   repository.WatchlistRepository
	episodeRepo repository.EpisodeRepository
}

// NewStatsService creates a new statistics service
func NewStatsService(
	watchRepo repository.WatchlistRepository,
	episodeRepo repository.EpisodeRepository,
) StatsService {
	return &statsService{
		watchRepo:   watchRepo,
		episodeRepo: episodeRepo,
	}
}

// ComputeStats tallies the user's watchlist in a single pass. A user
// with no entries gets all-zero counts and mean score 0, never NaN.
func (s *statsService) ComputeStats(ctx context.Context, userID string) *models.WatchListStats {
	stats := &models.WatchListStats{}
	if userID == "" {
		return stats
	}

	entries, err := s.watchRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Warnf("stats degraded to zeroes: %v", err)
		return stats
	}

	var totalScore float64
	var scoreCount int

	for _, entry := range entries {
		stats.Total++
		switch entry.Status {
		case models.StatusWatching:
			stats.Watching++
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusOnHold:
			stats.OnHold++
		case models.StatusDropped:
			stats.Dropped++
		case models.StatusPlanToWatch:
			stats.PlanToWatch++
		}

		stats.TotalEpisodesWatched += entry.EpisodesWatched

		if entry.Score != nil && *entry.Score != 0 {
			totalScore += *entry.Score
			scoreCount++
		}
	}

	if scoreCount > 0 {
		stats.MeanScore = math.Round(totalScore/float64(scoreCount)*10) / 10
	}
	return stats
}

// ComputeMonthlyProgress counts the user's activity inside the current
// calendar month and measures it against the fixed 120 episode goal.
// episodes_this_week is a monthly/4 approximation.
func (s *statsService) ComputeMonthlyProgress(ctx context.Context, userID string) *models.MonthlyProgress {
	progress := &models.MonthlyProgress{
		Month:       utils.CurrentMonthKey(),
		MonthlyGoal: models.MonthlyGoalEpisodes,
	}
	if userID == "" {
		return progress
	}

	records, err := s.episodeRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Warnf("monthly progress degraded to defaults: %v", err)
		return progress
	}
	entries, err := s.watchRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Warnf("monthly progress degraded to defaults: %v", err)
		return progress
	}

	for _, rec := range records {
		if utils.MonthKey(rec.WatchedAt) == progress.Month {
			progress.EpisodesThisMonth++
		}
	}

	for _, entry := range entries {
		if utils.MonthKey(entry.CreatedAt) == progress.Month {
			progress.AnimeStarted++
		}
		if entry.Status == models.StatusCompleted && utils.MonthKey(entry.UpdatedAt) == progress.Month {
			progress.AnimeCompleted++
		}
	}

	progress.EpisodesWatched = progress.EpisodesThisMonth
	percent := int(math.Round(float64(progress.EpisodesThisMonth) / models.MonthlyGoalEpisodes * 100))
	if percent > 100 {
		percent = 100
	}
	progress.PercentComplete = percent
	progress.EpisodesThisWeek = int(math.Round(float64(progress.EpisodesThisMonth) / 4))
	return progress
}

// TotalWatchTime sums recorded episode durations, in minutes
func (s *statsService) TotalWatchTime(ctx context.Context, userID string) *models.WatchTime {
	watchTime := &models.WatchTime{}
	if userID == "" {
		return watchTime
	}

	records, err := s.episodeRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Warnf("watch time degraded to zero: %v", err)
		return watchTime
	}
	for _, rec := range records {
		watchTime.TotalMinutes += rec.Duration
	}
	return watchTime
}
