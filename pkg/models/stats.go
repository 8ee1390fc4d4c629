package models

// WatchListStats is the aggregate view of a user's watchlist. Derived,
// never persisted.
type WatchListStats struct {
	Total                int     `json:"total"`
	Watching             int     `json:"watching"`
	Completed            int     `json:"completed"`
	OnHold               int     `json:"on_hold"`
	Dropped              int     `json:"dropped"`
	PlanToWatch          int     `json:"plan_to_watch"`
	TotalEpisodesWatched int     `json:"total_episodes_watched"`
	MeanScore            float64 `json:"mean_score"` // 1 decimal, 0 when no scored entries
}

// MonthlyGoalEpisodes is the fixed goal percent_complete is measured
// against: 120 episodes per calendar month.
const MonthlyGoalEpisodes = 120

// MonthlyProgress summarizes a user's activity in the current calendar
// month. EpisodesThisWeek is a coarse monthly/4 estimate, not a true
// weekly window count.
type MonthlyProgress struct {
	Month             string `json:"month"` // YYYY-MM
	EpisodesWatched   int    `json:"episodes_watched"`
	AnimeCompleted    int    `json:"anime_completed"`
	AnimeStarted      int    `json:"anime_started"`
	PercentComplete   int    `json:"percent_complete"`
	EpisodesThisWeek  int    `json:"episodes_this_week"`
	EpisodesThisMonth int    `json:"episodes_this_month"`
	MonthlyGoal       int    `json:"monthly_goal"`
}

// WatchTime is the total recorded watch duration for a user
type WatchTime struct {
	TotalMinutes int `json:"total_minutes"`
}
