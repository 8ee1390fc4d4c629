package utils

import (
	"fmt"
	"time"
)

// MonthKey returns the YYYY-MM label for a timestamp, in the local zone
// of the caller's clock. Monthly aggregation buckets on this value.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// CurrentMonthKey returns the YYYY-MM label for the current month
func CurrentMonthKey() string {
	return MonthKey(time.Now())
}

// TimeAgo returns human-readable time ago string
func TimeAgo(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	}
	if duration < time.Hour {
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	}
	if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := int(duration.Hours() / 24)
	if days == 1 {
		return "yesterday"
	}
	if days < 7 {
		return fmt.Sprintf("%d days ago", days)
	}

	weeks := days / 7
	if weeks == 1 {
		return "1 week ago"
	}
	return fmt.Sprintf("%d weeks ago", weeks)
}
