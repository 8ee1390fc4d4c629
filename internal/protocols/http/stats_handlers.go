package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"aniview/pkg/models"
)

// getStats returns the user's watchlist statistics. The stats service
// degrades to zeroed defaults internally, so this never errors.
func (s *Server) getStats(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      s.statsSvc.ComputeStats(c.Request.Context(), userID),
		Timestamp: time.Now(),
	})
}

// getMonthlyProgress returns progress against the monthly episode goal
func (s *Server) getMonthlyProgress(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      s.statsSvc.ComputeMonthlyProgress(c.Request.Context(), userID),
		Timestamp: time.Now(),
	})
}

// getWatchTime returns cumulative watch time across all records
func (s *Server) getWatchTime(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      s.statsSvc.TotalWatchTime(c.Request.Context(), userID),
		Timestamp: time.Now(),
	})
}
