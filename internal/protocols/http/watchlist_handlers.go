package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"aniview/pkg/models"
)

// addEntry adds an anime to the authenticated user's watchlist
func (s *Server) addEntry(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req models.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	entry, err := s.watchlistSvc.AddEntry(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(201, models.APIResponse{
		Success:   true,
		Message:   "Entry added to watchlist",
		Data:      entry,
		Timestamp: time.Now(),
	})
}

// listWatchlist returns one page of the user's watchlist, optionally
// filtered by status
func (s *Server) listWatchlist(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	// Parse pagination parameters
	page := 1
	limit := 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	var (
		entries []models.WatchlistEntry
		err     error
	)
	if status := c.Query("status"); status != "" {
		if !models.IsValidWatchStatus(status) {
			c.JSON(400, models.APIResponse{
				Success:   false,
				Error:     "invalid watch status",
				Timestamp: time.Now(),
			})
			return
		}
		entries, err = s.watchlistSvc.ListByStatus(c.Request.Context(), userID, models.WatchStatus(status))
	} else {
		entries, err = s.watchlistSvc.ListEntries(c.Request.Context(), userID)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	total := len(entries)
	offset := (page - 1) * limit
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	c.JSON(200, models.APIResponse{
		Success: true,
		Data: models.PaginatedResponse[models.WatchlistEntry]{
			Data: entries[offset:end],
			Meta: models.NewPaginationMeta(total, limit, offset),
		},
		Timestamp: time.Now(),
	})
}

// recentlyUpdated returns the most recently touched entries
func (s *Server) recentlyUpdated(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	limit := 10
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}

	entries, err := s.watchlistSvc.RecentlyUpdated(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      entries,
		Timestamp: time.Now(),
	})
}

// currentlyWatching returns entries with watching status
func (s *Server) currentlyWatching(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	entries, err := s.watchlistSvc.CurrentlyWatching(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      entries,
		Timestamp: time.Now(),
	})
}

// getEntry looks up the user's entry for one anime. A missing entry is
// a successful response with null data so the catalog page can render
// its "add" state without error handling.
func (s *Server) getEntry(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	animeID, ok := parseAnimeID(c, "anime_id")
	if !ok {
		return
	}

	entry, err := s.watchlistSvc.GetEntry(c.Request.Context(), userID, animeID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      entry,
		Timestamp: time.Now(),
	})
}

// updateEntryStatus changes the status and optional progress fields of
// an entry
func (s *Server) updateEntryStatus(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	entryID := c.Param("id")
	if entryID == "" {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "entry id is required",
			Timestamp: time.Now(),
		})
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	if err := s.watchlistSvc.UpdateStatus(c.Request.Context(), userID, entryID, req); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Entry updated",
		Timestamp: time.Now(),
	})
}

// removeEntry deletes an entry from the user's watchlist
func (s *Server) removeEntry(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	entryID := c.Param("id")
	if entryID == "" {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "entry id is required",
			Timestamp: time.Now(),
		})
		return
	}

	if err := s.watchlistSvc.RemoveEntry(c.Request.Context(), userID, entryID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Entry removed",
		Timestamp: time.Now(),
	})
}

// markEpisode records one episode as watched and recomputes the
// entry's episode counter
func (s *Server) markEpisode(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	animeID, ok := parseAnimeID(c, "anime_id")
	if !ok {
		return
	}
	episode, ok := parseEpisodeNumber(c)
	if !ok {
		return
	}

	// Duration body is optional; a bare PUT marks with zero runtime
	var req models.MarkEpisodeRequest
	_ = c.ShouldBindJSON(&req)

	if err := s.watchlistSvc.MarkEpisodeWatched(c.Request.Context(), userID, animeID, episode, req.Duration); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Episode marked as watched",
		Timestamp: time.Now(),
	})
}

// unmarkEpisode removes one episode's watch record
func (s *Server) unmarkEpisode(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	animeID, ok := parseAnimeID(c, "anime_id")
	if !ok {
		return
	}
	episode, ok := parseEpisodeNumber(c)
	if !ok {
		return
	}

	if err := s.watchlistSvc.UnmarkEpisodeWatched(c.Request.Context(), userID, animeID, episode); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Episode unmarked",
		Timestamp: time.Now(),
	})
}

// listWatchedEpisodes returns the watched episode numbers for one
// anime, ascending
func (s *Server) listWatchedEpisodes(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	animeID, ok := parseAnimeID(c, "anime_id")
	if !ok {
		return
	}

	episodes, err := s.watchlistSvc.ListWatchedEpisodes(c.Request.Context(), userID, animeID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      episodes,
		Timestamp: time.Now(),
	})
}

// clearHistory removes every watch record for one anime and resets the
// entry's episode counter
func (s *Server) clearHistory(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	animeID, ok := parseAnimeID(c, "anime_id")
	if !ok {
		return
	}

	if err := s.watchlistSvc.ClearHistory(c.Request.Context(), userID, animeID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Watch history cleared",
		Timestamp: time.Now(),
	})
}

func parseEpisodeNumber(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || n <= 0 {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid episode number",
			Timestamp: time.Now(),
		})
		return 0, false
	}
	return n, true
}

func unauthorized(c *gin.Context) {
	c.JSON(401, models.APIResponse{
		Success:   false,
		Error:     "unauthorized",
		Timestamp: time.Now(),
	})
}

// writeError maps a service error onto the response envelope
func writeError(c *gin.Context, err error) {
	c.JSON(models.HTTPStatusForError(err), models.APIResponse{
		Success:   false,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
}
