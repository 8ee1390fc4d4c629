package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"aniview/pkg/models"
)

// searchCatalog proxies a catalog search. Upstream failures surface as
// an empty result set, never an error page.
func (s *Server) searchCatalog(c *gin.Context) {
	var req models.CatalogSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid query parameters",
			Timestamp: time.Now(),
		})
		return
	}
	models.NormalizeCatalogSearch(&req)

	result := s.catalog.Search(c.Request.Context(), req)
	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// topAnime returns the highest ranked series
func (s *Server) topAnime(c *gin.Context) {
	result := s.catalog.Top(c.Request.Context(), parseLimit(c, 24))
	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// topAiring returns the highest ranked currently airing series
func (s *Server) topAiring(c *gin.Context) {
	result := s.catalog.TopAiring(c.Request.Context(), parseLimit(c, 24))
	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// topMovies returns top movies, or movies filtered by genre when a
// genre parameter is present
func (s *Server) topMovies(c *gin.Context) {
	var result []models.Anime
	if genre := c.Query("genre"); genre != "" {
		result = s.catalog.MoviesByGenre(c.Request.Context(), genre)
	} else {
		result = s.catalog.TopMovies(c.Request.Context(), parseLimit(c, 24))
	}
	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// seasonNow returns the current simulcast season
func (s *Server) seasonNow(c *gin.Context) {
	result := s.catalog.SeasonNow(c.Request.Context(), parseLimit(c, 24))
	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// getAnime retrieves full details for a single series
func (s *Server) getAnime(c *gin.Context) {
	id, ok := parseAnimeID(c, "id")
	if !ok {
		return
	}

	anime, err := s.catalog.GetAnime(c.Request.Context(), id)
	if err != nil {
		c.JSON(models.HTTPStatusForError(err), models.APIResponse{
			Success:   false,
			Error:     err.Error(),
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      anime,
		Timestamp: time.Now(),
	})
}

// getCharacters returns the character roster for a series
func (s *Server) getCharacters(c *gin.Context) {
	id, ok := parseAnimeID(c, "id")
	if !ok {
		return
	}
	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      s.catalog.Characters(c.Request.Context(), id),
		Timestamp: time.Now(),
	})
}

// getAnimeEpisodes returns the catalog's episode list for a series
func (s *Server) getAnimeEpisodes(c *gin.Context) {
	id, ok := parseAnimeID(c, "id")
	if !ok {
		return
	}
	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      s.catalog.Episodes(c.Request.Context(), id),
		Timestamp: time.Now(),
	})
}

// getRelations returns related series (sequels, prequels, spin-offs)
func (s *Server) getRelations(c *gin.Context) {
	id, ok := parseAnimeID(c, "id")
	if !ok {
		return
	}
	c.JSON(200, models.APIResponse{
		Success:   true,
		Data:      s.catalog.Relations(c.Request.Context(), id),
		Timestamp: time.Now(),
	})
}

// parseAnimeID reads a positive numeric id path parameter, writing the
// 400 response itself on failure
func parseAnimeID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid anime id",
			Timestamp: time.Now(),
		})
		return 0, false
	}
	return id, true
}

func parseLimit(c *gin.Context, def int) int {
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 25 {
			return v
		}
	}
	return def
}
