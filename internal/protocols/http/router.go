package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"aniview/internal/auth"
	"aniview/internal/catalog"
	"aniview/internal/core"
	ws "aniview/internal/protocols/websocket"
	"aniview/pkg/config"
	"aniview/pkg/database"
)

// Server manages the HTTP REST API server
type Server struct {
	router       *gin.Engine
	config       *config.Config
	verifier     *auth.Verifier
	watchlistSvc core.WatchlistService
	statsSvc     core.StatsService
	catalog      *catalog.Client
	hub          *ws.Hub
	db           *database.DB
}

// NewServer creates a new HTTP server with all handlers
func NewServer(
	cfg *config.Config,
	verifier *auth.Verifier,
	watchlistSvc core.WatchlistService,
	statsSvc core.StatsService,
	catalogClient *catalog.Client,
	hub *ws.Hub,
	db *database.DB,
) *Server {
	// Set Gin to release mode by default
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(RequestLogger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(cfg.Server.RateLimit, cfg.Server.RateBurst))

	s := &Server{
		router:       router,
		config:       cfg,
		verifier:     verifier,
		watchlistSvc: watchlistSvc,
		statsSvc:     statsSvc,
		catalog:      catalogClient,
		hub:          hub,
		db:           db,
	}

	s.setupRoutes()
	return s
}

// setupRoutes registers all HTTP routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.healthCheck)

	// Progress event stream
	s.router.GET("/ws/progress", ws.Handler(s.hub, s.verifier))

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Catalog routes (public)
		cat := v1.Group("/catalog")
		{
			cat.GET("/search", s.searchCatalog)
			cat.GET("/top", s.topAnime)
			cat.GET("/airing", s.topAiring)
			cat.GET("/movies", s.topMovies)
			cat.GET("/seasons/now", s.seasonNow)
			cat.GET("/anime/:id", s.getAnime)
			cat.GET("/anime/:id/characters", s.getCharacters)
			cat.GET("/anime/:id/episodes", s.getAnimeEpisodes)
			cat.GET("/anime/:id/relations", s.getRelations)
		}

		// Watchlist routes (require auth)
		protected := v1.Group("", AuthMiddleware(s.verifier))
		{
			protected.GET("/watchlist", s.listWatchlist)
			protected.POST("/watchlist", s.addEntry)
			protected.GET("/watchlist/recent", s.recentlyUpdated)
			protected.GET("/watchlist/watching", s.currentlyWatching)
			protected.GET("/watchlist/anime/:anime_id", s.getEntry)
			protected.PUT("/watchlist/:id", s.updateEntryStatus)
			protected.DELETE("/watchlist/:id", s.removeEntry)

			// Per-episode progress
			protected.GET("/anime/:anime_id/episodes", s.listWatchedEpisodes)
			protected.PUT("/anime/:anime_id/episodes/:number", s.markEpisode)
			protected.DELETE("/anime/:anime_id/episodes/:number", s.unmarkEpisode)
			protected.DELETE("/anime/:anime_id/history", s.clearHistory)

			// Stats routes
			protected.GET("/stats", s.getStats)
			protected.GET("/stats/monthly", s.getMonthlyProgress)
			protected.GET("/stats/watch-time", s.getWatchTime)
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

// Router returns the gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	status := "ok"
	if s.db != nil {
		if err := s.db.HealthCheck(c.Request.Context()); err != nil {
			status = "degraded"
		}
	}
	c.JSON(200, gin.H{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
