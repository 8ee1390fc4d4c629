package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"aniview/internal/auth"
	"aniview/internal/catalog"
	"aniview/internal/core"
	httpProtocol "aniview/internal/protocols/http"
	wsProtocol "aniview/internal/protocols/websocket"
	"aniview/internal/ratelimit"
	"aniview/internal/repository"
	"aniview/pkg/config"
	"aniview/pkg/database"
	"aniview/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("./configs/development.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	logger.Info("Starting aniview server...")

	dbCfg := database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		Timeout:         cfg.Database.Timeout,
	}

	// database/sql handle for migrations and health checks
	db, err := database.NewDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations applied")

	// pgx pool for the repositories
	pool, err := database.NewPGXPool(dbCfg)
	if err != nil {
		log.Fatalf("Failed to create pgx pool: %v", err)
	}
	defer pool.Close()

	logger.Info("Connected to PostgreSQL database")

	// Initialize repositories
	watchRepo := repository.NewWatchlistRepository(pool)
	episodeRepo := repository.NewEpisodeRepository(pool)

	// Outbound catalog client behind the request governor
	governor := ratelimit.NewGovernor(cfg.Catalog.RateQuota, cfg.Catalog.RateWindow)
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, governor)

	// Progress event hub
	hub := wsProtocol.NewHub()

	// Initialize core services
	watchlistSvc := core.NewWatchlistService(watchRepo, episodeRepo, hub)
	statsSvc := core.NewStatsService(watchRepo, episodeRepo)

	verifier := auth.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)

	httpServer := httpProtocol.NewServer(
		cfg,
		verifier,
		watchlistSvc,
		statsSvc,
		catalogClient,
		hub,
		db,
	)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("HTTP server panic recovered: %v", r)
			}
		}()
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info(fmt.Sprintf("Starting HTTP server on %s", addr))
		if err := httpServer.Start(addr); err != nil {
			logger.Errorf("HTTP server error: %v", err)
		}
	}()

	logger.Info("Server started")
	logger.Info("Press Ctrl+C to shutdown")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info(fmt.Sprintf("Received signal: %v", sig))
	logger.Info("Shutting down...")
}
