package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/ghdash/internal/handlers"
	"github.com/alimgiray/ghdash/internal/repositories"
	"github.com/alimgiray/ghdash/internal/services"
	"github.com/alimgiray/ghdash/internal/session"
	"github.com/alimgiray/ghdash/internal/workers"
	"github.com/alimgiray/ghdash/pkg/config"
	"github.com/alimgiray/ghdash/pkg/database"
	"github.com/alimgiray/ghdash/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init(cfg.Log.Level)
	gin.SetMode(cfg.Server.Mode)

	if cfg.Session.UsesDefaultSecret() {
		logger.Warnf("SESSION_SECRET is not set; session cookies are signed with the built-in default")
	}

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	githubService, err := services.NewGitHubService(cfg.GitHub.APIURL, cfg.GitHub.RawURL, nil)
	if err != nil {
		logger.Fatalf("Failed to create GitHub client: %v", err)
	}
	fetchStateRepo := repositories.NewFetchStateRepository(database.DB)

	scoreService := services.NewScoreService()
	languageService := services.NewLanguageService()
	profileService := services.NewProfileService(
		githubService,
		scoreService,
		services.NewBadgeService(scoreService),
		services.NewRepositoryFilterService(),
		languageService,
	)
	battleService := services.NewBattleService(githubService, profileService)
	explorerService := services.NewExplorerService(githubService, languageService, fetchStateRepo)
	readmeService := services.NewReadmeService(githubService)
	networkService := services.NewNetworkService(githubService)
	exportService := services.NewExportService()

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	store := session.NewStore(sessionTTL)

	// Initialize worker manager
	workerManager := workers.NewWorkerManager(
		workers.NewSessionReaperWorker("session-reaper-1", store, fetchStateRepo,
			time.Duration(cfg.Session.ReaperIntervalSeconds)*time.Second),
	)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())

	handlers.SetupRoutes(router, store, sessionTTL, handlers.Handlers{
		Health:   handlers.NewHealthHandler(store),
		Profile:  handlers.NewProfileHandler(profileService, exportService),
		Battle:   handlers.NewBattleHandler(battleService),
		Explorer: handlers.NewExplorerHandler(explorerService),
		Readme:   handlers.NewReadmeHandler(readmeService),
		Network:  handlers.NewNetworkHandler(networkService),
		Session:  handlers.NewSessionHandler(),
		NotFound: handlers.NewNotFoundHandler(),
	})

	// Start workers
	if err := workerManager.StartAll(); err != nil {
		logger.Fatalf("Failed to start workers: %v", err)
	}
	defer workerManager.StopAll()

	// Setup server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Infof("Server stopped")
}
