package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayamprima/flockcore/internal/api"
	"github.com/ayamprima/flockcore/internal/cache"
	"github.com/ayamprima/flockcore/internal/config"
	"github.com/ayamprima/flockcore/internal/repository/postgres"
	"github.com/ayamprima/flockcore/internal/service"
	"github.com/ayamprima/flockcore/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	chartCache, err := cache.NewChartCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("chart cache unavailable, running without")
		chartCache = cache.NewNoopChartCache()
	}
	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("dashboard cache unavailable, running without")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	flockRepo := postgres.NewFlockRepository(db)
	logRepo := postgres.NewLogRepository(db)
	hatchRepo := postgres.NewHatchabilityRepository(db)
	standardRepo := postgres.NewStandardRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)

	flockService := service.NewFlockService(
		flockRepo, logRepo, hatchRepo, standardRepo,
		chartCache, dashboardCache, cfg.Engine)
	executiveService := service.NewExecutiveService(flockService, dashboardCache, cfg.Engine)
	inventoryService := service.NewInventoryService(db, inventoryRepo, flockRepo, logRepo)

	router := api.NewRouter(&api.Services{
		FlockService:     flockService,
		ExecutiveService: executiveService,
		InventoryService: inventoryService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
