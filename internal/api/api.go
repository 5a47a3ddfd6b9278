package api

import (
	"strings"
	"time"

	"github.com/ayamprima/flockcore/internal/api/handlers"
	"github.com/ayamprima/flockcore/internal/api/middleware"
	"github.com/ayamprima/flockcore/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	FlockService     *service.FlockService
	ExecutiveService *service.ExecutiveService
	InventoryService *service.InventoryService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		metricsHandler := handlers.NewMetricsHandler()
		apiGroup.GET("/metrics", metricsHandler.GetRegistry)

		if services.FlockService != nil {
			flockHandler := handlers.NewFlockHandler(services.FlockService)
			apiGroup.GET("/standards", flockHandler.GetStandards)

			flockGroup := apiGroup.Group("/flocks/:id")
			{
				flockGroup.POST("/production_start", flockHandler.StartProduction)
				flockGroup.GET("/chart", flockHandler.GetChart)
				flockGroup.GET("/projection", flockHandler.GetProjection)
				flockGroup.GET("/weekly", flockHandler.GetWeekly)
				flockGroup.GET("/monthly", flockHandler.GetMonthly)
				flockGroup.GET("/hatchability", flockHandler.GetHatchability)
				flockGroup.GET("/male_ratio", flockHandler.GetMaleRatio)
				flockGroup.POST("/logs", flockHandler.UpsertLog)
			}

			if services.InventoryService != nil {
				inventoryHandler := handlers.NewInventoryHandler(services.InventoryService)
				flockGroup.GET("/vaccines", inventoryHandler.ListVaccines)
				flockGroup.POST("/vaccines/:vid/administer", inventoryHandler.AdministerVaccine)
				flockGroup.POST("/medications", inventoryHandler.RecordMedication)
			}
		}

		if services.ExecutiveService != nil {
			executiveHandler := handlers.NewExecutiveHandler(services.ExecutiveService)
			apiGroup.GET("/executive/dashboard", executiveHandler.GetDashboard)
			apiGroup.GET("/executive/hatchery", executiveHandler.GetHatchery)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
