package http

import (
	"github.com/fridgechef/backend/config"
	"github.com/fridgechef/backend/internal/observability/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(log))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(log.Named("access")))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if m != nil {
		router.Use(MetricsMiddleware(m))
	}

	// Operational endpoints
	router.GET("/health", handler.HealthCheck)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.RateLimit.PerIP > 0 {
		v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.PerIPBurst))
	}
	{
		nutrition := v1.Group("/nutrition")
		{
			nutrition.POST("/estimate", handler.EstimateNutrition)
		}

		videos := v1.Group("/videos")
		{
			videos.POST("/rank", handler.RankVideos)
			videos.GET("/search", handler.SearchVideos)
		}

		journal := v1.Group("/journal")
		{
			journal.POST("", handler.RecordJournal)
			journal.GET("", handler.ListJournal)
			journal.GET("/:id", handler.GetJournal)
			journal.DELETE("/:id", handler.DeleteJournal)
		}
	}

	return router
}
