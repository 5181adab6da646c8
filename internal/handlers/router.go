package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/apartments/internal/config"
	"github.com/stwalsh4118/apartments/internal/logger"
	"github.com/stwalsh4118/apartments/internal/middleware"
)

// RouterConfig carries what NewRouter needs to assemble the HTTP surface.
type RouterConfig struct {
	Log        *logger.Logger
	CORS       config.CORSConfig
	Apartments *ApartmentHandler
	Health     *HealthHandler
}

// NewRouter builds the gin engine with the middleware stack and all routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Middleware order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Log))
	router.Use(middleware.Recovery(cfg.Log))
	router.Use(middleware.CORS(cfg.CORS))

	router.GET("/health", cfg.Health.Health)
	router.GET("/health/ready", cfg.Health.Ready)
	router.GET("/api/v1/info", cfg.Health.Info)

	router.POST("/", cfg.Apartments.Create)
	router.GET("/", cfg.Apartments.List)
	router.DELETE("/:id", cfg.Apartments.Delete)

	return router
}
