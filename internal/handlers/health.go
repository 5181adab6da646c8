package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/apartments/internal/database"
	"github.com/stwalsh4118/apartments/internal/middleware"
)

const (
	// APIVersion is the current version of the API
	APIVersion = "0.1.0"
	// HealthCheckTimeout is the timeout for database health checks
	HealthCheckTimeout = 2 * time.Second
)

// DatabaseChecker is the subset of *database.Database the health endpoints need.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
	Stats() database.PoolStats
}

// HealthHandler handles health check and readiness endpoints.
type HealthHandler struct {
	db        DatabaseChecker
	driver    string
	env       string
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(db DatabaseChecker, driver, env string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		driver:    driver,
		env:       env,
		startTime: time.Now(),
	}
}

// HealthResponse represents the basic health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Status      string              `json:"status"`
	Database    string              `json:"database"`
	Connections *database.PoolStats `json:"connections,omitempty"`
}

// InfoResponse represents the API information response.
type InfoResponse struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
	Uptime      string `json:"uptime"`
}

// Health handles GET /health endpoint.
// It always returns 200 OK and checks no dependencies.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
	})
}

// Ready handles GET /health/ready endpoint.
// Returns 200 OK if the database answers a ping, 503 Service Unavailable otherwise.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), HealthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		if log := middleware.GetLogger(c); log != nil {
			log.Error("Database health check failed", err, map[string]interface{}{
				"driver":  h.driver,
				"timeout": HealthCheckTimeout.String(),
			})
		}

		c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			Status:   "not_ready",
			Database: "disconnected",
		})
		return
	}

	stats := h.db.Stats()
	c.JSON(http.StatusOK, ReadyResponse{
		Status:      "ready",
		Database:    "connected",
		Connections: &stats,
	})
}

// Info handles GET /api/v1/info endpoint.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Version:     APIVersion,
		Environment: h.env,
		Database:    h.driver,
		Uptime:      formatUptime(time.Since(h.startTime)),
	})
}

// formatUptime formats a duration into a human-readable string.
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
