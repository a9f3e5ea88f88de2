// File: internal/health/handler.go
package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler exposes liveness and readiness endpoints.
type Handler struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewHandler creates a new health handler.
func NewHandler(db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{db: db, logger: logger.Named("health-handler")}
}

// RegisterRoutes sets up the health routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.health)
	router.GET("/health/details", h.details)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "DreamHome API is healthy!"})
}

// details checks the database connection and reports 503 when it is
// unreachable.
func (h *Handler) details(c *gin.Context) {
	dbStatus := "UP"
	status := http.StatusOK

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		dbStatus = "DOWN"
		status = http.StatusServiceUnavailable
	}

	overall := "UP"
	if dbStatus != "UP" {
		overall = "DOWN"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"timestamp": time.Now().UTC(),
		"components": gin.H{
			"database": gin.H{"status": dbStatus},
		},
	})
}
