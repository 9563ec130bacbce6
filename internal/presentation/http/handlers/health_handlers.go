package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/persistence/database"
)

// HealthHandlers contains the health check endpoint
type HealthHandlers struct {
	db *database.DB
}

// NewHealthHandlers creates health handlers with injected dependencies
func NewHealthHandlers(db *database.DB) *HealthHandlers {
	return &HealthHandlers{db: db}
}

// Health handles GET /api/v1/health
func (h *HealthHandlers) Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	if err := h.db.Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"turso":     h.db.UseTurso,
	})
}
