package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
)

// AggregateHandlers serves the composed read-only payloads the public site
// shell fetches in one request instead of several.
type AggregateHandlers struct {
	aggregateService *services.AggregateService
	logger           *logging.ChanneledLogger
}

// NewAggregateHandlers creates aggregate handlers with injected dependencies
func NewAggregateHandlers(aggregateService *services.AggregateService, logger *logging.ChanneledLogger) *AggregateHandlers {
	return &AggregateHandlers{
		aggregateService: aggregateService,
		logger:           logger,
	}
}

// GetHomepage handles GET /api/v1/homepage
func (h *AggregateHandlers) GetHomepage(c *gin.Context) {
	start := time.Now()

	payload, err := h.aggregateService.GetHomepage()
	if err != nil {
		h.logger.HTTP().Error("Failed to assemble homepage payload", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Có lỗi xảy ra khi lấy dữ liệu trang chủ.",
		})
		return
	}

	h.logger.HTTP().Info("Homepage payload served", "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payload,
	})
}

// GetHeaderInfo handles GET /api/v1/header-info
func (h *AggregateHandlers) GetHeaderInfo(c *gin.Context) {
	payload, err := h.aggregateService.GetHeaderInfo()
	if err != nil {
		h.logger.HTTP().Error("Failed to assemble header info", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Đã xảy ra lỗi khi lấy thông tin header. Vui lòng thử lại sau.",
		})
		return
	}

	c.JSON(http.StatusOK, payload)
}
