package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/messaging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/api"
)

// CompanyInfoHandlers contains HTTP handlers for the company info global
type CompanyInfoHandlers struct {
	companyInfoService *services.CompanyInfoService
	broadcaster        *messaging.ContentBroadcaster
	logger             *logging.ChanneledLogger
}

// NewCompanyInfoHandlers creates company info handlers with injected dependencies
func NewCompanyInfoHandlers(companyInfoService *services.CompanyInfoService, broadcaster *messaging.ContentBroadcaster, logger *logging.ChanneledLogger) *CompanyInfoHandlers {
	return &CompanyInfoHandlers{
		companyInfoService: companyInfoService,
		broadcaster:        broadcaster,
		logger:             logger,
	}
}

// GetCompanyInfo handles GET /api/v1/company-info
func (h *CompanyInfoHandlers) GetCompanyInfo(c *gin.Context) {
	info, err := h.companyInfoService.Get()
	if err != nil {
		h.logger.HTTP().Error("Failed to get company info", "error", err.Error())
		api.ServerError(c)
		return
	}
	if info == nil {
		api.NotFound(c, "company_info", "company-info")
		return
	}
	c.JSON(http.StatusOK, info)
}

// PutCompanyInfo handles PUT /api/v1/company-info
func (h *CompanyInfoHandlers) PutCompanyInfo(c *gin.Context) {
	var info content.CompanyInfoNode
	if err := c.ShouldBindJSON(&info); err != nil {
		api.BadRequest(c, "Dữ liệu thông tin công ty không hợp lệ")
		return
	}
	if info.Name == "" {
		api.BadRequest(c, "Tên công ty là bắt buộc")
		return
	}

	if err := h.companyInfoService.Put(&info); err != nil {
		h.logger.HTTP().Error("Failed to update company info", "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("company_info", info.ID, "updated")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Đã cập nhật thông tin công ty thành công",
		"data":    info,
	})
}
