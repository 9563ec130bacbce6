package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/api"
)

// ContactHandlers contains HTTP handlers for the contact form endpoint
type ContactHandlers struct {
	contactService *services.ContactService
	logger         *logging.ChanneledLogger
}

// NewContactHandlers creates contact handlers with injected dependencies
func NewContactHandlers(contactService *services.ContactService, logger *logging.ChanneledLogger) *ContactHandlers {
	return &ContactHandlers{
		contactService: contactService,
		logger:         logger,
	}
}

// SubmitContact handles POST /api/v1/contact
func (h *ContactHandlers) SubmitContact(c *gin.Context) {
	var msg content.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		api.BadRequest(c, "Vui lòng điền đầy đủ họ tên, email và nội dung")
		return
	}

	if err := h.contactService.Submit(&msg); err != nil {
		h.logger.HTTP().Error("Contact submission failed", "from", msg.Email, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Không thể gửi liên hệ lúc này, vui lòng thử lại sau",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cảm ơn bạn đã liên hệ, chúng tôi sẽ phản hồi sớm nhất",
	})
}
