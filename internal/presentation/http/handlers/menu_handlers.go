package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/messaging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/api"
)

// MenuHandlers contains HTTP handlers for navigation menu endpoints
type MenuHandlers struct {
	menuService *services.MenuService
	broadcaster *messaging.ContentBroadcaster
	logger      *logging.ChanneledLogger
}

// NewMenuHandlers creates menu handlers with injected dependencies
func NewMenuHandlers(menuService *services.MenuService, broadcaster *messaging.ContentBroadcaster, logger *logging.ChanneledLogger) *MenuHandlers {
	return &MenuHandlers{
		menuService: menuService,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// GetMenus handles GET /api/v1/menus
func (h *MenuHandlers) GetMenus(c *gin.Context) {
	menus, err := h.menuService.GetAll()
	if err != nil {
		h.logger.HTTP().Error("Failed to list menus", "error", err.Error())
		api.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"docs": menus, "totalDocs": len(menus)})
}

// GetMenuByID handles GET /api/v1/menus/:id
func (h *MenuHandlers) GetMenuByID(c *gin.Context) {
	id := c.Param("id")

	menu, err := h.menuService.GetByID(id)
	if err != nil {
		h.logger.HTTP().Error("Failed to get menu", "id", id, "error", err.Error())
		api.ServerError(c)
		return
	}
	if menu == nil {
		api.NotFound(c, "menus", id)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// CreateMenu handles POST /api/v1/menus
func (h *MenuHandlers) CreateMenu(c *gin.Context) {
	var menu content.MenuNode
	if err := c.ShouldBindJSON(&menu); err != nil {
		api.BadRequest(c, "Dữ liệu menu không hợp lệ")
		return
	}
	if strings.TrimSpace(menu.Title) == "" {
		api.BadRequest(c, "Tiêu đề là bắt buộc")
		return
	}

	if err := h.menuService.Create(&menu); err != nil {
		h.logger.HTTP().Error("Failed to create menu", "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("menus", menu.ID, "created")
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Đã tạo menu thành công", "data": menu})
}

// UpdateMenu handles PUT /api/v1/menus/:id
func (h *MenuHandlers) UpdateMenu(c *gin.Context) {
	id := c.Param("id")

	var menu content.MenuNode
	if err := c.ShouldBindJSON(&menu); err != nil {
		api.BadRequest(c, "Dữ liệu menu không hợp lệ")
		return
	}
	menu.ID = id

	if err := h.menuService.Update(&menu); err != nil {
		if strings.Contains(err.Error(), "not found") {
			api.NotFound(c, "menus", id)
			return
		}
		h.logger.HTTP().Error("Failed to update menu", "id", id, "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("menus", id, "updated")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Đã cập nhật menu thành công", "data": menu})
}
