package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/messaging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/api"
)

// EventHandlers contains HTTP handlers for event endpoints
type EventHandlers struct {
	eventService *services.EventService
	authService  *services.AuthService
	broadcaster  *messaging.ContentBroadcaster
	logger       *logging.ChanneledLogger
}

// NewEventHandlers creates event handlers with injected dependencies
func NewEventHandlers(eventService *services.EventService, authService *services.AuthService, broadcaster *messaging.ContentBroadcaster, logger *logging.ChanneledLogger) *EventHandlers {
	return &EventHandlers{
		eventService: eventService,
		authService:  authService,
		broadcaster:  broadcaster,
		logger:       logger,
	}
}

// GetEvents handles GET /api/v1/events
func (h *EventHandlers) GetEvents(c *gin.Context) {
	start := time.Now()

	events, err := h.eventService.GetAll()
	if err != nil {
		h.logger.HTTP().Error("Failed to list events", "error", err.Error())
		api.ServerError(c)
		return
	}

	filters := parseListFilters(c)
	authenticated := isAuthenticated(c, h.authService)

	filtered := make([]*content.EventNode, 0, len(events))
	for _, e := range events {
		if !authenticated && e.Status != "published" {
			continue
		}
		if filters.Status != "" && e.Status != filters.Status {
			continue
		}
		if filters.Slug != "" && e.Slug != filters.Slug {
			continue
		}
		if filters.Search != "" && !matchesSearch(filters.Search, e.Title, deref(e.Summary)) {
			continue
		}
		filtered = append(filtered, e)
	}

	page := paginate(filtered, filters.Page, filters.Limit)

	h.logger.HTTP().Info("Events list request completed",
		"total", len(filtered), "returned", len(page), "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"docs":       page,
		"totalDocs":  len(filtered),
		"page":       filters.Page,
		"limit":      filters.Limit,
		"totalPages": totalPages(len(filtered), filters.Limit),
	})
}

// GetEventByID handles GET /api/v1/events/:id
func (h *EventHandlers) GetEventByID(c *gin.Context) {
	id := c.Param("id")

	event, err := h.eventService.GetByID(id)
	if err != nil {
		h.logger.HTTP().Error("Failed to get event", "id", id, "error", err.Error())
		api.ServerError(c)
		return
	}
	if event == nil || (!isAuthenticated(c, h.authService) && event.Status != "published") {
		api.NotFound(c, "events", id)
		return
	}

	c.JSON(http.StatusOK, event)
}

// GetEventBySlug handles GET /api/v1/events/slug/:slug
func (h *EventHandlers) GetEventBySlug(c *gin.Context) {
	slug := c.Param("slug")

	event, err := h.eventService.GetBySlug(slug)
	if err != nil {
		h.logger.HTTP().Error("Failed to get event by slug", "slug", slug, "error", err.Error())
		api.ServerError(c)
		return
	}
	if event == nil || (!isAuthenticated(c, h.authService) && event.Status != "published") {
		api.NotFound(c, "events", slug)
		return
	}

	c.JSON(http.StatusOK, event)
}

// CreateEvent handles POST /api/v1/events
func (h *EventHandlers) CreateEvent(c *gin.Context) {
	var event content.EventNode
	if err := c.ShouldBindJSON(&event); err != nil {
		api.BadRequest(c, "Dữ liệu sự kiện không hợp lệ")
		return
	}

	if strings.TrimSpace(event.Title) == "" || strings.TrimSpace(event.Slug) == "" {
		api.BadRequest(c, "Tiêu đề và slug là bắt buộc")
		return
	}

	if err := h.eventService.Create(&event); err != nil {
		h.logger.HTTP().Error("Failed to create event", "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("events", event.ID, "created")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Đã tạo sự kiện thành công",
		"data":    event,
	})
}

// UpdateEvent handles PUT /api/v1/events/:id
func (h *EventHandlers) UpdateEvent(c *gin.Context) {
	id := c.Param("id")

	var event content.EventNode
	if err := c.ShouldBindJSON(&event); err != nil {
		api.BadRequest(c, "Dữ liệu sự kiện không hợp lệ")
		return
	}
	event.ID = id

	if err := h.eventService.Update(&event); err != nil {
		if strings.Contains(err.Error(), "not found") {
			api.NotFound(c, "events", id)
			return
		}
		h.logger.HTTP().Error("Failed to update event", "id", id, "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("events", id, "updated")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Đã cập nhật sự kiện thành công",
		"data":    event,
	})
}
