package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/messaging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/api"
)

// AdminHandlers contains HTTP handlers for the admin dashboard endpoints
type AdminHandlers struct {
	referenceMapService *services.ReferenceMapService
	broadcaster         *messaging.ContentBroadcaster
	logger              *logging.ChanneledLogger
	upgrader            websocket.Upgrader
}

// NewAdminHandlers creates admin handlers with injected dependencies
func NewAdminHandlers(referenceMapService *services.ReferenceMapService, broadcaster *messaging.ContentBroadcaster, logger *logging.ChanneledLogger) *AdminHandlers {
	return &AdminHandlers{
		referenceMapService: referenceMapService,
		broadcaster:         broadcaster,
		logger:              logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS middleware already gates origins on the HTTP surface.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// GetReferenceMap handles GET /api/v1/admin/reference-map with ETag support
func (h *AdminHandlers) GetReferenceMap(c *gin.Context) {
	payload, etag, err := h.referenceMapService.GetReferenceMap()
	if err != nil {
		h.logger.HTTP().Error("Failed to compute reference map", "error", err.Error())
		api.ServerError(c)
		return
	}

	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Header("ETag", etag)
	c.JSON(http.StatusOK, payload)
}

// ContentFeed handles GET /api/v1/admin/ws, upgrading to a websocket that
// streams content-change events to the admin dashboard.
func (h *AdminHandlers) ContentFeed(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.HTTP().Error("Websocket upgrade failed", "error", err.Error())
		return
	}

	client := &messaging.AdminClient{
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	h.broadcaster.Register(client)

	go client.WritePump()

	// Reader goroutine drains client messages and detects disconnects.
	go func() {
		defer h.broadcaster.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
