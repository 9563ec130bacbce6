// Package messaging pushes content-change events to connected admin clients.
package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
)

// ContentEvent is one content mutation pushed to the admin dashboard so open
// list views can refresh without polling.
type ContentEvent struct {
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Action     string    `json:"action"` // "created", "updated", "deleted", "unpublished"
	At         time.Time `json:"at"`
}

// AdminClient represents a single connected admin dashboard client.
type AdminClient struct {
	Conn *websocket.Conn
	Send chan []byte
}

// WritePump drains the client's send queue onto its websocket connection.
// It runs as a goroutine per client and exits when the channel closes.
func (c *AdminClient) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ContentBroadcaster fans content-change events out to every connected admin
// client. Slow clients are dropped rather than blocking the broadcast.
type ContentBroadcaster struct {
	clients    map[*AdminClient]bool
	register   chan *AdminClient
	unregister chan *AdminClient
	events     chan ContentEvent
	logger     *logging.ChanneledLogger
	mu         sync.RWMutex
}

// NewContentBroadcaster creates a new broadcaster instance.
func NewContentBroadcaster(logger *logging.ChanneledLogger) *ContentBroadcaster {
	return &ContentBroadcaster{
		clients:    make(map[*AdminClient]bool),
		register:   make(chan *AdminClient),
		unregister: make(chan *AdminClient),
		events:     make(chan ContentEvent, 64),
		logger:     logger,
	}
}

// Run starts the broadcaster's main loop. This should be run as a goroutine.
func (b *ContentBroadcaster) Run() {
	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			b.mu.Unlock()
			b.logger.HTTP().Debug("Admin client registered", "clients", b.ClientCount())

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Send)
			}
			b.mu.Unlock()
			b.logger.HTTP().Debug("Admin client unregistered", "clients", b.ClientCount())

		case event := <-b.events:
			b.publish(event)
		}
	}
}

// Register queues a client for registration.
func (b *ContentBroadcaster) Register(client *AdminClient) {
	b.register <- client
}

// Unregister queues a client for unregistration.
func (b *ContentBroadcaster) Unregister(client *AdminClient) {
	b.unregister <- client
}

// Broadcast queues a content event for delivery. Never blocks the caller;
// events are dropped when the queue is full.
func (b *ContentBroadcaster) Broadcast(collection, id, action string) {
	event := ContentEvent{Collection: collection, ID: id, Action: action, At: time.Now().UTC()}
	select {
	case b.events <- event:
	default:
		b.logger.HTTP().Warn("Content event dropped, broadcast queue full",
			"collection", collection, "id", id, "action", action)
	}
}

// ClientCount returns the number of connected admin clients.
func (b *ContentBroadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *ContentBroadcaster) publish(event ContentEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.HTTP().Error("Failed to encode content event", "error", err.Error())
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for client := range b.clients {
		select {
		case client.Send <- data:
		default:
			delete(b.clients, client)
			close(client.Send)
		}
	}
}
