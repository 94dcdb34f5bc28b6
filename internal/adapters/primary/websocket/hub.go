package websocket

import (
	"log/slog"
	"sync"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
	"github.com/lorrc/ticket-analytics-backend/internal/core/ports"
)

// Hub maintains the set of active Clients and fans every dashboard event
// out to all of them. Every connected client sees the same analytics, so
// there is no per-client routing.
type Hub struct {
	// clients holds every active connection.
	clients map[*Client]bool

	// Broadcast channel for events.
	broadcast chan domain.Event

	// Register requests from clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// mu protects the clients map
	mu sync.RWMutex

	// logger for the hub
	logger *slog.Logger
}

// Ensure Hub implements the EventBroadcaster interface.
var _ ports.EventBroadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan domain.Event, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger.With("component", "websocket_hub"),
	}
}

// Broadcast sends an event to the hub's internal broadcast channel.
// This method implements the ports.EventBroadcaster interface.
func (h *Hub) Broadcast(event domain.Event) error {
	select {
	case h.broadcast <- event:
		return nil
	default:
		h.logger.Warn("broadcast channel full, dropping event",
			"event_type", event.Type,
		)
		return nil
	}
}

// Run starts the hub's event loop. This MUST be run as a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// registerClient adds a client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	h.logger.Info("client registered",
		"connection_id", client.ID,
		"total_connections", len(h.clients),
	)
}

// unregisterClient removes a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.CloseSend()
	}

	h.logger.Info("client unregistered",
		"connection_id", client.ID,
		"total_connections", len(h.clients),
	)
}

// broadcastEvent sends an event to every connected client
func (h *Hub) broadcastEvent(event domain.Event) {
	h.mu.RLock()
	// Copy the client list to avoid holding the lock while sending
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	h.logger.Debug("broadcasting event",
		"event_type", event.Type,
		"client_count", len(clients),
	)

	for _, client := range clients {
		if !client.TrySend(event) {
			// Client's send buffer is full, drop them. Unregister inline
			// rather than through the channel, which the hub itself drains.
			h.logger.Warn("client send buffer full, unregistering",
				"connection_id", client.ID,
			)
			h.unregisterClient(client)
		}
	}
}

// GetClientCount returns the total number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
