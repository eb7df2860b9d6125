package websocket

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// outbound is one serialized event addressed to a mess
type outbound struct {
	messID int64
	data   []byte
}

// Hub maintains the set of subscribers per mess and broadcasts events to them
type Hub struct {
	// Registered clients organized by mess ID
	clients map[int64]map[*Client]bool

	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Guards clients for readers outside the run loop
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan outbound, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger.With().Str("component", "websocket").Logger(),
	}
}

// Run handles registrations and broadcasts until ctx is cancelled, then closes every client
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)

		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.messID]; !ok {
		h.clients[client.messID] = make(map[*Client]bool)
	}
	h.clients[client.messID][client] = true

	h.logger.Info().
		Int64("messID", client.messID).
		Int64("userID", client.userID).
		Msg("Client subscribed")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	subscribers, ok := h.clients[client.messID]
	if !ok || !subscribers[client] {
		return
	}
	delete(subscribers, client)
	close(client.send)
	if len(subscribers) == 0 {
		delete(h.clients, client.messID)
	}

	h.logger.Info().
		Int64("messID", client.messID).
		Int64("userID", client.userID).
		Msg("Client unsubscribed")
}

// broadcastMessage sends msg to every subscriber of its mess. Slow subscribers are disconnected.
func (h *Hub) broadcastMessage(msg outbound) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers := h.clients[msg.messID]
	for client := range subscribers {
		select {
		case client.send <- msg.data:
		default:
			h.logger.Warn().Int64("userID", client.userID).Int64("messID", msg.messID).Msg("Dropping slow subscriber")
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Int64("messID", msg.messID).
		Int("clientCount", len(subscribers)).
		Msg("Event broadcasted to mess")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, subscribers := range h.clients {
		for client := range subscribers {
			h.removeLocked(client)
		}
	}
}

// BroadcastToMess queues data for the subscribers of messID.
// It returns false when ctx ends before the hub accepts the message.
func (h *Hub) BroadcastToMess(ctx context.Context, messID int64, data []byte) bool {
	select {
	case h.broadcast <- outbound{messID: messID, data: data}:
		return true
	case <-h.done:
		return false
	case <-ctx.Done():
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// GetClientsCount returns the number of subscribers of a mess
func (h *Hub) GetClientsCount(messID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[messID])
}
