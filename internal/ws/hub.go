package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// presenceKey counts connected shop-floor terminals in Redis so other pods
// and dashboards can see it.
const presenceKey = "assembly:presence:terminals"

// EventType classifies a pushed event
type EventType string

const (
	EventCardUpdated EventType = "CARD_UPDATED"
	EventAndonRaised EventType = "ANDON_RAISED"
	EventAndonStatus EventType = "ANDON_STATUS"
	EventIdeaMessage EventType = "IDEA_MESSAGE"
)

// Event is the JSON frame pushed to every connected terminal
type Event struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub fans events out to all connected terminals. The shop floor is small, a
// single broadcast group is enough; there are no per-room subscriptions.
type Hub struct {
	clients    map[*Client]bool
	clientsMu  sync.RWMutex
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	redis      *redis.Client
	logger     *zap.Logger
}

// NewHub creates a hub; call Run in a goroutine to start it
func NewHub(redisClient *redis.Client, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		redis:      redisClient,
		logger:     logger,
	}
}

// Run processes register/unregister/broadcast events until the process exits
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			h.clientsMu.Unlock()
			h.trackPresence(1)
			h.logger.Debug("Terminal connected",
				zap.String("user_id", client.userID.String()),
				zap.Int("connected", h.ClientCount()),
			)

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMu.Unlock()
			h.trackPresence(-1)
			h.logger.Debug("Terminal disconnected",
				zap.String("user_id", client.userID.String()),
				zap.Int("connected", h.ClientCount()),
			)

		case message := <-h.broadcast:
			h.clientsMu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop the frame rather than block the hub.
					h.logger.Warn("Dropping frame for slow terminal",
						zap.String("user_id", client.userID.String()),
					)
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Broadcast pushes an event to every connected terminal
func (h *Hub) Broadcast(eventType EventType, payload interface{}) {
	event := Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	raw, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal websocket event",
			zap.String("type", string(eventType)),
			zap.Error(err),
		)
		return
	}
	select {
	case h.broadcast <- raw:
	default:
		h.logger.Warn("Broadcast queue full, dropping event",
			zap.String("type", string(eventType)),
		)
	}
}

// ClientCount returns the number of connected terminals
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) trackPresence(delta int64) {
	if h.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.redis.IncrBy(ctx, presenceKey, delta).Err(); err != nil {
		h.logger.Warn("Failed to update presence counter", zap.Error(err))
	}
}
