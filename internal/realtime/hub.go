package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client is one connected viewer subscribed to record changes.
type Client struct {
	ID     string
	UserID uuid.UUID
	Conn   *WebSocketConn
	Send   chan []byte
}

// Hub fans record-change events out to connected viewers. It only reflects
// state; no business logic is driven from here.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

// SendToUser delivers a payload to every local connection of one user.
// Slow consumers are skipped rather than blocked on.
func (h *Hub) SendToUser(userID uuid.UUID, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		h.log.Warn("marshal realtime payload", zap.Error(err))
		return
	}
	h.SendRawToUser(userID, payload)
}

// SendRawToUser delivers pre-marshaled bytes to one user's connections.
func (h *Hub) SendRawToUser(userID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			// full buffer, drop instead of blocking
		}
	}
}

// SendToGig pushes a payload to the two principals of a gig: its client and,
// when selected, its student.
func (h *Hub) SendToGig(clientID uuid.UUID, selectedStudentID *uuid.UUID, data any) {
	h.SendToUser(clientID, data)
	if selectedStudentID != nil {
		h.SendToUser(*selectedStudentID, data)
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.log.Debug("realtime client registered",
				zap.String("client", client.ID), zap.String("user", client.UserID.String()))

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(old.Send)
			}
			h.mu.Unlock()
		}
	}
}
