package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/nikgav1/calorie-tracking-app/models"
)

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn
}

// RealtimeHub fans updated day documents out to a user's connected clients,
// so open screens refresh after a log is added, edited, or deleted from any
// device.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

type dayUpdateMessage struct {
	Type string      `json:"type"`
	Day  *models.Day `json:"day"`
}

// BroadcastDayUpdate pushes the new state of a day to every socket the
// owning user has open. Slow or dead connections just miss the message.
func (h *RealtimeHub) BroadcastDayUpdate(userID uint, day *models.Day) {
	if day == nil {
		return
	}
	msg, _ := json.Marshal(dayUpdateMessage{Type: "day_update", Day: day})

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
