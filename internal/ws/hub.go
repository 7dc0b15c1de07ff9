package ws

import (
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans out room events to connected clients. Polling with the version tag
// remains the contract of record; the hub only lets clients skip the poll
// delay by fetching immediately after a push.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddRoomConnection(roomID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[roomID][conn] = true
	log.Debugf("ws: client connected to room %d (total: %d)", roomID, len(h.rooms[roomID]))
}

func (h *Hub) RemoveRoomConnection(roomID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.rooms[roomID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.rooms, roomID)
		}
		log.Debugf("ws: client disconnected from room %d", roomID)
	}
}

func (h *Hub) BroadcastToRoom(roomID uint, message WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.rooms[roomID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Errorf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warnf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}

// NotifyVersion pokes every watcher of a room that the state version moved.
func (h *Hub) NotifyVersion(roomID uint, version int64) {
	h.BroadcastToRoom(roomID, WSMessage{
		Type: "version",
		Data: map[string]int64{"version": version},
	})
}
