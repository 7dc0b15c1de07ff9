package handlers

import (
	"net/http"
	"strconv"

	"github.com/szolzol/humbug-quiz-sub000/internal/middleware"
	"github.com/szolzol/humbug-quiz-sub000/internal/models"
	"github.com/szolzol/humbug-quiz-sub000/internal/services"
	"github.com/szolzol/humbug-quiz-sub000/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// VersionHeader carries the state version tag both ways: clients echo the
// value from the last snapshot, the server returns the current one.
const VersionHeader = "X-Room-Version"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type StateHandler struct {
	rooms *services.RoomService
	state *services.StateService
	hub   *ws.Hub
}

func NewStateHandler(rooms *services.RoomService, state *services.StateService, hub *ws.Hub) *StateHandler {
	return &StateHandler{rooms: rooms, state: state, hub: hub}
}

// GetState godoc
// @Summary      Fetch the room snapshot
// @Description  Returns 304 with no body when the X-Room-Version request header matches the current state version.
// @Tags         play
// @Produce      json
// @Param        room_id query int false "Room ID"
// @Param        code query string false "Room code"
// @Param        X-Room-Version header string false "Previously seen version tag"
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/rooms/state [get]
func (h *StateHandler) GetState(c *gin.Context) {
	room, err := h.resolveRoom(c)
	if err != nil {
		fail(c, err)
		return
	}

	sessionID := middleware.SessionID(c)
	h.rooms.TouchPlayer(room.ID, sessionID)

	tag := strconv.FormatInt(room.StateVersion, 10)
	if c.GetHeader(VersionHeader) == tag {
		c.Header(VersionHeader, tag)
		c.Status(http.StatusNotModified)
		return
	}

	snapshot, err := h.state.Build(room, sessionID)
	if err != nil {
		fail(c, err)
		return
	}

	c.Header(VersionHeader, tag)
	respond(c, http.StatusOK, snapshot)
}

func (h *StateHandler) resolveRoom(c *gin.Context) (*models.Room, error) {
	if idStr := c.Query("room_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return nil, services.ErrNotFound
		}
		return h.rooms.Get(uint(id))
	}
	if code := c.Query("code"); code != "" {
		return h.rooms.GetByCode(code)
	}
	return nil, services.ErrNotFound
}

// HandleRoomWebSocket registers a watcher connection for version pokes.
func (h *StateHandler) HandleRoomWebSocket(c *gin.Context) {
	room, err := h.rooms.GetByCode(c.Param("code"))
	if err != nil {
		fail(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddRoomConnection(room.ID, conn)
	defer h.hub.RemoveRoomConnection(room.ID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
