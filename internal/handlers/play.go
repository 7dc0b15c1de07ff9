package handlers

import (
	"net/http"
	"strconv"

	"github.com/szolzol/humbug-quiz-sub000/internal/middleware"
	"github.com/szolzol/humbug-quiz-sub000/internal/services"
	"github.com/szolzol/humbug-quiz-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

type PlayHandler struct {
	rooms *services.RoomService
	games *services.GameService
	hub   *ws.Hub
}

func NewPlayHandler(rooms *services.RoomService, games *services.GameService, hub *ws.Hub) *PlayHandler {
	return &PlayHandler{rooms: rooms, games: games, hub: hub}
}

type CreateRoomRequest struct {
	MaxPlayers    int   `json:"max_players" binding:"required,min=2,max=10"`
	QuestionSetID *uint `json:"question_set_id"`
}

type JoinRoomRequest struct {
	Code     string `json:"code" binding:"required,len=6"`
	Nickname string `json:"nickname" binding:"required,min=1,max=50"`
}

type StartGameRequest struct {
	QuestionSetID *uint `json:"question_set_id"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"required,max=500"`
}

type ChallengeRequest struct {
	AnswerID uint `json:"answer_id" binding:"required"`
}

// CreateRoom godoc
// @Summary      Create a room
// @Tags         play
// @Accept       json
// @Produce      json
// @Param        request body CreateRoomRequest true "Room settings"
// @Success      201 {object} Envelope
// @Failure      400 {object} Envelope
// @Router       /api/v1/rooms [post]
func (h *PlayHandler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.rooms.Create(middleware.SessionID(c), req.MaxPlayers, req.QuestionSetID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"room_id":     room.ID,
		"code":        room.Code,
		"status":      room.Status,
		"max_players": room.MaxPlayers,
		"expires_at":  room.ExpiresAt,
	})
}

// JoinRoom godoc
// @Summary      Join a room by code
// @Tags         play
// @Accept       json
// @Produce      json
// @Param        request body JoinRoomRequest true "Join data"
// @Success      200 {object} Envelope
// @Failure      409 {object} Envelope
// @Router       /api/v1/rooms/join [post]
func (h *PlayHandler) JoinRoom(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.rooms.Join(req.Code, req.Nickname, middleware.SessionID(c))
	if err != nil {
		fail(c, err)
		return
	}

	h.hub.NotifyVersion(result.Room.ID, result.Room.StateVersion)

	respond(c, http.StatusOK, gin.H{
		"room_id":   result.Room.ID,
		"player_id": result.Player.ID,
		"nickname":  result.Player.Nickname,
		"is_host":   result.Player.IsHost,
		"rejoined":  result.IsRejoin,
	})
}

// LeaveRoom godoc
// @Summary      Leave a room
// @Tags         play
// @Produce      json
// @Param        id path int true "Room ID"
// @Success      200 {object} Envelope
// @Failure      404 {object} Envelope
// @Router       /api/v1/rooms/{id}/leave [post]
func (h *PlayHandler) LeaveRoom(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	if err := h.rooms.Leave(roomID, middleware.SessionID(c)); err != nil {
		fail(c, err)
		return
	}

	h.notifyRoom(roomID)
	respond(c, http.StatusOK, gin.H{"left": true})
}

// StartGame godoc
// @Summary      Start the game (host only)
// @Tags         play
// @Accept       json
// @Produce      json
// @Param        id path int true "Room ID"
// @Param        request body StartGameRequest false "Optional question set override"
// @Success      200 {object} Envelope
// @Failure      403 {object} Envelope
// @Router       /api/v1/rooms/{id}/start [post]
func (h *PlayHandler) StartGame(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	var req StartGameRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.games.Start(roomID, middleware.SessionID(c), req.QuestionSetID)
	if err != nil {
		fail(c, err)
		return
	}

	h.notifyRoom(roomID)
	respond(c, http.StatusOK, gin.H{
		"started":         true,
		"total_questions": result.TotalQuestions,
		"first_player_id": result.FirstPlayerID,
	})
}

// SubmitAnswer godoc
// @Summary      Submit an answer for the current turn
// @Tags         play
// @Accept       json
// @Produce      json
// @Param        id path int true "Room ID"
// @Param        request body SubmitAnswerRequest true "Answer text"
// @Success      200 {object} Envelope
// @Failure      403 {object} Envelope
// @Router       /api/v1/rooms/{id}/answer [post]
func (h *PlayHandler) SubmitAnswer(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	// The verdict in this response is for the submitter's own UI only; the
	// shared projection keeps it redacted until the answer is revealed.
	result, err := h.games.SubmitAnswer(roomID, middleware.SessionID(c), req.Answer)
	if err != nil {
		fail(c, err)
		return
	}

	h.notifyRoom(roomID)
	respond(c, http.StatusOK, result)
}

// Challenge godoc
// @Summary      Challenge a pending answer
// @Tags         play
// @Accept       json
// @Produce      json
// @Param        id path int true "Room ID"
// @Param        request body ChallengeRequest true "Target answer"
// @Success      200 {object} Envelope
// @Failure      410 {object} Envelope
// @Router       /api/v1/rooms/{id}/challenge [post]
func (h *PlayHandler) Challenge(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	var req ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.games.Challenge(roomID, middleware.SessionID(c), req.AnswerID)
	if err != nil {
		fail(c, err)
		return
	}

	h.notifyRoom(roomID)
	respond(c, http.StatusOK, result)
}

// NextTurn godoc
// @Summary      Advance to the next question (host only)
// @Tags         play
// @Produce      json
// @Param        id path int true "Room ID"
// @Success      200 {object} Envelope
// @Failure      409 {object} Envelope
// @Router       /api/v1/rooms/{id}/next [post]
func (h *PlayHandler) NextTurn(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	result, err := h.games.Advance(roomID, middleware.SessionID(c))
	if err != nil {
		fail(c, err)
		return
	}

	h.notifyRoom(roomID)
	respond(c, http.StatusOK, result)
}

func (h *PlayHandler) notifyRoom(roomID uint) {
	room, err := h.rooms.Get(roomID)
	if err != nil {
		h.hub.BroadcastToRoom(roomID, ws.WSMessage{Type: "room_closed"})
		return
	}
	h.hub.NotifyVersion(roomID, room.StateVersion)
}

func roomIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		failMsg(c, http.StatusBadRequest, "invalid room id")
		return 0, false
	}
	return uint(id), true
}
