package services

import (
	"time"

	"github.com/szolzol/humbug-quiz-sub000/internal/models"

	"gorm.io/gorm"
)

type StateService struct {
	db *gorm.DB
}

func NewStateService(db *gorm.DB) *StateService {
	return &StateService{db: db}
}

type RoomSummary struct {
	ID         uint      `json:"id"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	MaxPlayers int       `json:"max_players"`
	Version    int64     `json:"version"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type PlayerPublic struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
	Lives    int    `json:"lives"`
	Score    int    `json:"score"`
	IsHost   bool   `json:"is_host"`
	IsMe     bool   `json:"is_me"`
}

type QuestionPublic struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

// AnswerEntry feeds the challenge UI. While unrevealed it is a redacted
// placeholder: the text and verdict stay server-side until the reveal.
type AnswerEntry struct {
	ID           uint      `json:"id"`
	PlayerID     uint      `json:"player_id"`
	Nickname     string    `json:"nickname"`
	Revealed     bool      `json:"revealed"`
	Text         string    `json:"text,omitempty"`
	Correct      *bool     `json:"correct,omitempty"`
	Points       int       `json:"points,omitempty"`
	ChallengerID *uint     `json:"challenger_id,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

type GameState struct {
	QuestionIndex       int             `json:"question_index"`
	TotalQuestions      int             `json:"total_questions"`
	Round               int             `json:"round"`
	Question            *QuestionPublic `json:"question,omitempty"`
	CurrentTurnPlayerID uint            `json:"current_turn_player_id"`
	CurrentTurnNickname string          `json:"current_turn_nickname,omitempty"`
	ChallengeDeadline   *time.Time      `json:"challenge_deadline,omitempty"`
	RecentAnswers       []AnswerEntry   `json:"recent_answers"`
}

type RoomState struct {
	Room    RoomSummary    `json:"room"`
	Players []PlayerPublic `json:"players"`
	Game    *GameState     `json:"game,omitempty"`
}

// Build produces the versioned snapshot for polling clients. The answer key
// never leaves the server; pending answers appear redacted.
func (s *StateService) Build(room *models.Room, callerSessionID string) (*RoomState, error) {
	state := &RoomState{
		Room: RoomSummary{
			ID:         room.ID,
			Code:       room.Code,
			Status:     room.Status,
			MaxPlayers: room.MaxPlayers,
			Version:    room.StateVersion,
			ExpiresAt:  room.ExpiresAt,
		},
	}

	var players []models.Player
	if err := s.db.Where("room_id = ?", room.ID).Order("joined_at ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	nicknames := make(map[uint]string, len(players))
	for _, p := range players {
		nicknames[p.ID] = p.Nickname
		state.Players = append(state.Players, PlayerPublic{
			ID:       p.ID,
			Nickname: p.Nickname,
			Lives:    p.Lives,
			Score:    p.Score,
			IsHost:   p.IsHost,
			IsMe:     p.SessionID == callerSessionID,
		})
	}

	if room.Status == models.RoomStatusLobby {
		return state, nil
	}

	var session models.GameSession
	if err := s.db.Where("room_id = ?", room.ID).First(&session).Error; err != nil {
		return state, nil
	}

	game := &GameState{
		QuestionIndex:       session.CurrentIndex,
		TotalQuestions:      len(session.QuestionIDs),
		Round:               session.Round,
		CurrentTurnPlayerID: session.CurrentTurnPlayerID,
		CurrentTurnNickname: nicknames[session.CurrentTurnPlayerID],
		ChallengeDeadline:   session.ChallengeDeadline,
		RecentAnswers:       []AnswerEntry{},
	}

	var question models.Question
	if err := s.db.First(&question, session.CurrentQuestionID).Error; err == nil {
		game.Question = &QuestionPublic{Text: question.Text, Category: question.Category}
	}

	var answers []models.PlayerAnswer
	s.db.Where("game_session_id = ?", session.ID).
		Order("submitted_at DESC").Limit(10).Find(&answers)
	for _, a := range answers {
		entry := AnswerEntry{
			ID:          a.ID,
			PlayerID:    a.PlayerID,
			Nickname:    nicknames[a.PlayerID],
			Revealed:    a.Revealed,
			SubmittedAt: a.SubmittedAt,
		}
		if a.Revealed {
			correct := a.IsCorrect
			entry.Text = a.Text
			entry.Correct = &correct
			entry.Points = a.Points
			entry.ChallengerID = a.ChallengerID
		}
		game.RecentAnswers = append(game.RecentAnswers, entry)
	}

	state.Game = game
	return state, nil
}
