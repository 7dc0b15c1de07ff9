package models

import "time"

// GameSession is the per-room play state. Exactly one exists per room while the
// room is playing; it is deleted together with the room.
type GameSession struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	RoomID              uint       `gorm:"not null;uniqueIndex" json:"room_id"`
	QuestionIDs         []uint     `gorm:"serializer:json;not null" json:"question_ids"`
	CurrentIndex        int        `gorm:"not null;default:0" json:"current_index"`
	CurrentQuestionID   uint       `gorm:"not null" json:"current_question_id"`
	CurrentTurnPlayerID uint       `gorm:"not null" json:"current_turn_player_id"`
	Round               int        `gorm:"not null;default:1" json:"round"`
	LastAnswerAt        *time.Time `json:"last_answer_at,omitempty"`
	ChallengeDeadline   *time.Time `json:"challenge_deadline,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type PlayerAnswer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	GameSessionID uint      `gorm:"not null;index" json:"game_session_id"`
	PlayerID      uint      `gorm:"not null;index" json:"player_id"`
	QuestionID    uint      `gorm:"not null" json:"question_id"`
	Text          string    `gorm:"size:500;not null" json:"text"`
	IsCorrect     bool      `gorm:"not null" json:"is_correct"`
	Points        int       `gorm:"not null;default:0" json:"points"`
	Round         int       `gorm:"not null;default:1" json:"round"`
	Revealed      bool      `gorm:"not null;default:false" json:"revealed"`
	ChallengerID  *uint     `json:"challenger_id,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
