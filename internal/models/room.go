package models

import "time"

type Room struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Code          string    `gorm:"size:6;index" json:"code"`
	HostSessionID string    `gorm:"size:64;not null" json:"-"`
	MaxPlayers    int       `gorm:"not null;default:10" json:"max_players"`
	QuestionSetID *uint     `gorm:"index" json:"question_set_id,omitempty"`
	Status        string    `gorm:"size:20;not null;default:'lobby'" json:"status"`
	StateVersion  int64     `gorm:"not null;default:0" json:"state_version"`
	Players       []Player  `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"players,omitempty"`
	LastActiveAt  time.Time `json:"last_active_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	RoomStatusLobby    = "lobby"
	RoomStatusPlaying  = "playing"
	RoomStatusFinished = "finished"

	RoomMinPlayers = 2
	RoomMaxPlayers = 10
)

type Player struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RoomID     uint      `gorm:"not null;uniqueIndex:idx_room_session" json:"room_id"`
	SessionID  string    `gorm:"size:64;not null;uniqueIndex:idx_room_session" json:"-"`
	Nickname   string    `gorm:"size:50;not null" json:"nickname"`
	Lives      int       `gorm:"not null;default:3" json:"lives"`
	Score      int       `gorm:"not null;default:0" json:"score"`
	IsHost     bool      `gorm:"not null;default:false" json:"is_host"`
	JoinedAt   time.Time `json:"joined_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
