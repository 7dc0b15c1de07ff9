package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/szolzol/humbug-quiz-sub000/internal/config"
	"github.com/szolzol/humbug-quiz-sub000/internal/metrics"
	"github.com/szolzol/humbug-quiz-sub000/internal/models"

	"gorm.io/gorm"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type RoomService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewRoomService(db *gorm.DB, cfg *config.Config) *RoomService {
	return &RoomService{db: db, cfg: cfg}
}

type JoinResult struct {
	Room     models.Room   `json:"room"`
	Player   models.Player `json:"player"`
	IsRejoin bool          `json:"is_rejoin"`
}

func (s *RoomService) Create(sessionID string, maxPlayers int, questionSetID *uint) (*models.Room, error) {
	if maxPlayers < models.RoomMinPlayers || maxPlayers > models.RoomMaxPlayers {
		return nil, fmt.Errorf("%w: max_players must be between %d and %d",
			ErrValidation, models.RoomMinPlayers, models.RoomMaxPlayers)
	}

	code, err := s.generateUniqueCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	room := models.Room{
		Code:          code,
		HostSessionID: sessionID,
		MaxPlayers:    maxPlayers,
		QuestionSetID: questionSetID,
		Status:        models.RoomStatusLobby,
		StateVersion:  0,
		LastActiveAt:  now,
		ExpiresAt:     now.Add(s.cfg.RoomTTL),
	}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	metrics.ActiveRooms.Inc()
	return &room, nil
}

func (s *RoomService) Join(code, nickname, sessionID string) (*JoinResult, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" || len(nickname) > 50 {
		return nil, fmt.Errorf("%w: nickname must be 1-50 characters", ErrValidation)
	}

	var result JoinResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		room, err := s.getByCode(tx, code)
		if err != nil {
			return fmt.Errorf("%w: no such room", ErrNotJoinable)
		}

		var existing models.Player
		if err := tx.Where("room_id = ? AND session_id = ?", room.ID, sessionID).
			First(&existing).Error; err == nil {
			// Idempotent rejoin: refresh nickname and last-seen, no new row.
			// Bumping unconditionally keeps a renamed rejoiner visible to
			// pollers holding the old version tag.
			existing.Nickname = nickname
			existing.LastSeenAt = time.Now()
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			if err := bumpVersion(tx, room.ID, room.StateVersion); err != nil {
				return err
			}
			room.StateVersion++
			result = JoinResult{Room: *room, Player: existing, IsRejoin: true}
			return nil
		}

		if room.Status != models.RoomStatusLobby {
			return ErrNotJoinable
		}

		var count int64
		tx.Model(&models.Player{}).Where("room_id = ?", room.ID).Count(&count)
		if int(count) >= room.MaxPlayers {
			return ErrNotJoinable
		}

		now := time.Now()
		player := models.Player{
			RoomID:     room.ID,
			SessionID:  sessionID,
			Nickname:   nickname,
			Lives:      s.cfg.StartingLives,
			Score:      0,
			IsHost:     sessionID == room.HostSessionID,
			JoinedAt:   now,
			LastSeenAt: now,
		}
		if err := tx.Create(&player).Error; err != nil {
			return fmt.Errorf("join room: %w", err)
		}
		if err := bumpVersion(tx, room.ID, room.StateVersion); err != nil {
			return err
		}
		room.StateVersion++
		result = JoinResult{Room: *room, Player: player}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *RoomService) Leave(roomID uint, sessionID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		room, err := s.get(tx, roomID)
		if err != nil {
			return err
		}

		var player models.Player
		if err := tx.Where("room_id = ? AND session_id = ?", roomID, sessionID).
			First(&player).Error; err != nil {
			return ErrNotFound
		}

		if err := tx.Delete(&player).Error; err != nil {
			return err
		}

		var remaining []models.Player
		tx.Where("room_id = ?", roomID).Order("joined_at ASC").Find(&remaining)

		if len(remaining) == 0 {
			return deleteRoom(tx, roomID)
		}

		if player.IsHost {
			// Host transfer is deterministic: earliest-joined remaining player.
			if err := tx.Model(&models.Player{}).Where("id = ?", remaining[0].ID).
				Update("is_host", true).Error; err != nil {
				return err
			}
		}

		if room.Status == models.RoomStatusPlaying {
			if err := settleAnswerAfterLeave(tx, room.ID, player.ID); err != nil {
				return err
			}
			if err := repairTurnAfterLeave(tx, room, player.ID, remaining); err != nil {
				return err
			}
		}

		return bumpVersion(tx, roomID, room.StateVersion)
	})
}

// repairTurnAfterLeave keeps the current-turn invariant when the turn holder
// leaves mid-game: the turn passes to the next eligible player, or the game
// ends when none remain.
func repairTurnAfterLeave(tx *gorm.DB, room *models.Room, leftPlayerID uint, remaining []models.Player) error {
	var session models.GameSession
	if err := tx.Where("room_id = ?", room.ID).First(&session).Error; err != nil {
		return nil
	}
	if session.CurrentTurnPlayerID != leftPlayerID {
		return nil
	}

	next, _ := nextTurnPlayer(remaining, leftPlayerID)
	if next == 0 {
		return tx.Model(&models.Room{}).Where("id = ?", room.ID).
			Update("status", models.RoomStatusFinished).Error
	}
	return tx.Model(&session).Update("current_turn_player_id", next).Error
}

func (s *RoomService) Get(roomID uint) (*models.Room, error) {
	return s.get(s.db, roomID)
}

func (s *RoomService) GetByCode(code string) (*models.Room, error) {
	return s.getByCode(s.db, code)
}

func (s *RoomService) get(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		return nil, ErrNotFound
	}
	return s.checkExpiry(tx, &room)
}

func (s *RoomService) getByCode(tx *gorm.DB, code string) (*models.Room, error) {
	var room models.Room
	if err := tx.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&room).Error; err != nil {
		return nil, ErrNotFound
	}
	return s.checkExpiry(tx, &room)
}

// checkExpiry evaluates room expiry lazily: an expired room is deleted on the
// next lookup and reported as absent. The multi-hour sweep is external.
func (s *RoomService) checkExpiry(tx *gorm.DB, room *models.Room) (*models.Room, error) {
	if time.Now().After(room.ExpiresAt) {
		_ = deleteRoom(tx, room.ID)
		return nil, ErrNotFound
	}
	return room, nil
}

func (s *RoomService) ListPlayers(roomID uint) ([]models.Player, error) {
	var players []models.Player
	if err := s.db.Where("room_id = ?", roomID).Order("joined_at ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (s *RoomService) PlayerBySession(roomID uint, sessionID string) (*models.Player, error) {
	var player models.Player
	if err := s.db.Where("room_id = ? AND session_id = ?", roomID, sessionID).
		First(&player).Error; err != nil {
		return nil, ErrNotFound
	}
	return &player, nil
}

func (s *RoomService) TouchPlayer(roomID uint, sessionID string) {
	s.db.Model(&models.Player{}).
		Where("room_id = ? AND session_id = ?", roomID, sessionID).
		Update("last_seen_at", time.Now())
}

func (s *RoomService) generateUniqueCode() (string, error) {
	for attempt := 0; attempt < s.cfg.CodeMaxAttempts; attempt++ {
		code := randomCode(6)
		var count int64
		s.db.Model(&models.Room{}).Where("code = ?", code).Count(&count)
		if count == 0 {
			return code, nil
		}
	}
	// Exhaustion means the active-room space is saturated relative to the code
	// space, which is an operational problem, not a user error.
	return "", fmt.Errorf("%w: could not allocate a unique room code", ErrUnconfigured)
}

func randomCode(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			panic(err)
		}
		b.WriteByte(codeAlphabet[idx.Int64()])
	}
	return b.String()
}

// bumpVersion is the compare-and-swap each mutating operation ends with. Two
// writers racing on the same room serialize here: the loser sees zero rows
// affected and aborts its transaction.
func bumpVersion(tx *gorm.DB, roomID uint, fromVersion int64) error {
	res := tx.Model(&models.Room{}).
		Where("id = ? AND state_version = ?", roomID, fromVersion).
		Updates(map[string]interface{}{
			"state_version":  fromVersion + 1,
			"last_active_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func deleteRoom(tx *gorm.DB, roomID uint) error {
	var session models.GameSession
	if err := tx.Where("room_id = ?", roomID).First(&session).Error; err == nil {
		tx.Where("game_session_id = ?", session.ID).Delete(&models.PlayerAnswer{})
		tx.Delete(&session)
	}
	tx.Where("room_id = ?", roomID).Delete(&models.Player{})
	if err := tx.Delete(&models.Room{}, roomID).Error; err != nil {
		return err
	}
	metrics.ActiveRooms.Dec()
	return nil
}
