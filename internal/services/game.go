package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/szolzol/humbug-quiz-sub000/internal/config"
	"github.com/szolzol/humbug-quiz-sub000/internal/metrics"
	"github.com/szolzol/humbug-quiz-sub000/internal/models"

	"gorm.io/gorm"
)

const (
	PenaltyTargetAnswerer   = "answerer"
	PenaltyTargetChallenger = "challenger"

	GameOverCompleted     = "completed"
	GameOverAllEliminated = "all_eliminated"
)

type GameService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewGameService(db *gorm.DB, cfg *config.Config) *GameService {
	return &GameService{db: db, cfg: cfg}
}

type StartResult struct {
	TotalQuestions int  `json:"total_questions"`
	FirstPlayerID  uint `json:"first_player_id"`
}

type AnswerResult struct {
	AnswerID       uint `json:"answer_id"`
	Correct        bool `json:"correct"`
	PointsEarned   int  `json:"points_earned"`
	LivesRemaining int  `json:"lives_remaining"`
}

type ChallengeResult struct {
	AnswerWasCorrect bool   `json:"answer_was_correct"`
	PenaltyTarget    string `json:"penalty_target"`
	Eliminated       bool   `json:"eliminated"`
	LivesRemaining   int    `json:"lives_remaining"`
}

type FinalScore struct {
	Position int    `json:"position"`
	PlayerID uint   `json:"player_id"`
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
	Lives    int    `json:"lives"`
}

type AdvanceResult struct {
	GameOver          bool         `json:"game_over"`
	Reason            string       `json:"reason,omitempty"`
	FinalScores       []FinalScore `json:"final_scores,omitempty"`
	NextQuestionIndex int          `json:"next_question_index"`
	NextPlayerID      uint         `json:"next_player_id,omitempty"`
	Round             int          `json:"round,omitempty"`
}

// Start moves the room from lobby to playing: draws the question list, fixes
// the turn order as the join order at this moment, and seats the first player.
func (s *GameService) Start(roomID uint, sessionID string, questionSetID *uint) (*StartResult, error) {
	var result StartResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		room, caller, err := s.roomAndCaller(tx, roomID, sessionID)
		if err != nil {
			return err
		}
		if !caller.IsHost {
			return fmt.Errorf("%w: only the host can start the game", ErrForbidden)
		}
		if room.Status != models.RoomStatusLobby {
			return fmt.Errorf("%w: room is not in lobby", ErrInvalidState)
		}

		var players []models.Player
		tx.Where("room_id = ?", roomID).Order("joined_at ASC").Find(&players)
		if len(players) < models.RoomMinPlayers {
			return fmt.Errorf("%w: at least %d players required",
				ErrInsufficientPlayers, models.RoomMinPlayers)
		}

		setID := room.QuestionSetID
		if questionSetID != nil {
			setID = questionSetID
		}
		ids, err := pickQuestions(tx, setID, s.cfg.QuestionsPerGame)
		if err != nil {
			return err
		}

		session := models.GameSession{
			RoomID:              roomID,
			QuestionIDs:         ids,
			CurrentIndex:        0,
			CurrentQuestionID:   ids[0],
			CurrentTurnPlayerID: players[0].ID,
			Round:               1,
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Room{}).Where("id = ?", roomID).
			Update("status", models.RoomStatusPlaying).Error; err != nil {
			return err
		}
		if err := bumpVersion(tx, roomID, room.StateVersion); err != nil {
			return err
		}

		result = StartResult{TotalQuestions: len(ids), FirstPlayerID: players[0].ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitAnswer records the current turn player's answer. A correct answer is
// credited immediately; an incorrect one keeps its life penalty hidden until
// the challenge window resolves, so opponents must decide blind.
func (s *GameService) SubmitAnswer(roomID uint, sessionID, text string) (*AnswerResult, error) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > 500 {
		return nil, fmt.Errorf("%w: answer must be 1-500 characters", ErrValidation)
	}

	var result AnswerResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		room, caller, err := s.roomAndCaller(tx, roomID, sessionID)
		if err != nil {
			return err
		}
		session, err := activeSession(tx, room)
		if err != nil {
			return err
		}
		if caller.ID != session.CurrentTurnPlayerID {
			return fmt.Errorf("%w: not your turn", ErrForbidden)
		}

		var answered int64
		tx.Model(&models.PlayerAnswer{}).
			Where("game_session_id = ? AND question_id = ?", session.ID, session.CurrentQuestionID).
			Count(&answered)
		if answered > 0 {
			return fmt.Errorf("%w: answer already submitted for this question", ErrInvalidState)
		}

		question, err := getQuestion(tx, session.CurrentQuestionID)
		if err != nil {
			return err
		}
		correct := matchesAccepted(text, question.Accepted)

		points := 0
		if correct {
			points = s.cfg.PointsPerCorrect
			if err := tx.Model(&models.Player{}).Where("id = ?", caller.ID).
				Update("score", gorm.Expr("score + ?", points)).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		answer := models.PlayerAnswer{
			GameSessionID: session.ID,
			PlayerID:      caller.ID,
			QuestionID:    session.CurrentQuestionID,
			Text:          text,
			IsCorrect:     correct,
			Points:        points,
			Round:         session.Round,
			Revealed:      false,
			SubmittedAt:   now,
		}
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}

		deadline := now.Add(s.cfg.ChallengeWindow)
		if err := tx.Model(session).Updates(map[string]interface{}{
			"last_answer_at":     now,
			"challenge_deadline": deadline,
		}).Error; err != nil {
			return err
		}
		if err := bumpVersion(tx, roomID, room.StateVersion); err != nil {
			return err
		}

		result = AnswerResult{
			AnswerID:       answer.ID,
			Correct:        correct,
			PointsEarned:   points,
			LivesRemaining: caller.Lives,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Challenge disputes a pending answer inside its window. The resolution is
// zero-sum: a justified challenge costs the answerer the deferred life, an
// unjustified one costs the challenger a life instead.
func (s *GameService) Challenge(roomID uint, sessionID string, answerID uint) (*ChallengeResult, error) {
	var result ChallengeResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		room, challenger, err := s.roomAndCaller(tx, roomID, sessionID)
		if err != nil {
			return err
		}
		session, err := activeSession(tx, room)
		if err != nil {
			return err
		}

		var answer models.PlayerAnswer
		if err := tx.Where("id = ? AND game_session_id = ?", answerID, session.ID).
			First(&answer).Error; err != nil {
			return fmt.Errorf("%w: answer not found", ErrNotFound)
		}
		if answer.Revealed {
			return ErrAlreadyResolved
		}
		if session.ChallengeDeadline == nil || time.Now().After(*session.ChallengeDeadline) {
			return ErrWindowExpired
		}
		if answer.PlayerID == challenger.ID {
			return ErrSelfChallenge
		}

		target := PenaltyTargetAnswerer
		penalizedID := answer.PlayerID
		if answer.IsCorrect {
			target = PenaltyTargetChallenger
			penalizedID = challenger.ID
		}

		lives, err := deductLife(tx, penalizedID)
		if err != nil {
			return err
		}

		if err := tx.Model(&answer).Updates(map[string]interface{}{
			"revealed":      true,
			"challenger_id": challenger.ID,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(session).Update("challenge_deadline", nil).Error; err != nil {
			return err
		}
		if err := bumpVersion(tx, roomID, room.StateVersion); err != nil {
			return err
		}

		outcome := "upheld"
		if answer.IsCorrect {
			outcome = "rejected"
		}
		metrics.ChallengesTotal.WithLabelValues(outcome).Inc()

		result = ChallengeResult{
			AnswerWasCorrect: answer.IsCorrect,
			PenaltyTarget:    target,
			Eliminated:       lives <= 0,
			LivesRemaining:   lives,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Advance is host-driven housekeeping plus rotation: it first settles an
// expired challenge window, then either rotates the turn over the currently
// eligible players or finishes the game.
func (s *GameService) Advance(roomID uint, sessionID string) (*AdvanceResult, error) {
	var result AdvanceResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		room, caller, err := s.roomAndCaller(tx, roomID, sessionID)
		if err != nil {
			return err
		}
		if !caller.IsHost {
			return fmt.Errorf("%w: only the host can advance", ErrForbidden)
		}
		session, err := activeSession(tx, room)
		if err != nil {
			return err
		}

		if err := resolveExpiredWindow(tx, session); err != nil {
			return err
		}

		var players []models.Player
		tx.Where("room_id = ?", roomID).Order("joined_at ASC").Find(&players)

		// A lone survivor has nobody left to challenge them, so the game
		// cannot continue meaningfully below two eligible players.
		if countEligible(players) < models.RoomMinPlayers {
			return s.finish(tx, room, session, players, GameOverAllEliminated, &result)
		}

		if session.CurrentIndex+1 >= len(session.QuestionIDs) {
			return s.finish(tx, room, session, players, GameOverCompleted, &result)
		}

		next, wrapped := nextTurnPlayer(players, session.CurrentTurnPlayerID)
		if next == 0 {
			return s.finish(tx, room, session, players, GameOverAllEliminated, &result)
		}

		session.CurrentIndex++
		session.CurrentQuestionID = session.QuestionIDs[session.CurrentIndex]
		session.CurrentTurnPlayerID = next
		if wrapped {
			session.Round++
		}
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		if err := bumpVersion(tx, roomID, room.StateVersion); err != nil {
			return err
		}

		result = AdvanceResult{
			NextQuestionIndex: session.CurrentIndex,
			NextPlayerID:      next,
			Round:             session.Round,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *GameService) finish(tx *gorm.DB, room *models.Room, session *models.GameSession, players []models.Player, reason string, result *AdvanceResult) error {
	if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("status", models.RoomStatusFinished).Error; err != nil {
		return err
	}
	if err := bumpVersion(tx, room.ID, room.StateVersion); err != nil {
		return err
	}
	*result = AdvanceResult{
		GameOver:          true,
		Reason:            reason,
		FinalScores:       finalRanking(players),
		NextQuestionIndex: session.CurrentIndex,
	}
	return nil
}

// roomAndCaller loads the room (with lazy expiry) and the caller's player row.
func (s *GameService) roomAndCaller(tx *gorm.DB, roomID uint, sessionID string) (*models.Room, *models.Player, error) {
	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		return nil, nil, ErrNotFound
	}
	if time.Now().After(room.ExpiresAt) {
		// No cleanup here: the error rolls this transaction back anyway.
		// The next lifecycle lookup deletes the expired room.
		return nil, nil, ErrNotFound
	}

	var player models.Player
	if err := tx.Where("room_id = ? AND session_id = ?", roomID, sessionID).
		First(&player).Error; err != nil {
		return nil, nil, fmt.Errorf("%w: you are not in this room", ErrNotFound)
	}
	return &room, &player, nil
}

func activeSession(tx *gorm.DB, room *models.Room) (*models.GameSession, error) {
	if room.Status != models.RoomStatusPlaying {
		return nil, fmt.Errorf("%w: no active game", ErrInvalidState)
	}
	var session models.GameSession
	if err := tx.Where("room_id = ?", room.ID).First(&session).Error; err != nil {
		return nil, fmt.Errorf("%w: no active game", ErrInvalidState)
	}
	return &session, nil
}

// resolveExpiredWindow settles a pending answer whose challenge window lapsed
// with no challenge: the answer is revealed as-is and an incorrect answer's
// deferred life penalty is applied. A still-open window blocks advancing.
func resolveExpiredWindow(tx *gorm.DB, session *models.GameSession) error {
	var answer models.PlayerAnswer
	if err := tx.Where("game_session_id = ? AND revealed = ?", session.ID, false).
		First(&answer).Error; err != nil {
		return nil
	}

	if session.ChallengeDeadline != nil && time.Now().Before(*session.ChallengeDeadline) {
		return fmt.Errorf("%w: challenge window still open", ErrInvalidState)
	}

	if !answer.IsCorrect {
		if _, err := deductLife(tx, answer.PlayerID); err != nil {
			return err
		}
	}
	if err := tx.Model(&answer).Update("revealed", true).Error; err != nil {
		return err
	}
	return tx.Model(session).Update("challenge_deadline", nil).Error
}

// settleAnswerAfterLeave reveals a departing player's pending answer and
// closes the window. There is no life to deduct once the player row is gone,
// and leaving a dangling unrevealed answer would stall every later advance.
func settleAnswerAfterLeave(tx *gorm.DB, roomID, playerID uint) error {
	var session models.GameSession
	if err := tx.Where("room_id = ?", roomID).First(&session).Error; err != nil {
		return nil
	}

	res := tx.Model(&models.PlayerAnswer{}).
		Where("game_session_id = ? AND player_id = ? AND revealed = ?",
			session.ID, playerID, false).
		Update("revealed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}
	return tx.Model(&session).Update("challenge_deadline", nil).Error
}

func deductLife(tx *gorm.DB, playerID uint) (int, error) {
	var player models.Player
	if err := tx.First(&player, playerID).Error; err != nil {
		return 0, err
	}
	lives := player.Lives - 1
	if lives < 0 {
		lives = 0
	}
	if err := tx.Model(&player).Update("lives", lives).Error; err != nil {
		return 0, err
	}
	return lives, nil
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matchesAccepted(text string, accepted []models.AcceptedAnswer) bool {
	norm := normalizeAnswer(text)
	for _, a := range accepted {
		if norm == normalizeAnswer(a.Text) {
			return true
		}
	}
	return false
}

func countEligible(players []models.Player) int {
	n := 0
	for _, p := range players {
		if p.Lives > 0 {
			n++
		}
	}
	return n
}

// nextTurnPlayer picks the next turn holder by round-robin over the players in
// join order, skipping anyone without lives. It is a pure function of the
// player list and the current holder, so rotation stays deterministic even
// when the holder was eliminated (or left) since their turn. The second return
// reports whether rotation wrapped back to the first eligible player.
func nextTurnPlayer(players []models.Player, currentID uint) (uint, bool) {
	n := len(players)
	if n == 0 {
		return 0, false
	}

	firstEligible := uint(0)
	for _, p := range players {
		if p.Lives > 0 {
			firstEligible = p.ID
			break
		}
	}
	if firstEligible == 0 {
		return 0, false
	}

	pos := -1
	for i, p := range players {
		if p.ID == currentID {
			pos = i
			break
		}
	}

	for step := 1; step <= n; step++ {
		idx := ((pos+step)%n + n) % n
		p := players[idx]
		if p.Lives > 0 {
			return p.ID, p.ID == firstEligible
		}
	}
	return 0, false
}

func finalRanking(players []models.Player) []FinalScore {
	ranked := make([]models.Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Lives > ranked[j].Lives
	})

	scores := make([]FinalScore, len(ranked))
	for i, p := range ranked {
		scores[i] = FinalScore{
			Position: i + 1,
			PlayerID: p.ID,
			Nickname: p.Nickname,
			Score:    p.Score,
			Lives:    p.Lives,
		}
	}
	return scores
}
