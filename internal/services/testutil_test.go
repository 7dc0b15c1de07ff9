package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/szolzol/humbug-quiz-sub000/internal/config"
	"github.com/szolzol/humbug-quiz-sub000/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.QuestionSet{},
		&models.Question{},
		&models.AcceptedAnswer{},
		&models.Room{},
		&models.Player{},
		&models.GameSession{},
		&models.PlayerAnswer{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		QuestionsPerGame: 10,
		StartingLives:    3,
		PointsPerCorrect: 10,
		ChallengeWindow:  30 * time.Second,
		RoomTTL:          6 * time.Hour,
		CodeMaxAttempts:  50,
	}
}

// seedQuestions creates a question set with n questions. Question i accepts
// "answer-i" plus an uppercase spelling variant.
func seedQuestions(t *testing.T, db *gorm.DB, n int) *models.QuestionSet {
	t.Helper()

	set := models.QuestionSet{Title: "Test Set"}
	require.NoError(t, db.Create(&set).Error)

	for i := 0; i < n; i++ {
		q := models.Question{
			QuestionSetID: set.ID,
			Text:          fmt.Sprintf("Question %d?", i),
			Category:      "Test",
			Active:        true,
		}
		require.NoError(t, db.Create(&q).Error)
		require.NoError(t, db.Create(&models.AcceptedAnswer{
			QuestionID: q.ID, Text: fmt.Sprintf("answer-%d", i),
		}).Error)
		require.NoError(t, db.Create(&models.AcceptedAnswer{
			QuestionID: q.ID, Text: fmt.Sprintf("  ANSWER-%d ", i),
		}).Error)
	}
	return &set
}

type fixture struct {
	db    *gorm.DB
	cfg   *config.Config
	rooms *RoomService
	games *GameService
	state *StateService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	return &fixture{
		db:    db,
		cfg:   cfg,
		rooms: NewRoomService(db, cfg),
		games: NewGameService(db, cfg),
		state: NewStateService(db),
	}
}

// answerFor returns the accepted answer text for the session's current question.
func (f *fixture) answerFor(t *testing.T, roomID uint) string {
	t.Helper()
	var session models.GameSession
	require.NoError(t, f.db.Where("room_id = ?", roomID).First(&session).Error)
	var accepted models.AcceptedAnswer
	require.NoError(t, f.db.Where("question_id = ?", session.CurrentQuestionID).
		First(&accepted).Error)
	return accepted.Text
}

func (f *fixture) currentSession(t *testing.T, roomID uint) *models.GameSession {
	t.Helper()
	var session models.GameSession
	require.NoError(t, f.db.Where("room_id = ?", roomID).First(&session).Error)
	return &session
}

func (f *fixture) player(t *testing.T, playerID uint) *models.Player {
	t.Helper()
	var p models.Player
	require.NoError(t, f.db.First(&p, playerID).Error)
	return &p
}

func (f *fixture) room(t *testing.T, roomID uint) *models.Room {
	t.Helper()
	var r models.Room
	require.NoError(t, f.db.First(&r, roomID).Error)
	return &r
}

// expireWindow backdates the challenge deadline so it reads as lapsed.
func (f *fixture) expireWindow(t *testing.T, roomID uint) {
	t.Helper()
	past := time.Now().Add(-time.Minute)
	require.NoError(t, f.db.Model(&models.GameSession{}).
		Where("room_id = ?", roomID).
		Update("challenge_deadline", past).Error)
}
