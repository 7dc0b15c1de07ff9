package database

import (
	"fmt"

	"github.com/szolzol/humbug-quiz-sub000/internal/config"
	"github.com/szolzol/humbug-quiz-sub000/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Info("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.QuestionSet{},
		&models.Question{},
		&models.AcceptedAnswer{},
		&models.Room{},
		&models.Player{},
		&models.GameSession{},
		&models.PlayerAnswer{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Info("database migrated")
}
