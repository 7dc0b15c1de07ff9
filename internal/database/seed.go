package database

import (
	"github.com/szolzol/humbug-quiz-sub000/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type seedQuestion struct {
	text     string
	category string
	accepted []string
}

var starterQuestions = []seedQuestion{
	{"Which planet is known as the Red Planet?", "Science", []string{"Mars"}},
	{"What is the capital of France?", "Geography", []string{"Paris", "Párizs"}},
	{"How many legs does a spider have?", "Nature", []string{"8", "eight"}},
	{"Who painted the Mona Lisa?", "Art", []string{"Leonardo da Vinci", "da Vinci", "Leonardo"}},
	{"What is the chemical symbol for gold?", "Science", []string{"Au"}},
	{"Which country is home to the kangaroo?", "Nature", []string{"Australia", "Ausztrália"}},
	{"What is the largest ocean on Earth?", "Geography", []string{"Pacific", "Pacific Ocean", "the Pacific"}},
	{"In which year did World War II end?", "History", []string{"1945"}},
	{"What is the square root of 144?", "Math", []string{"12", "twelve"}},
	{"Which instrument has 88 keys?", "Music", []string{"piano", "the piano", "zongora"}},
	{"What is the longest river in the world?", "Geography", []string{"Nile", "the Nile", "Nílus"}},
	{"Who wrote Romeo and Juliet?", "Literature", []string{"William Shakespeare", "Shakespeare"}},
	{"What gas do plants absorb from the atmosphere?", "Science", []string{"carbon dioxide", "CO2"}},
	{"Which continent is the Sahara desert on?", "Geography", []string{"Africa", "Afrika"}},
}

// Seed creates a starter question set when the question pool is empty, so a
// fresh deployment can start games immediately.
func Seed(db *gorm.DB) {
	var count int64
	db.Model(&models.Question{}).Count(&count)
	if count > 0 {
		return
	}

	set := models.QuestionSet{Title: "Starter Trivia"}
	if err := db.Create(&set).Error; err != nil {
		log.Errorf("failed to seed question set: %v", err)
		return
	}

	for _, sq := range starterQuestions {
		q := models.Question{
			QuestionSetID: set.ID,
			Text:          sq.text,
			Category:      sq.category,
			Active:        true,
		}
		if err := db.Create(&q).Error; err != nil {
			log.Errorf("failed to seed question: %v", err)
			continue
		}
		for _, a := range sq.accepted {
			db.Create(&models.AcceptedAnswer{QuestionID: q.ID, Text: a})
		}
	}
	log.Infof("seeded starter question set with %d questions", len(starterQuestions))
}
