package services

import (
	"fmt"
	"math/rand"

	"github.com/szolzol/humbug-quiz-sub000/internal/models"

	"gorm.io/gorm"
)

// pickQuestions draws n active question ids at random, without replacement,
// optionally restricted to one question set. It runs on the caller's handle so
// it composes with transactions.
func pickQuestions(tx *gorm.DB, questionSetID *uint, n int) ([]uint, error) {
	query := tx.Model(&models.Question{}).Where("active = ?", true)
	if questionSetID != nil {
		query = query.Where("question_set_id = ?", *questionSetID)
	}

	var ids []uint
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) < n {
		return nil, fmt.Errorf("%w: need %d questions, pool has %d",
			ErrInsufficientContent, n, len(ids))
	}

	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ids[:n], nil
}

func getQuestion(tx *gorm.DB, questionID uint) (*models.Question, error) {
	var q models.Question
	if err := tx.Preload("Accepted").First(&q, questionID).Error; err != nil {
		return nil, ErrNotFound
	}
	return &q, nil
}
