package models

import "time"

type QuestionSet struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Questions []Question `gorm:"foreignKey:QuestionSetID" json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type Question struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	QuestionSetID uint             `gorm:"not null;index" json:"question_set_id"`
	Text          string           `gorm:"type:text;not null" json:"text"`
	Category      string           `gorm:"size:100" json:"category,omitempty"`
	Active        bool             `gorm:"not null;default:true" json:"active"`
	Accepted      []AcceptedAnswer `gorm:"foreignKey:QuestionID" json:"accepted,omitempty"`
}

// AcceptedAnswer holds one valid spelling or translation variant for a question.
type AcceptedAnswer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"size:255;not null" json:"text"`
}
