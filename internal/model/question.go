package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Exam sections.
const (
	SectionListening = "listening"
	SectionReading   = "reading"
	SectionWriting   = "writing"
	SectionSpeaking  = "speaking"
)

// Question types.
const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeText           = "text"
)

// Question is a single entry of the question bank. Reference data: created and
// updated by content management only, read-only to the grading pipeline.
type Question struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	Section       string         `json:"section" gorm:"not null;index"`
	Type          string         `json:"question_type" gorm:"not null"`
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	Options       datatypes.JSON `json:"options,omitempty"` // ordered list, multiple-choice only
	CorrectAnswer string         `json:"correct_answer" gorm:"type:text"`
	Points        float64        `json:"points" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
