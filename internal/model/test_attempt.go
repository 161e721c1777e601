package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attempt statuses.
const (
	AttemptStatusPending   = "pending"
	AttemptStatusCompleted = "completed"
)

// TestAttempt is one completed exam sitting. Append-only: created exactly once
// at submission time and never updated afterwards. The composite unique index
// on (user_id, attempt_number) closes the double-submission race on the
// max+1 attempt-number computation.
type TestAttempt struct {
	ID            string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_attempt_number"`
	AttemptNumber int    `json:"attempt_number" gorm:"not null;uniqueIndex:idx_user_attempt_number"`

	ListeningScore int `json:"listening_score" gorm:"not null"`
	ReadingScore   int `json:"reading_score" gorm:"not null"`
	WritingScore   int `json:"writing_score" gorm:"not null"`
	SpeakingScore  int `json:"speaking_score" gorm:"not null"`
	OverallScore   int `json:"overall_score" gorm:"not null"`

	ListeningCEFR string `json:"listening_cefr"`
	ReadingCEFR   string `json:"reading_cefr"`
	WritingCEFR   string `json:"writing_cefr"`
	SpeakingCEFR  string `json:"speaking_cefr"`
	OverallCEFR   string `json:"overall_cefr"`

	ListeningIELTSBand string `json:"listening_ielts_band"`
	ReadingIELTSBand   string `json:"reading_ielts_band"`
	WritingIELTSBand   string `json:"writing_ielts_band"`
	SpeakingIELTSBand  string `json:"speaking_ielts_band"`
	OverallIELTSBand   string `json:"overall_ielts_band"`

	Status   string         `json:"status" gorm:"not null;default:'pending'"`
	Answers  datatypes.JSON `json:"answers"` // submitted-answers snapshot
	AudioURL string         `json:"audio_url"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *TestAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
