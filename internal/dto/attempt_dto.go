package dto

import (
	"encoding/json"
	"time"
)

// AttemptSummaryDTO lists one row of a user's attempt history.
type AttemptSummaryDTO struct {
	ID            string        `json:"id"`
	AttemptNumber int           `json:"attempt_number"`
	Scores        SectionScores `json:"scores"`
	OverallScore  int           `json:"overall_score"`
	OverallCEFR   string        `json:"overall_cefr"`
	Status        string        `json:"status"`
	SubmittedAt   time.Time     `json:"submitted_at"`
}

// AttemptDetailDTO is the full record of one attempt, answers snapshot included.
type AttemptDetailDTO struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	AttemptNumber int             `json:"attempt_number"`
	Scores        SectionScores   `json:"scores"`
	OverallScore  int             `json:"overall_score"`
	CEFR          SectionLevels   `json:"cefr"`
	IELTSBands    SectionLevels   `json:"ielts_bands"`
	Status        string          `json:"status"`
	Answers       json.RawMessage `json:"answers,omitempty"`
	AudioURL      string          `json:"audio_url,omitempty"`
	SubmittedAt   time.Time       `json:"submitted_at"`
}

// CertificateDTO carries everything the certificate renderer needs.
type CertificateDTO struct {
	CertificateID string        `json:"certificate_id"`
	TestAttemptID string        `json:"test_attempt_id"`
	HolderName    string        `json:"holder_name"`
	AttemptNumber int           `json:"attempt_number"`
	Scores        SectionScores `json:"scores"`
	OverallScore  int           `json:"overall_score"`
	CEFR          SectionLevels `json:"cefr"`
	OverallLabel  string        `json:"overall_label"`
	OverallRange  string        `json:"overall_range"`
	IssuedAt      time.Time     `json:"issued_at"`
}

// RecordingResponse returns the storage reference of an uploaded recording.
type RecordingResponse struct {
	AudioURL string `json:"audio_url"`
}
