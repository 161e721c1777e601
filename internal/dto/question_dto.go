package dto

import "time"

// QuestionCreateDTO is used by content management to add question bank entries.
type QuestionCreateDTO struct {
	Section       string   `json:"section" binding:"required,oneof=listening reading writing speaking"`
	Type          string   `json:"question_type" binding:"required,oneof=multiple-choice text"`
	QuestionText  string   `json:"question_text" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Points        float64  `json:"points" binding:"required,gt=0"`
}

// QuestionUpdateDTO updates an existing question bank entry.
type QuestionUpdateDTO struct {
	QuestionText  *string  `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer *string  `json:"correct_answer"`
	Points        *float64 `json:"points"`
}

// QuestionResponseDTO is the admin view, correct answer included.
type QuestionResponseDTO struct {
	ID            string    `json:"id"`
	Section       string    `json:"section"`
	Type          string    `json:"question_type"`
	QuestionText  string    `json:"question_text"`
	Options       []string  `json:"options,omitempty"`
	CorrectAnswer string    `json:"correct_answer,omitempty"`
	Points        float64   `json:"points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ExamQuestionDTO is the test-taker view of a question; the correct answer is
// never exposed here.
type ExamQuestionDTO struct {
	ID           string   `json:"id"`
	Section      string   `json:"section"`
	Type         string   `json:"question_type"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options,omitempty"`
	Points       float64  `json:"points"`
}

// ExamPaperDTO groups the test-taker questions by section.
type ExamPaperDTO struct {
	Listening []ExamQuestionDTO `json:"listening"`
	Reading   []ExamQuestionDTO `json:"reading"`
	Writing   []ExamQuestionDTO `json:"writing"`
	Speaking  []ExamQuestionDTO `json:"speaking"`
}
