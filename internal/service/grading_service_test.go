package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lingocert/lingocert/internal/dto"
	"github.com/lingocert/lingocert/internal/model"
	"github.com/lingocert/lingocert/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	// The in-memory database exists per connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.TestAttempt{},
		&model.Certificate{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// gradingLLM answers the writing and speaking prompts deterministically, told
// apart by the examiner role each prompt opens with.
func gradingLLM(t *testing.T) LLMService {
	t.Helper()
	return &stubLLM{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "speaking examiner") {
			return `{"total_score": 90, "breakdown": {}, "feedback": "confident"}`, nil
		}
		if strings.Contains(prompt, "writing examiner") {
			return `{"score": 9, "feedback": "solid"}`, nil
		}
		t.Errorf("unexpected prompt: %s", prompt)
		return "", nil
	}}
}

func newGradingService(t *testing.T, db *gorm.DB) GradingService {
	t.Helper()
	llm := gradingLLM(t)
	return NewGradingService(
		repository.NewQuestionRepository(db),
		NewObjectiveGraderService(),
		NewEssayGraderService(llm),
		NewSpeakingGraderService(llm),
		NewCEFRService(),
		db,
	)
}

func seedQuestions(t *testing.T, db *gorm.DB) (listeningID, readingID, writingID string) {
	t.Helper()
	listening := model.Question{Section: model.SectionListening, Type: model.QuestionTypeMultipleChoice, QuestionText: "What did the speaker order?", CorrectAnswer: "B", Points: 5}
	reading := model.Question{Section: model.SectionReading, Type: model.QuestionTypeMultipleChoice, QuestionText: "What is the main idea?", CorrectAnswer: "C", Points: 5}
	writing := model.Question{Section: model.SectionWriting, Type: model.QuestionTypeText, QuestionText: "Discuss the impact of remote work.", Points: 10}
	for _, q := range []*model.Question{&listening, &reading, &writing} {
		if err := db.Create(q).Error; err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
	}
	return listening.ID, reading.ID, writing.ID
}

func TestGradeSubmissionFullPipeline(t *testing.T) {
	db := newTestDB(t)
	svc := newGradingService(t, db)
	listeningID, readingID, writingID := seedQuestions(t, db)

	userID := "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	req := dto.SubmitTestRequest{
		Answers: dto.SubmittedAnswers{
			Listening: map[string]string{listeningID: "B"},
			Reading:   map[string]string{readingID: "C"},
			Writing:   map[string]string{writingID: "Remote work reshapes cities."},
			Speaking:  "AI should assist, not decide.",
		},
		AudioURL: "https://cdn.example.com/recordings/abc.webm",
	}

	resp, err := svc.GradeSubmission(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("GradeSubmission() error: %v", err)
	}

	if !resp.Success {
		t.Error("Success = false, want true")
	}
	want := dto.SectionScores{Listening: 100, Reading: 100, Writing: 90, Speaking: 90}
	if resp.Scores != want {
		t.Errorf("Scores = %+v, want %+v", resp.Scores, want)
	}
	// Overall is round((100+100+90+90)/4) = 95, classified C2.
	wantLevels := dto.SectionLevels{Listening: "C2", Reading: "C2", Writing: "C2", Speaking: "C2", Overall: "C2"}
	if resp.CEFR != wantLevels {
		t.Errorf("CEFR = %+v, want %+v", resp.CEFR, wantLevels)
	}
	if resp.CertificateID != "CERT-3F2504E0-1" {
		t.Errorf("CertificateID = %q, want CERT-3F2504E0-1", resp.CertificateID)
	}

	var attempt model.TestAttempt
	if err := db.First(&attempt, "id = ?", resp.TestAttemptID).Error; err != nil {
		t.Fatalf("attempt not persisted: %v", err)
	}
	if attempt.AttemptNumber != 1 {
		t.Errorf("AttemptNumber = %d, want 1", attempt.AttemptNumber)
	}
	if attempt.OverallScore != 95 {
		t.Errorf("OverallScore = %d, want 95", attempt.OverallScore)
	}
	if attempt.Status != model.AttemptStatusCompleted {
		t.Errorf("Status = %q, want %q", attempt.Status, model.AttemptStatusCompleted)
	}
	if attempt.AudioURL != req.AudioURL {
		t.Errorf("AudioURL = %q, want %q", attempt.AudioURL, req.AudioURL)
	}

	var snapshot dto.SubmittedAnswers
	if err := json.Unmarshal(attempt.Answers, &snapshot); err != nil {
		t.Fatalf("answers snapshot unparseable: %v", err)
	}
	if snapshot.Speaking != req.Answers.Speaking {
		t.Errorf("snapshot speaking = %q, want %q", snapshot.Speaking, req.Answers.Speaking)
	}

	cert, err := repository.NewCertificateRepository(db).FindByCertificateID(resp.CertificateID)
	if err != nil {
		t.Fatalf("certificate not persisted: %v", err)
	}
	if cert.TestAttemptID != resp.TestAttemptID {
		t.Errorf("certificate attempt id = %q, want %q", cert.TestAttemptID, resp.TestAttemptID)
	}
	if cert.UserID != userID {
		t.Errorf("certificate user id = %q, want %q", cert.UserID, userID)
	}
}

func TestGradeSubmissionAttemptNumbering(t *testing.T) {
	db := newTestDB(t)
	svc := newGradingService(t, db)
	listeningID, _, _ := seedQuestions(t, db)

	userID := "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
	other := "c0ffee00-0000-4000-8000-000000000000"
	req := dto.SubmitTestRequest{
		Answers: dto.SubmittedAnswers{
			Listening: map[string]string{listeningID: "B"},
			Speaking:  "notes",
		},
	}

	for i := 1; i <= 3; i++ {
		resp, err := svc.GradeSubmission(context.Background(), userID, req)
		if err != nil {
			t.Fatalf("submission %d error: %v", i, err)
		}
		if want := CertificateIDFor(userID, i); resp.CertificateID != want {
			t.Errorf("submission %d certificate id = %q, want %q", i, resp.CertificateID, want)
		}

		var attempt model.TestAttempt
		if err := db.First(&attempt, "id = ?", resp.TestAttemptID).Error; err != nil {
			t.Fatalf("attempt %d not persisted: %v", i, err)
		}
		if attempt.AttemptNumber != i {
			t.Errorf("submission %d attempt number = %d, want %d", i, attempt.AttemptNumber, i)
		}
	}

	// Numbering is per user: a different user starts back at 1.
	resp, err := svc.GradeSubmission(context.Background(), other, req)
	if err != nil {
		t.Fatalf("other user submission error: %v", err)
	}
	var attempt model.TestAttempt
	if err := db.First(&attempt, "id = ?", resp.TestAttemptID).Error; err != nil {
		t.Fatalf("other user attempt not persisted: %v", err)
	}
	if attempt.AttemptNumber != 1 {
		t.Errorf("other user attempt number = %d, want 1", attempt.AttemptNumber)
	}
}

func TestGradeSubmissionEmptySections(t *testing.T) {
	db := newTestDB(t)
	svc := newGradingService(t, db)
	seedQuestions(t, db)

	// Nothing answered: objective sections score 0, the writing section has no
	// answered questions so no model call is made and it scores 0, and the
	// speaking grader still runs on the empty transcript.
	resp, err := svc.GradeSubmission(context.Background(), "00000000-0000-0000-0000-000000000001", dto.SubmitTestRequest{})
	if err != nil {
		t.Fatalf("GradeSubmission() error: %v", err)
	}

	want := dto.SectionScores{Listening: 0, Reading: 0, Writing: 0, Speaking: 90}
	if resp.Scores != want {
		t.Errorf("Scores = %+v, want %+v", resp.Scores, want)
	}
	// Overall round(90/4) = 23 -> A2.
	if resp.CEFR.Overall != "A2" {
		t.Errorf("overall CEFR = %q, want A2", resp.CEFR.Overall)
	}
}

func TestCertificateIDFor(t *testing.T) {
	tests := []struct {
		userID string
		number int
		want   string
	}{
		{"abcdef1234567890", 3, "CERT-ABCDEF12-3"},
		{"3f2504e0-4f89-11d3-9a0c-0305e82c3301", 1, "CERT-3F2504E0-1"},
		{"short", 2, "CERT-SHORT-2"},
	}
	for _, tt := range tests {
		if got := CertificateIDFor(tt.userID, tt.number); got != tt.want {
			t.Errorf("CertificateIDFor(%q, %d) = %q, want %q", tt.userID, tt.number, got, tt.want)
		}
	}
}
