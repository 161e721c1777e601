package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lingocert/lingocert/internal/dto"
	"github.com/lingocert/lingocert/internal/model"
	"github.com/lingocert/lingocert/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// attemptNumberRetries bounds the retry loop on the (user_id, attempt_number)
// uniqueness constraint. Only concurrent double-submission by the same user
// ever conflicts, so one retry is normally enough.
const attemptNumberRetries = 3

// GradingService is the grading pipeline entry point: it scores all four
// sections, classifies proficiency, persists the attempt and issues the
// certificate. The only component of the pipeline with side effects.
type GradingService interface {
	GradeSubmission(ctx context.Context, userID string, req dto.SubmitTestRequest) (*dto.GradeResultResponse, error)
}

type gradingService struct {
	questionRepo repository.QuestionRepository
	objective    ObjectiveGraderService
	essay        EssayGraderService
	speaking     SpeakingGraderService
	cefr         CEFRService
	db           *gorm.DB
}

func NewGradingService(
	questionRepo repository.QuestionRepository,
	objective ObjectiveGraderService,
	essay EssayGraderService,
	speaking SpeakingGraderService,
	cefr CEFRService,
	db *gorm.DB,
) GradingService {
	return &gradingService{
		questionRepo: questionRepo,
		objective:    objective,
		essay:        essay,
		speaking:     speaking,
		cefr:         cefr,
		db:           db,
	}
}

// GradeSubmission runs the whole pipeline. Grading failures in the AI sections
// degrade to fallback scores inside the graders; anything failing before the
// persist transaction aborts the submission with no partial state, and both
// the attempt and certificate writes are required for success.
func (s *gradingService) GradeSubmission(ctx context.Context, userID string, req dto.SubmitTestRequest) (*dto.GradeResultResponse, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}

	bySection := make(map[string][]model.Question)
	for _, q := range questions {
		bySection[q.Section] = append(bySection[q.Section], q)
	}

	// The four sections are independent computations over disjoint inputs, so
	// they run concurrently. The AI graders never return errors; they fall
	// back per section instead of failing the attempt.
	var listeningScore, readingScore, writingScore, speakingScore int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listeningScore = s.objective.GradeSection(req.Answers.Listening, bySection[model.SectionListening])
		return nil
	})
	g.Go(func() error {
		readingScore = s.objective.GradeSection(req.Answers.Reading, bySection[model.SectionReading])
		return nil
	})
	g.Go(func() error {
		writingScore = s.essay.GradeSection(gctx, req.Answers.Writing, bySection[model.SectionWriting])
		return nil
	})
	g.Go(func() error {
		speakingScore = s.speaking.GradeSection(gctx, req.Answers.Speaking)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overallScore := int(math.Round(float64(listeningScore+readingScore+writingScore+speakingScore) / 4.0))

	listeningCEFR := s.cefr.Classify(listeningScore)
	readingCEFR := s.cefr.Classify(readingScore)
	writingCEFR := s.cefr.Classify(writingScore)
	speakingCEFR := s.cefr.Classify(speakingScore)
	// The overall band is classified from the mean score, not combined from
	// the four section bands.
	overallCEFR := s.cefr.Classify(overallScore)

	answersSnapshot, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot answers: %w", err)
	}

	attempt := model.TestAttempt{
		UserID:             userID,
		ListeningScore:     listeningScore,
		ReadingScore:       readingScore,
		WritingScore:       writingScore,
		SpeakingScore:      speakingScore,
		OverallScore:       overallScore,
		ListeningCEFR:      listeningCEFR.Level,
		ReadingCEFR:        readingCEFR.Level,
		WritingCEFR:        writingCEFR.Level,
		SpeakingCEFR:       speakingCEFR.Level,
		OverallCEFR:        overallCEFR.Level,
		ListeningIELTSBand: listeningCEFR.IELTSBand,
		ReadingIELTSBand:   readingCEFR.IELTSBand,
		WritingIELTSBand:   writingCEFR.IELTSBand,
		SpeakingIELTSBand:  speakingCEFR.IELTSBand,
		OverallIELTSBand:   overallCEFR.IELTSBand,
		Status:             model.AttemptStatusCompleted,
		Answers:            answersSnapshot,
		AudioURL:           req.AudioURL,
	}

	certificateID, err := s.persistAttempt(&attempt)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("userID", userID).
		Str("attemptID", attempt.ID).
		Int("attemptNumber", attempt.AttemptNumber).
		Int("overall", overallScore).
		Str("overallCEFR", overallCEFR.Level).
		Msg("Test attempt graded")

	return &dto.GradeResultResponse{
		Success:       true,
		TestAttemptID: attempt.ID,
		CertificateID: certificateID,
		Scores: dto.SectionScores{
			Listening: listeningScore,
			Reading:   readingScore,
			Writing:   writingScore,
			Speaking:  speakingScore,
		},
		CEFR: dto.SectionLevels{
			Listening: listeningCEFR.Level,
			Reading:   readingCEFR.Level,
			Writing:   writingCEFR.Level,
			Speaking:  speakingCEFR.Level,
			Overall:   overallCEFR.Level,
		},
	}, nil
}

// persistAttempt writes the attempt and its certificate in one transaction.
// The attempt number is max existing + 1; on a duplicate-key conflict the
// whole transaction is retried with a freshly computed number.
func (s *gradingService) persistAttempt(attempt *model.TestAttempt) (string, error) {
	var certificateID string

	for i := 0; i < attemptNumberRetries; i++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var maxNumber int
			if err := tx.Model(&model.TestAttempt{}).
				Where("user_id = ?", attempt.UserID).
				Select("COALESCE(MAX(attempt_number), 0)").
				Scan(&maxNumber).Error; err != nil {
				return fmt.Errorf("failed to compute attempt number: %w", err)
			}

			attempt.ID = ""
			attempt.AttemptNumber = maxNumber + 1
			if err := tx.Create(attempt).Error; err != nil {
				return fmt.Errorf("failed to create test attempt: %w", err)
			}

			certificateID = CertificateIDFor(attempt.UserID, attempt.AttemptNumber)
			cert := model.Certificate{
				UserID:        attempt.UserID,
				TestAttemptID: attempt.ID,
				CertificateID: certificateID,
			}
			if err := tx.Create(&cert).Error; err != nil {
				return fmt.Errorf("failed to create certificate: %w", err)
			}
			return nil
		})
		if err == nil {
			return certificateID, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn().Str("userID", attempt.UserID).Int("attemptNumber", attempt.AttemptNumber).Msg("Attempt number conflict, retrying")
			continue
		}
		return "", err
	}

	return "", fmt.Errorf("failed to allocate attempt number for user %s after %d retries", attempt.UserID, attemptNumberRetries)
}

// CertificateIDFor derives the deterministic certificate identifier from the
// first 8 characters of the user id and the attempt number.
func CertificateIDFor(userID string, attemptNumber int) string {
	prefix := userID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("CERT-%s-%d", strings.ToUpper(prefix), attemptNumber)
}
