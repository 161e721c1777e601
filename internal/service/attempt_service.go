package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lingocert/lingocert/internal/dto"
	"github.com/lingocert/lingocert/internal/model"
	"github.com/lingocert/lingocert/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrAttemptNotFound     = errors.New("test attempt not found")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrNotOwner            = errors.New("attempt belongs to another user")
)

// AttemptService serves the read side of the platform: attempt history for
// the dashboard and certificate data for rendering.
type AttemptService interface {
	GetUserAttempts(userID string) ([]dto.AttemptSummaryDTO, error)
	GetAttemptDetail(userID, attemptID string) (*dto.AttemptDetailDTO, error)
	GetCertificate(userID, certificateID string) (*dto.CertificateDTO, error)
}

type attemptService struct {
	attemptRepo repository.TestAttemptRepository
	certRepo    repository.CertificateRepository
	userRepo    repository.UserRepository
	cefr        CEFRService
}

func NewAttemptService(
	attemptRepo repository.TestAttemptRepository,
	certRepo repository.CertificateRepository,
	userRepo repository.UserRepository,
	cefr CEFRService,
) AttemptService {
	return &attemptService{
		attemptRepo: attemptRepo,
		certRepo:    certRepo,
		userRepo:    userRepo,
		cefr:        cefr,
	}
}

func (s *attemptService) GetUserAttempts(userID string) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for i := range attempts {
		var summary dto.AttemptSummaryDTO
		if err := copier.Copy(&summary, &attempts[i]); err != nil {
			log.Error().Err(err).Str("attemptID", attempts[i].ID).Msg("Failed to map attempt summary")
			continue
		}
		summary.Scores = sectionScores(&attempts[i])
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *attemptService) GetAttemptDetail(userID, attemptID string) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to load attempt: %w", err)
	}
	if attempt.UserID != userID {
		return nil, ErrNotOwner
	}

	return &dto.AttemptDetailDTO{
		ID:            attempt.ID,
		UserID:        attempt.UserID,
		AttemptNumber: attempt.AttemptNumber,
		Scores:        sectionScores(attempt),
		OverallScore:  attempt.OverallScore,
		CEFR: dto.SectionLevels{
			Listening: attempt.ListeningCEFR,
			Reading:   attempt.ReadingCEFR,
			Writing:   attempt.WritingCEFR,
			Speaking:  attempt.SpeakingCEFR,
			Overall:   attempt.OverallCEFR,
		},
		IELTSBands: dto.SectionLevels{
			Listening: attempt.ListeningIELTSBand,
			Reading:   attempt.ReadingIELTSBand,
			Writing:   attempt.WritingIELTSBand,
			Speaking:  attempt.SpeakingIELTSBand,
			Overall:   attempt.OverallIELTSBand,
		},
		Status:      attempt.Status,
		Answers:     json.RawMessage(attempt.Answers),
		AudioURL:    attempt.AudioURL,
		SubmittedAt: attempt.SubmittedAt,
	}, nil
}

func (s *attemptService) GetCertificate(userID, certificateID string) (*dto.CertificateDTO, error) {
	cert, err := s.certRepo.FindByCertificateID(certificateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}
	if cert.UserID != userID {
		return nil, ErrNotOwner
	}

	attempt, err := s.attemptRepo.FindByID(cert.TestAttemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt for certificate %s: %w", certificateID, err)
	}

	holderName := ""
	if user, err := s.userRepo.FindByID(cert.UserID); err == nil {
		holderName = user.FullName
	}

	overall, _ := s.cefr.LevelByName(attempt.OverallCEFR)

	return &dto.CertificateDTO{
		CertificateID: cert.CertificateID,
		TestAttemptID: cert.TestAttemptID,
		HolderName:    holderName,
		AttemptNumber: attempt.AttemptNumber,
		Scores:        sectionScores(attempt),
		OverallScore:  attempt.OverallScore,
		CEFR: dto.SectionLevels{
			Listening: attempt.ListeningCEFR,
			Reading:   attempt.ReadingCEFR,
			Writing:   attempt.WritingCEFR,
			Speaking:  attempt.SpeakingCEFR,
			Overall:   attempt.OverallCEFR,
		},
		OverallLabel: overall.Label,
		OverallRange: overall.Range(),
		IssuedAt:     cert.IssuedAt,
	}, nil
}

func sectionScores(attempt *model.TestAttempt) dto.SectionScores {
	return dto.SectionScores{
		Listening: attempt.ListeningScore,
		Reading:   attempt.ReadingScore,
		Writing:   attempt.WritingScore,
		Speaking:  attempt.SpeakingScore,
	}
}
