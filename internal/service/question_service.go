package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lingocert/lingocert/internal/dto"
	"github.com/lingocert/lingocert/internal/model"
	"github.com/lingocert/lingocert/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrQuestionNotFound = errors.New("question not found")

// QuestionService is the content-management surface of the question bank, and
// serves the sanitized exam paper to test takers.
type QuestionService interface {
	Create(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	Update(id string, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error)
	Delete(id string) error
	GetAll() ([]dto.QuestionResponseDTO, error)
	GetExamPaper() (*dto.ExamPaperDTO, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

func (s *questionService) Create(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	question := model.Question{
		Section:       req.Section,
		Type:          req.Type,
		QuestionText:  req.QuestionText,
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
	}
	if len(req.Options) > 0 {
		opts, err := json.Marshal(req.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}
		question.Options = opts
	}

	if err := s.questionRepo.Create(&question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	log.Info().Str("questionID", question.ID).Str("section", question.Section).Msg("Question created")
	return questionResponse(&question)
}

func (s *questionService) Update(id string, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to load question: %w", err)
	}

	if req.QuestionText != nil {
		question.QuestionText = *req.QuestionText
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Points != nil {
		question.Points = *req.Points
	}
	if req.Options != nil {
		opts, err := json.Marshal(req.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}
		question.Options = opts
	}

	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return questionResponse(question)
}

func (s *questionService) Delete(id string) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to load question: %w", err)
	}
	return s.questionRepo.Delete(id)
}

func (s *questionService) GetAll() ([]dto.QuestionResponseDTO, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	dtos := make([]dto.QuestionResponseDTO, 0, len(questions))
	for i := range questions {
		resp, err := questionResponse(&questions[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *resp)
	}
	return dtos, nil
}

// GetExamPaper returns the question bank grouped by section with correct
// answers stripped.
func (s *questionService) GetExamPaper() (*dto.ExamPaperDTO, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	paper := dto.ExamPaperDTO{}
	for i := range questions {
		q := &questions[i]
		examQ := dto.ExamQuestionDTO{
			ID:           q.ID,
			Section:      q.Section,
			Type:         q.Type,
			QuestionText: q.QuestionText,
			Points:       q.Points,
		}
		if len(q.Options) > 0 {
			if err := json.Unmarshal(q.Options, &examQ.Options); err != nil {
				return nil, fmt.Errorf("failed to decode options for question %s: %w", q.ID, err)
			}
		}
		switch q.Section {
		case model.SectionListening:
			paper.Listening = append(paper.Listening, examQ)
		case model.SectionReading:
			paper.Reading = append(paper.Reading, examQ)
		case model.SectionWriting:
			paper.Writing = append(paper.Writing, examQ)
		case model.SectionSpeaking:
			paper.Speaking = append(paper.Speaking, examQ)
		}
	}
	return &paper, nil
}

func questionResponse(question *model.Question) (*dto.QuestionResponseDTO, error) {
	resp := dto.QuestionResponseDTO{
		ID:            question.ID,
		Section:       question.Section,
		Type:          question.Type,
		QuestionText:  question.QuestionText,
		CorrectAnswer: question.CorrectAnswer,
		Points:        question.Points,
		CreatedAt:     question.CreatedAt,
		UpdatedAt:     question.UpdatedAt,
	}
	if len(question.Options) > 0 {
		if err := json.Unmarshal(question.Options, &resp.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options: %w", err)
		}
	}
	return &resp, nil
}
