package service

import (
	"math"

	"github.com/lingocert/lingocert/internal/model"
)

// Text answers earn full credit above this similarity, half credit above the
// partial threshold, zero otherwise. Boundaries are exclusive: exactly 0.6 is
// half credit, exactly 0.4 is zero.
const (
	fullCreditSimilarity = 0.6
	halfCreditSimilarity = 0.4
)

// ObjectiveGraderService scores the listening and reading sections
// deterministically against the question bank.
type ObjectiveGraderService interface {
	GradeSection(answers map[string]string, questions []model.Question) int
}

type objectiveGraderService struct{}

func NewObjectiveGraderService() ObjectiveGraderService {
	return &objectiveGraderService{}
}

// GradeSection returns the weighted fraction of points earned, rescaled to
// [0,100]. Unanswered questions earn nothing; a section with no questions
// scores 0.
func (s *objectiveGraderService) GradeSection(answers map[string]string, questions []model.Question) int {
	var totalPoints, earnedPoints float64

	for _, q := range questions {
		totalPoints += q.Points
	}

	for _, q := range questions {
		userAnswer, ok := answers[q.ID]
		if !ok || userAnswer == "" {
			continue
		}

		switch q.Type {
		case model.QuestionTypeMultipleChoice:
			if userAnswer == q.CorrectAnswer {
				earnedPoints += q.Points
			}
		case model.QuestionTypeText:
			similarity := TextSimilarity(userAnswer, q.CorrectAnswer)
			if similarity > fullCreditSimilarity {
				earnedPoints += q.Points
			} else if similarity > halfCreditSimilarity {
				earnedPoints += q.Points * 0.5
			}
		}
	}

	if totalPoints <= 0 {
		return 0
	}
	return int(math.Round(earnedPoints / totalPoints * 100))
}
