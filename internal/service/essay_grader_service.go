package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/lingocert/lingocert/internal/model"
	"github.com/rs/zerolog/log"
)

// EssayGraderService scores the writing section. Each answered question is
// graded by one model call against a fixed rubric; answers are independent, so
// the calls run concurrently.
type EssayGraderService interface {
	GradeSection(ctx context.Context, answers map[string]string, questions []model.Question) int
}

type essayGraderService struct {
	llm LLMService
}

func NewEssayGraderService(llm LLMService) EssayGraderService {
	return &essayGraderService{llm: llm}
}

type essayGrade struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

type essayResult struct {
	questionID string
	earned     float64
}

// GradeSection returns round(earned/total*100). A failed or unparseable model
// call awards half the question's points: upstream failures are expected to be
// transient and an attempted essay must not be zeroed. Unanswered questions
// earn nothing.
func (s *essayGraderService) GradeSection(ctx context.Context, answers map[string]string, questions []model.Question) int {
	var totalPoints float64
	for _, q := range questions {
		totalPoints += q.Points
	}
	if totalPoints <= 0 {
		return 0
	}

	results := make(chan essayResult, len(questions))
	calls := 0

	for _, q := range questions {
		userAnswer, ok := answers[q.ID]
		if !ok || userAnswer == "" {
			continue
		}
		calls++

		go func(q model.Question, userAnswer string) {
			results <- essayResult{questionID: q.ID, earned: s.gradeQuestion(ctx, q, userAnswer)}
		}(q, userAnswer)
	}

	var earnedPoints float64
	for i := 0; i < calls; i++ {
		r := <-results
		earnedPoints += r.earned
	}

	return int(math.Round(earnedPoints / totalPoints * 100))
}

func (s *essayGraderService) gradeQuestion(ctx context.Context, q model.Question, userAnswer string) float64 {
	prompt := buildEssayPrompt(q, userAnswer)

	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Str("questionID", q.ID).Msg("Essay grading call failed, awarding half credit")
		return q.Points * 0.5
	}

	var grade essayGrade
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &grade); err != nil {
		log.Warn().Err(err).Str("questionID", q.ID).Str("raw", raw).Msg("Essay grading response unparseable, awarding half credit")
		return q.Points * 0.5
	}

	score := grade.Score
	if score < 0 {
		score = 0
	}
	if score > q.Points {
		score = q.Points
	}
	log.Info().Str("questionID", q.ID).Float64("score", score).Msg("Writing question scored")
	return score
}

func buildEssayPrompt(q model.Question, userAnswer string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert IELTS writing examiner. ")
	sb.WriteString(fmt.Sprintf("Grade the following essay response on a scale of 0-%g points.\n\n", q.Points))
	sb.WriteString(fmt.Sprintf("Question: %s\n\n", q.QuestionText))
	sb.WriteString(fmt.Sprintf("Student's Answer: %s\n\n", userAnswer))
	sb.WriteString(`Grading Criteria:
- Task Response (how well they address the question)
- Coherence and Cohesion (logical flow and organization)
- Lexical Resource (vocabulary range and accuracy)
- Grammatical Range and Accuracy

Expected traits of a high-scoring answer:
- Clear position and well-developed arguments
- Logical structure with appropriate paragraphing
- Wide range of vocabulary used accurately
- Complex sentence structures with minimal errors
- Minimum length requirements met

`)
	sb.WriteString(fmt.Sprintf(`Respond with ONLY a JSON object in this exact format:
{"score": <number between 0 and %g>, "feedback": "<brief feedback>"}`, q.Points))
	return sb.String()
}
