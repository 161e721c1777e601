package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
)

// defaultSpeakingScore is the fixed neutral fallback when the grading call
// fails. Unlike the essay grader there is no per-question weight to halve: the
// speaking section is one holistic 0-100 judgment.
const defaultSpeakingScore = 50

// SpeakingGraderService scores the speaking section from a transcript (or the
// speaker's notes) in a single model call. The audio reference is stored with
// the attempt but never interpreted here.
type SpeakingGraderService interface {
	GradeSection(ctx context.Context, transcript string) int
}

type speakingGraderService struct {
	llm LLMService
}

func NewSpeakingGraderService(llm LLMService) SpeakingGraderService {
	return &speakingGraderService{llm: llm}
}

type speakingGrade struct {
	TotalScore float64 `json:"total_score"`
	Breakdown  struct {
		ContentRelevance      float64 `json:"content_relevance"`
		StructureOrganization float64 `json:"structure_organization"`
		DepthOfThought        float64 `json:"depth_of_thought"`
		FluencyCoherence      float64 `json:"fluency_coherence"`
		LanguageUse           float64 `json:"language_use"`
	} `json:"breakdown"`
	Feedback string `json:"feedback"`
}

func (s *speakingGraderService) GradeSection(ctx context.Context, transcript string) int {
	raw, err := s.llm.Generate(ctx, buildSpeakingPrompt(transcript))
	if err != nil {
		log.Warn().Err(err).Msg("Speaking grading call failed, using default score")
		return defaultSpeakingScore
	}

	var grade speakingGrade
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &grade); err != nil {
		log.Warn().Err(err).Str("raw", raw).Msg("Speaking grading response unparseable, using default score")
		return defaultSpeakingScore
	}

	log.Info().Interface("breakdown", grade.Breakdown).Msg("Speaking score breakdown")

	score := int(math.Round(grade.TotalScore))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func buildSpeakingPrompt(transcript string) string {
	var sb strings.Builder
	sb.WriteString(`You are an expert IELTS speaking examiner. Grade this 1-minute speaking response on the topic: "Should artificial intelligence be allowed to make decisions that affect human lives?"

`)
	sb.WriteString(fmt.Sprintf("The student's recording transcription or notes: %s\n\n", transcript))
	sb.WriteString(`Grade based on these 5 criteria (20 marks each, total 100 marks):
1. Content relevance (0-20): Addresses the question directly; stays on topic
2. Structure & organization (0-20): Clear intro, main point(s), and conclusion
3. Depth of thought (0-20): Shows awareness of complexity, balance, or ethical reasoning
4. Fluency & coherence (0-20): Smooth flow, logical connections
5. Language use (0-20): Vocabulary, grammar, and confidence

Expected answer traits:
- Balanced view (AI should assist but not have full control)
- Concrete examples (healthcare, criminal justice)
- Clear reasoning about accountability and ethics
- Well-structured with introduction and conclusion

Respond with ONLY a JSON object in this exact format:
{
  "total_score": <number between 0 and 100>,
  "breakdown": {
    "content_relevance": <0-20>,
    "structure_organization": <0-20>,
    "depth_of_thought": <0-20>,
    "fluency_coherence": <0-20>,
    "language_use": <0-20>
  },
  "feedback": "<brief feedback>"
}`)
	return sb.String()
}
