package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSpeakingGraderSuccess(t *testing.T) {
	llm := &stubLLM{generate: func(prompt string) (string, error) {
		if !strings.Contains(prompt, "the student's recording transcription or notes: A balanced take on AI.") &&
			!strings.Contains(prompt, "A balanced take on AI.") {
			t.Errorf("prompt should embed the transcript, got: %s", prompt)
		}
		return `{
			"total_score": 84,
			"breakdown": {
				"content_relevance": 18,
				"structure_organization": 17,
				"depth_of_thought": 16,
				"fluency_coherence": 17,
				"language_use": 16
			},
			"feedback": "well argued"
		}`, nil
	}}
	grader := NewSpeakingGraderService(llm)

	if got := grader.GradeSection(context.Background(), "A balanced take on AI."); got != 84 {
		t.Errorf("GradeSection() = %d, want 84", got)
	}
}

func TestSpeakingGraderFencedResponse(t *testing.T) {
	llm := &stubLLM{generate: func(prompt string) (string, error) {
		return "```json\n{\"total_score\": 72.4, \"breakdown\": {}, \"feedback\": \"ok\"}\n```", nil
	}}
	grader := NewSpeakingGraderService(llm)

	if got := grader.GradeSection(context.Background(), "notes"); got != 72 {
		t.Errorf("GradeSection() = %d, want 72 (rounded)", got)
	}
}

func TestSpeakingGraderCallFailureReturnsDefault(t *testing.T) {
	llm := &stubLLM{generate: func(prompt string) (string, error) {
		return "", errors.New("upstream unavailable")
	}}
	grader := NewSpeakingGraderService(llm)

	if got := grader.GradeSection(context.Background(), "notes"); got != 50 {
		t.Errorf("GradeSection() on failure = %d, want 50", got)
	}
}

func TestSpeakingGraderUnparseableReturnsDefault(t *testing.T) {
	llm := &stubLLM{generate: func(prompt string) (string, error) {
		return "Sounds like a B2 speaker to me.", nil
	}}
	grader := NewSpeakingGraderService(llm)

	if got := grader.GradeSection(context.Background(), "notes"); got != 50 {
		t.Errorf("GradeSection() on unparseable response = %d, want 50", got)
	}
}

func TestSpeakingGraderClampsOutOfRangeTotals(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"above range", `{"total_score": 140, "breakdown": {}, "feedback": ""}`, 100},
		{"below range", `{"total_score": -5, "breakdown": {}, "feedback": ""}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &stubLLM{generate: func(prompt string) (string, error) { return tt.raw, nil }}
			grader := NewSpeakingGraderService(llm)
			if got := grader.GradeSection(context.Background(), "notes"); got != tt.want {
				t.Errorf("GradeSection() = %d, want %d", got, tt.want)
			}
		})
	}
}
