package dto

// SubmittedAnswers is the full answers snapshot of one exam sitting, keyed by
// question id for the objective and writing sections. Speaking carries the
// transcript or notes of the recorded response as a single string.
type SubmittedAnswers struct {
	Listening map[string]string `json:"listening"`
	Reading   map[string]string `json:"reading"`
	Writing   map[string]string `json:"writing"`
	Speaking  string            `json:"speaking"`
}

// SubmitTestRequest is the grade-test request body.
type SubmitTestRequest struct {
	Answers  SubmittedAnswers `json:"answers" binding:"required"`
	AudioURL string           `json:"audioUrl"`
}

type SectionScores struct {
	Listening int `json:"listening"`
	Reading   int `json:"reading"`
	Writing   int `json:"writing"`
	Speaking  int `json:"speaking"`
}

type SectionLevels struct {
	Listening string `json:"listening"`
	Reading   string `json:"reading"`
	Writing   string `json:"writing"`
	Speaking  string `json:"speaking"`
	Overall   string `json:"overall"`
}

// GradeResultResponse is the success summary returned after grading.
type GradeResultResponse struct {
	Success       bool          `json:"success"`
	TestAttemptID string        `json:"testAttemptId"`
	CertificateID string        `json:"certificateId"`
	Scores        SectionScores `json:"scores"`
	CEFR          SectionLevels `json:"cefr"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
