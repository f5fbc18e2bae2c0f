package studyquiz

import "time"

// Question is a single multiple choice question. Choices always holds
// exactly 4 entries and CorrectChoice is the 0-based index of the right
// one after shuffling.
type Question struct {
	Prompt        string   `json:"question"`
	Choices       []string `json:"choices"`
	CorrectChoice int      `json:"answer_index"`
}

// Quiz is a finalized, gradeable set of questions. Once assembled its
// length never changes and no generation bookkeeping survives in it.
type Quiz struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// Unanswered is the sentinel recorded for a submitted answer that was
// missing or unparsable. It never matches a correct choice index.
const Unanswered = -1

// GradingResult pairs a quiz with one scored submission.
type GradingResult struct {
	Quiz         *Quiz `json:"quiz"`
	UserAnswers  []int `json:"user_answers"`
	CorrectCount int   `json:"correct_count"`
	Total        int   `json:"total"`
	ScorePercent int   `json:"score_percent"`
}

// GenerationRequest carries the raw material for one quiz. Filename and
// FileData are set together when a document was uploaded; PastedText may
// be combined with extracted document text.
type GenerationRequest struct {
	PastedText   string `json:"pasted_text,omitempty"`
	Filename     string `json:"filename,omitempty"`
	FileData     []byte `json:"-"`
	NumQuestions int    `json:"num_questions"`
}

const (
	// MinQuestions and MaxQuestions bound the requested quiz size.
	MinQuestions = 1
	MaxQuestions = 10
)

// ClampQuestionCount forces n into the [MinQuestions, MaxQuestions]
// contract. Every generation path goes through this.
func ClampQuestionCount(n int) int {
	if n < MinQuestions {
		return MinQuestions
	}
	if n > MaxQuestions {
		return MaxQuestions
	}
	return n
}
