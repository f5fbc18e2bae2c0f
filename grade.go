package studyquiz

import (
	"math"
	"strconv"
	"strings"
)

// Grade scores one submission against a quiz. submitted maps question
// index to the raw form value for that question; missing or unparsable
// values are recorded as Unanswered and never match a correct index.
// Grading is pure: the same inputs always produce the same result.
func Grade(quiz *Quiz, submitted map[int]string) *GradingResult {
	answers := make([]int, len(quiz.Questions))
	correct := 0

	for i, q := range quiz.Questions {
		answers[i] = parseAnswer(submitted[i])
		if answers[i] == q.CorrectChoice {
			correct++
		}
	}

	total := len(quiz.Questions)
	divisor := total
	if divisor < 1 {
		divisor = 1
	}
	return &GradingResult{
		Quiz:         quiz,
		UserAnswers:  answers,
		CorrectCount: correct,
		Total:        total,
		ScorePercent: int(math.Round(100 * float64(correct) / float64(divisor))),
	}
}

func parseAnswer(raw string) int {
	idx, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Unanswered
	}
	return idx
}
