// Package scoring grades a submission against a quiz. It has no I/O.
package scoring

import "github.com/dmitrijs2005/vocabday/internal/server/models"

// ItemResult is the outcome of one question.
type ItemResult struct {
	Word          string `json:"word"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// Result is the graded submission. Percentage is 0 for an empty quiz.
type Result struct {
	Score          int          `json:"score"`
	TotalQuestions int          `json:"totalQuestions"`
	Percentage     float64      `json:"percentage"`
	Results        []ItemResult `json:"results"`
}

// Normalize aligns answers with n items: missing answers become "" and
// extra answers are dropped.
func Normalize(answers []string, n int) []string {
	out := make([]string, n)
	copy(out, answers)
	return out
}

// Score compares answers[i] with items[i].CorrectAnswer position by position.
func Score(items []models.QuizItem, answers []string) Result {
	answers = Normalize(answers, len(items))

	res := Result{
		TotalQuestions: len(items),
		Results:        make([]ItemResult, 0, len(items)),
	}
	for i, it := range items {
		ok := answers[i] == it.CorrectAnswer
		if ok {
			res.Score++
		}
		res.Results = append(res.Results, ItemResult{
			Word:          it.Word,
			UserAnswer:    answers[i],
			CorrectAnswer: it.CorrectAnswer,
			IsCorrect:     ok,
		})
	}
	if res.TotalQuestions > 0 {
		res.Percentage = 100 * float64(res.Score) / float64(res.TotalQuestions)
	}
	return res
}
