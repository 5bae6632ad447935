package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/common"
)

const (
	// QuizSize is the number of items in a generated daily quiz.
	QuizSize = 10
	// OptionsPerItem is the number of choices offered for each word.
	OptionsPerItem = 4
)

// QuizItem is one multiple-choice question. CorrectAnswer equals Meaning
// for generated quizzes and is one of Options.
type QuizItem struct {
	Word          string   `json:"word"`
	Meaning       string   `json:"meaning"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Quiz is the daily test for one calendar date. Date is always midnight UTC.
type Quiz struct {
	ID        int64      `json:"id"`
	Date      time.Time  `json:"date"`
	Items     []QuizItem `json:"words"`
	CreatedAt time.Time  `json:"createdAt"`
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a quiz date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(common.DateLayout)
}

// ValidateItems checks a full daily quiz: exactly QuizSize items, each
// with a word, a meaning, OptionsPerItem distinct options containing the
// correct answer, and no word repeated.
func ValidateItems(items []QuizItem) error {
	if len(items) != QuizSize {
		return fmt.Errorf("%w: expected %d items, got %d", common.ErrorValidation, QuizSize, len(items))
	}

	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		word := strings.ToLower(strings.TrimSpace(it.Word))
		if word == "" || strings.TrimSpace(it.Meaning) == "" {
			return fmt.Errorf("%w: item %d has empty word or meaning", common.ErrorValidation, i)
		}
		if _, dup := seen[word]; dup {
			return fmt.Errorf("%w: duplicate word %q", common.ErrorValidation, it.Word)
		}
		seen[word] = struct{}{}

		if len(it.Options) != OptionsPerItem {
			return fmt.Errorf("%w: item %q has %d options", common.ErrorValidation, it.Word, len(it.Options))
		}
		if !slices.Contains(it.Options, it.CorrectAnswer) {
			return fmt.Errorf("%w: item %q options miss the correct answer", common.ErrorValidation, it.Word)
		}
		uniq := slices.Clone(it.Options)
		slices.Sort(uniq)
		if len(slices.Compact(uniq)) != OptionsPerItem {
			return fmt.Errorf("%w: item %q has repeated options", common.ErrorValidation, it.Word)
		}
	}
	return nil
}
