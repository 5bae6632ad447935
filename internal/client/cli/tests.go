package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vocabday/internal/client/models"
)

// Tests prints the progress list and the next test to take.
func (a *App) Tests(ctx context.Context) error {
	av, err := a.study.Available(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s, completed %d of %d tests\n", av.RegistrationDate, av.CompletedCount, av.TotalTests)

	for _, p := range av.Progress {
		status := "pending"
		if p.Completed {
			status = fmt.Sprintf("done, score %d", p.Score)
		}
		fmt.Fprintf(a.out, "  #%-5d %s  %s\n", p.ID, p.Date, status)
	}

	if av.NextTest == nil {
		fmt.Fprintln(a.out, "All caught up, come back tomorrow!")
		return nil
	}
	fmt.Fprintf(a.out, "Next: test #%d (%s), type 'take %d'\n", av.NextTest.ID, av.NextTest.Date, av.NextTest.ID)
	return nil
}

// Take runs the quiz interactively: one multiple-choice question per word,
// then submits the answers and prints the graded result.
func (a *App) Take(ctx context.Context, id int64) error {
	view, err := a.study.GetTest(ctx, id)
	if err != nil {
		return err
	}

	if view.AlreadyCompleted {
		if view.PreviousScore != nil {
			fmt.Fprintf(a.out, "Test #%d already completed, score %d/%d\n", id, *view.PreviousScore, len(view.Test.Words))
		} else {
			fmt.Fprintf(a.out, "Test #%d already completed\n", id)
		}
		return nil
	}

	fmt.Fprintf(a.out, "Test #%d (%s), %d words. Leave empty to skip a question.\n", view.Test.ID, view.Test.Date, len(view.Test.Words))

	answers := make([]string, len(view.Test.Words))
	for i, item := range view.Test.Words {
		fmt.Fprintf(a.out, "\n%d. What does %q mean?\n", i+1, item.Word)
		for j, opt := range item.Options {
			fmt.Fprintf(a.out, "   %d) %s\n", j+1, opt)
		}

		choice, err := GetChoice(a.reader, "Your answer", len(item.Options), a.out)
		if err != nil {
			return err
		}
		if choice > 0 {
			answers[i] = item.Options[choice-1]
		}
	}

	res, err := a.study.Submit(ctx, id, answers)
	if err != nil {
		return err
	}

	printResult(a, res)
	return nil
}

func printResult(a *App, res *models.SubmitResult) {
	fmt.Fprintf(a.out, "\nScore: %d/%d (%.0f%%)\n", res.Score, res.TotalQuestions, res.Percentage)
	for _, r := range res.Results {
		mark := "✔"
		if !r.IsCorrect {
			mark = "✘"
		}
		answer := r.UserAnswer
		if answer == "" {
			answer = "(no answer)"
		}
		fmt.Fprintf(a.out, "  %s %s: %s", mark, r.Word, answer)
		if !r.IsCorrect {
			fmt.Fprintf(a.out, " (correct: %s)", r.CorrectAnswer)
		}
		fmt.Fprintln(a.out)
	}
}
