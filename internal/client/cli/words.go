package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vocabday/internal/client/models"
)

// clearMarker typed at the notes prompt removes existing notes.
const clearMarker = "-"

// Words lists saved words, optionally filtered by search.
func (a *App) Words(ctx context.Context, search string) error {
	words, err := a.study.ListWords(ctx, search)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Fprintln(a.out, "No saved words")
		return nil
	}
	for _, w := range words {
		printWord(a, &w)
	}
	return nil
}

// AddWord prompts for a new saved word. Empty notes are sent as null.
func (a *App) AddWord(ctx context.Context) error {
	word, err := getSimpleText(a.reader, "Word", a.out)
	if err != nil {
		return err
	}
	meaning, err := getSimpleText(a.reader, "Meaning", a.out)
	if err != nil {
		return err
	}
	notes, err := getSimpleText(a.reader, "Notes (optional)", a.out)
	if err != nil {
		return err
	}

	var np *string
	if notes != "" {
		np = &notes
	}

	w, err := a.study.AddWord(ctx, word, meaning, np)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved word #%d\n", w.ID)
	return nil
}

// EditWord prompts for each field; empty input keeps the current value and
// "-" clears the notes.
func (a *App) EditWord(ctx context.Context, id int64) error {
	var patch models.WordPatch

	word, err := getSimpleText(a.reader, "New word (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if word != "" {
		patch.Word = &word
	}

	meaning, err := getSimpleText(a.reader, "New meaning (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if meaning != "" {
		patch.Meaning = &meaning
	}

	notes, err := getSimpleText(a.reader, "New notes (empty to keep, - to clear)", a.out)
	if err != nil {
		return err
	}
	switch notes {
	case "":
	case clearMarker:
		patch.ClearNotes = true
	default:
		patch.Notes = &notes
	}

	w, err := a.study.UpdateWord(ctx, id, patch)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Updated:")
	printWord(a, w)
	return nil
}

func (a *App) DeleteWord(ctx context.Context, id int64) error {
	if err := a.study.DeleteWord(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted word #%d\n", id)
	return nil
}

func printWord(a *App, w *models.SavedWord) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  #%-5d %s: %s", w.ID, w.Word, w.Meaning)
	if w.Notes != nil && *w.Notes != "" {
		fmt.Fprintf(&sb, " [%s]", *w.Notes)
	}
	fmt.Fprintln(a.out, sb.String())
}
