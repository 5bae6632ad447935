package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/repomanager"
)

// SavedWordService manages a user's private vocabulary list.
type SavedWordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSavedWordService(db *sql.DB, m repomanager.RepositoryManager) *SavedWordService {
	return &SavedWordService{db: db, repomanager: m}
}

func (s *SavedWordService) List(ctx context.Context, userID int64, search string) ([]*models.SavedWord, error) {
	return s.repomanager.SavedWords(s.db).List(ctx, userID, strings.TrimSpace(search))
}

// Create adds a word. Word and meaning are required; empty notes are
// stored as null.
func (s *SavedWordService) Create(ctx context.Context, userID int64, word, meaning string, notes *string) (*models.SavedWord, error) {
	word, meaning = strings.TrimSpace(word), strings.TrimSpace(meaning)
	if word == "" || meaning == "" {
		return nil, fmt.Errorf("%w: word and meaning are required", common.ErrorValidation)
	}
	notes = nullIfEmpty(notes)

	repo := s.repomanager.SavedWords(s.db)

	_, err := repo.GetByWord(ctx, userID, word)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error searching word: %w", err)
	}

	return repo.Create(ctx, &models.SavedWord{UserID: userID, Word: word, Meaning: meaning, Notes: notes})
}

// Update applies patch to the user's word. Empty word or meaning keep the
// stored value; notes follow models.OptionalString semantics.
func (s *SavedWordService) Update(ctx context.Context, id, userID int64, patch models.SavedWordPatch) (*models.SavedWord, error) {
	repo := s.repomanager.SavedWords(s.db)

	current, err := repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	next := *current
	if w := strings.TrimSpace(patch.Word); w != "" {
		next.Word = w
	}
	if m := strings.TrimSpace(patch.Meaning); m != "" {
		next.Meaning = m
	}
	next.Notes = nullIfEmpty(patch.Notes.Apply(current.Notes))

	if next.Word != current.Word {
		other, err := repo.GetByWord(ctx, userID, next.Word)
		switch {
		case err == nil && other.ID != id:
			return nil, common.ErrorAlreadyExists
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return nil, fmt.Errorf("error searching word: %w", err)
		}
	}

	return repo.Update(ctx, &next)
}

func nullIfEmpty(s *string) *string {
	if s != nil && *s == "" {
		return nil
	}
	return s
}

func (s *SavedWordService) Delete(ctx context.Context, id, userID int64) error {
	return s.repomanager.SavedWords(s.db).Delete(ctx, id, userID)
}
