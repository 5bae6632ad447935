package savedwords

import (
	"context"

	"github.com/dmitrijs2005/vocabday/internal/server/models"
)

// Repository stores per-user vocabulary notes. Every lookup is scoped by
// owner; a row owned by someone else is reported as not found.
type Repository interface {
	List(ctx context.Context, userID int64, search string) ([]*models.SavedWord, error)
	Get(ctx context.Context, id, userID int64) (*models.SavedWord, error)
	GetByWord(ctx context.Context, userID int64, word string) (*models.SavedWord, error)
	Create(ctx context.Context, w *models.SavedWord) (*models.SavedWord, error)
	Update(ctx context.Context, w *models.SavedWord) (*models.SavedWord, error)
	Delete(ctx context.Context, id, userID int64) error
}
