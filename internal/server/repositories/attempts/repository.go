package attempts

import (
	"context"

	"github.com/dmitrijs2005/vocabday/internal/server/models"
)

// Repository is the append-only ledger of quiz attempts.
type Repository interface {
	Create(ctx context.Context, attempt *models.Attempt) (*models.Attempt, error)
	ListCompletedByUser(ctx context.Context, userID int64) ([]*models.Attempt, error)
	GetCompleted(ctx context.Context, userID, testID int64) (*models.Attempt, error)
}
