package quizzes

import (
	"context"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/server/models"
)

// Repository is the catalog of daily quizzes. Dates are UTC calendar days.
type Repository interface {
	Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error)
	GetByID(ctx context.Context, id int64) (*models.Quiz, error)
	GetByDate(ctx context.Context, date time.Time) (*models.Quiz, error)
	// ListFrom returns quizzes dated on or after from, oldest first.
	ListFrom(ctx context.Context, from time.Time) ([]*models.Quiz, error)
	// ListBetween returns quizzes with from <= date < before, oldest first.
	ListBetween(ctx context.Context, from, before time.Time) ([]*models.Quiz, error)
}
