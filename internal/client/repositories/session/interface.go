// Package session persists the CLI's signed-in session in SQLite. At most
// one session is stored.
package session

import (
	"context"

	"github.com/dmitrijs2005/vocabday/internal/client/models"
)

type Repository interface {
	// Get returns the stored session or (nil, nil) when there is none.
	Get(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}
