package client

import (
	"context"

	"github.com/dmitrijs2005/vocabday/internal/client/models"
)

// Client is the VocabDay API as seen by the CLI. Authenticated calls take
// the session explicitly.
type Client interface {
	SignUp(ctx context.Context, email, password, name string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	Me(ctx context.Context, s *models.Session) (*models.User, error)

	Available(ctx context.Context, s *models.Session) (*models.Availability, error)
	GetTest(ctx context.Context, s *models.Session, id int64) (*models.TestView, error)
	Submit(ctx context.Context, s *models.Session, id int64, answers []string) (*models.SubmitResult, error)

	ListWords(ctx context.Context, s *models.Session, search string) ([]models.SavedWord, error)
	AddWord(ctx context.Context, s *models.Session, word, meaning string, notes *string) (*models.SavedWord, error)
	UpdateWord(ctx context.Context, s *models.Session, id int64, patch models.WordPatch) (*models.SavedWord, error)
	DeleteWord(ctx context.Context, s *models.Session, id int64) error
}
