// Package services contains server-side business logic: accounts, the daily
// quiz workflow (availability, access guard, submission), saved words and
// daily generation. Services hold a *sql.DB plus a RepositoryManager and
// bind repositories per call, inside a transaction where needed.
package services

import (
	"context"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
)

// QuizGenerator produces the items of one daily quiz.
type QuizGenerator interface {
	Generate(ctx context.Context) ([]models.QuizItem, error)
}

// QuizCache holds immutable quizzes by ID. Get reports a miss as
// common.ErrorNotFound.
type QuizCache interface {
	Get(ctx context.Context, id int64) (*models.Quiz, error)
	Set(ctx context.Context, quiz *models.Quiz) error
}

// Archiver copies a freshly generated quiz to long-term storage.
type Archiver interface {
	Archive(ctx context.Context, quiz *models.Quiz) error
}

// NopQuizCache always misses.
type NopQuizCache struct{}

func (NopQuizCache) Get(context.Context, int64) (*models.Quiz, error) { return nil, common.ErrorNotFound }
func (NopQuizCache) Set(context.Context, *models.Quiz) error          { return nil }

// NopArchiver discards quizzes.
type NopArchiver struct{}

func (NopArchiver) Archive(context.Context, *models.Quiz) error { return nil }
