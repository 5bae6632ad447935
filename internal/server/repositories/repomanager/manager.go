package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vocabday/internal/dbx"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/attempts"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/quizzes"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/savedwords"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Quizzes(db dbx.DBTX) quizzes.Repository
	Attempts(db dbx.DBTX) attempts.Repository
	SavedWords(db dbx.DBTX) savedwords.Repository
}
