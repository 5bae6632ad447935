// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vocabday/internal/dbx"
	"github.com/dmitrijs2005/vocabday/internal/server/migrations"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/attempts"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/quizzes"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/savedwords"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Quizzes returns the daily quiz catalog bound to the provided DBTX.
func (m *PostgresRepositoryManager) Quizzes(db dbx.DBTX) quizzes.Repository {
	return quizzes.NewPostgresRepository(db)
}

// Attempts returns the attempt ledger bound to the provided DBTX.
func (m *PostgresRepositoryManager) Attempts(db dbx.DBTX) attempts.Repository {
	return attempts.NewPostgresRepository(db)
}

// SavedWords returns a savedwords.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) SavedWords(db dbx.DBTX) savedwords.Repository {
	return savedwords.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}
