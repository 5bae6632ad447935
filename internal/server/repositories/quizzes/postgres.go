// Package quizzes provides the PostgreSQL-backed daily quiz catalog. Quiz
// items are stored as a JSON-encoded column and decoded into typed items at
// this boundary.
package quizzes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/dbx"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
)

const dateConstraint = "daily_tests_test_date_key"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create validates and stores a quiz. A quiz already stored for the same
// date yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	if err := models.ValidateItems(quiz.Items); err != nil {
		return nil, err
	}

	words, err := json.Marshal(quiz.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}

	query :=
		`INSERT INTO daily_tests (test_date, words)
		 VALUES ($1, $2)
		 RETURNING id, created_at`

	quiz.Date = models.DateOf(quiz.Date)
	err = r.db.QueryRowContext(ctx, query, quiz.Date, string(words)).Scan(&quiz.ID, &quiz.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, dateConstraint) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return quiz, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Quiz, error) {
	query :=
		`SELECT id, test_date, words, created_at FROM daily_tests
		 WHERE id = $1`

	return scanQuiz(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByDate(ctx context.Context, date time.Time) (*models.Quiz, error) {
	query :=
		`SELECT id, test_date, words, created_at FROM daily_tests
		 WHERE test_date = $1`

	return scanQuiz(r.db.QueryRowContext(ctx, query, models.DateOf(date)))
}

func (r *PostgresRepository) ListFrom(ctx context.Context, from time.Time) ([]*models.Quiz, error) {
	query :=
		`SELECT id, test_date, words, created_at FROM daily_tests
		 WHERE test_date >= $1
		 ORDER BY test_date, id`

	return r.list(ctx, query, models.DateOf(from))
}

func (r *PostgresRepository) ListBetween(ctx context.Context, from, before time.Time) ([]*models.Quiz, error) {
	query :=
		`SELECT id, test_date, words, created_at FROM daily_tests
		 WHERE test_date >= $1 AND test_date < $2
		 ORDER BY test_date, id`

	return r.list(ctx, query, models.DateOf(from), models.DateOf(before))
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Quiz, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row scanner) (*models.Quiz, error) {
	var (
		q     models.Quiz
		words string
	)
	if err := row.Scan(&q.ID, &q.Date, &words, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal([]byte(words), &q.Items); err != nil {
		return nil, fmt.Errorf("decode quiz %d items: %w", q.ID, err)
	}
	q.Date = models.DateOf(q.Date)
	return &q, nil
}
