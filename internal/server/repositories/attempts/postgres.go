// Package attempts provides the PostgreSQL-backed attempt ledger. Rows are
// only ever inserted; a user holds at most one completed attempt per quiz.
package attempts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/dbx"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
)

const completedConstraint = "user_test_attempts_completed_key"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create records an attempt. A second completed attempt for the same user
// and quiz yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, a *models.Attempt) (*models.Attempt, error) {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}

	query :=
		`INSERT INTO user_test_attempts (user_id, test_id, score, answers, completed)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, attempted_at`

	err = r.db.QueryRowContext(ctx, query, a.UserID, a.TestID, a.Score, string(answers), a.Completed).
		Scan(&a.ID, &a.AttemptedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, completedConstraint) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) ListCompletedByUser(ctx context.Context, userID int64) ([]*models.Attempt, error) {
	query :=
		`SELECT id, user_id, test_id, score, answers, completed, attempted_at FROM user_test_attempts
		 WHERE user_id = $1 AND completed
		 ORDER BY attempted_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetCompleted(ctx context.Context, userID, testID int64) (*models.Attempt, error) {
	query :=
		`SELECT id, user_id, test_id, score, answers, completed, attempted_at FROM user_test_attempts
		 WHERE user_id = $1 AND test_id = $2 AND completed`

	return scanAttempt(r.db.QueryRowContext(ctx, query, userID, testID))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row scanner) (*models.Attempt, error) {
	var (
		a       models.Attempt
		answers string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.TestID, &a.Score, &answers, &a.Completed, &a.AttemptedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
		return nil, fmt.Errorf("decode attempt %d answers: %w", a.ID, err)
	}
	return &a, nil
}
