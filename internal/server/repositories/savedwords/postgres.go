// Package savedwords provides the PostgreSQL-backed saved-word store.
package savedwords

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/dbx"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
)

const wordConstraint = "saved_words_user_word_key"

const selectCols = `SELECT id, user_id, word, meaning, notes, created_at FROM saved_words`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the user's words oldest first. A non-empty search keeps rows
// whose word or meaning contains it, case-insensitively.
func (r *PostgresRepository) List(ctx context.Context, userID int64, search string) ([]*models.SavedWord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if search == "" {
		rows, err = r.db.QueryContext(ctx, selectCols+`
		 WHERE user_id = $1
		 ORDER BY created_at, id`, userID)
	} else {
		rows, err = r.db.QueryContext(ctx, selectCols+`
		 WHERE user_id = $1 AND (word ILIKE $2 OR meaning ILIKE $2)
		 ORDER BY created_at, id`, userID, "%"+EscapeLike(search)+"%")
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.SavedWord, 0)
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID int64) (*models.SavedWord, error) {
	return scanWord(r.db.QueryRowContext(ctx, selectCols+`
		 WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *PostgresRepository) GetByWord(ctx context.Context, userID int64, word string) (*models.SavedWord, error) {
	return scanWord(r.db.QueryRowContext(ctx, selectCols+`
		 WHERE user_id = $1 AND word = $2`, userID, word))
}

func (r *PostgresRepository) Create(ctx context.Context, w *models.SavedWord) (*models.SavedWord, error) {
	query :=
		`INSERT INTO saved_words (user_id, word, meaning, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, w.UserID, w.Word, w.Meaning, w.Notes).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, wordConstraint) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return w, nil
}

// Update overwrites word, meaning and notes of the row matching both ID and
// UserID.
func (r *PostgresRepository) Update(ctx context.Context, w *models.SavedWord) (*models.SavedWord, error) {
	query :=
		`UPDATE saved_words SET word = $3, meaning = $4, notes = $5
		 WHERE id = $1 AND user_id = $2
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, w.ID, w.UserID, w.Word, w.Meaning, w.Notes).Scan(&w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if dbx.IsUniqueViolation(err, wordConstraint) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return w, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_words WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// EscapeLike quotes the LIKE metacharacters %, _ and the backslash escape.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWord(row scanner) (*models.SavedWord, error) {
	var (
		w     models.SavedWord
		notes sql.NullString
	)
	if err := row.Scan(&w.ID, &w.UserID, &w.Word, &w.Meaning, &notes, &w.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if notes.Valid {
		w.Notes = &notes.String
	}
	return &w, nil
}
