package attempts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+user_test_attempts\s*\(user_id,\s*test_id,\s*score,\s*answers,\s*completed\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*attempted_at\s*$`

var attemptCols = []string{"id", "user_id", "test_id", "score", "answers", "completed", "attempted_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(insertQ).
		WithArgs(int64(1), int64(2), 1, `["to recede",""]`, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "attempted_at"}).AddRow(int64(9), now))

	a, err := repo.Create(context.Background(), &models.Attempt{
		UserID: 1, TestID: 2, Score: 1, Answers: []string{"to recede", ""}, Completed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SecondCompletedAttempt(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "user_test_attempts_completed_key"})

	_, err := repo.Create(context.Background(), &models.Attempt{UserID: 1, TestID: 2, Completed: true})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_OtherConstraintIsDBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "something_else"})

	_, err := repo.Create(context.Background(), &models.Attempt{UserID: 1, TestID: 2, Completed: true})
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestListCompletedByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)FROM\s+user_test_attempts\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+completed\s+ORDER\s+BY\s+attempted_at,\s*id\s*$`
	now := time.Now()
	mock.ExpectQuery(q).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(attemptCols).
			AddRow(int64(1), int64(1), int64(10), 7, `["a"]`, true, now).
			AddRow(int64(2), int64(1), int64(11), 10, `[]`, true, now))

	got, err := repo.ListCompletedByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(10), got[0].TestID)
	assert.Equal(t, []string{"a"}, got[0].Answers)
	assert.Equal(t, 10, got[1].Score)
}

func TestListCompletedByUser_Error(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+user_test_attempts`).WillReturnError(errors.New("db down"))

	_, err := repo.ListCompletedByUser(context.Background(), 1)
	assert.Error(t, err)
}

func TestGetCompleted(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+user_id\s*=\s*\$1\s+AND\s+test_id\s*=\s*\$2\s+AND\s+completed\s*$`
	mock.ExpectQuery(q).WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows(attemptCols).AddRow(int64(3), int64(1), int64(10), 8, `[]`, true, time.Now()))
	mock.ExpectQuery(q).WithArgs(int64(1), int64(11)).WillReturnError(sql.ErrNoRows)

	a, err := repo.GetCompleted(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 8, a.Score)

	_, err = repo.GetCompleted(context.Background(), 1, 11)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
