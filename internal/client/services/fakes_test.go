package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/client/client"
	"github.com/dmitrijs2005/vocabday/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newSession(token string, exp time.Time) *models.Session {
	return &models.Session{UserID: 7, Email: "ann@example.com", Name: "Ann", Token: token, ExpiresAt: exp}
}

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	session *models.Session
	err     error

	lastPassword string
	lastToken    string
	calls        int
}

func (f *fakeClient) SignUp(ctx context.Context, email, password, name string) (*models.Session, error) {
	f.lastPassword = password
	return f.session, f.err
}

func (f *fakeClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	f.lastPassword = password
	return f.session, f.err
}

func (f *fakeClient) record(s *models.Session) {
	f.calls++
	f.lastToken = s.Token
}

func (f *fakeClient) Me(ctx context.Context, s *models.Session) (*models.User, error) {
	f.record(s)
	return &models.User{ID: s.UserID}, f.err
}

func (f *fakeClient) Available(ctx context.Context, s *models.Session) (*models.Availability, error) {
	f.record(s)
	return &models.Availability{}, f.err
}

func (f *fakeClient) GetTest(ctx context.Context, s *models.Session, id int64) (*models.TestView, error) {
	f.record(s)
	return &models.TestView{Test: models.Test{ID: id}}, f.err
}

func (f *fakeClient) Submit(ctx context.Context, s *models.Session, id int64, answers []string) (*models.SubmitResult, error) {
	f.record(s)
	return &models.SubmitResult{TotalQuestions: len(answers)}, f.err
}

func (f *fakeClient) ListWords(ctx context.Context, s *models.Session, search string) ([]models.SavedWord, error) {
	f.record(s)
	return []models.SavedWord{{ID: 1, Word: search}}, f.err
}

func (f *fakeClient) AddWord(ctx context.Context, s *models.Session, word, meaning string, notes *string) (*models.SavedWord, error) {
	f.record(s)
	return &models.SavedWord{ID: 1, Word: word, Meaning: meaning, Notes: notes}, f.err
}

func (f *fakeClient) UpdateWord(ctx context.Context, s *models.Session, id int64, patch models.WordPatch) (*models.SavedWord, error) {
	f.record(s)
	return &models.SavedWord{ID: id}, f.err
}

func (f *fakeClient) DeleteWord(ctx context.Context, s *models.Session, id int64) error {
	f.record(s)
	return f.err
}
