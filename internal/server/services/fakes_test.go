package services

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/dbx"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/attempts"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/quizzes"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/savedwords"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func day(s string) time.Time {
	d, err := time.Parse(common.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

// --- in-memory repositories ---

type memUsers struct {
	mu     sync.Mutex
	byID   map[int64]*models.User
	nextID int64

	createErr error
	getErr    error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int64]*models.User{}} }

func (r *memUsers) add(u *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = u
	return u
}

func (r *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	return r.add(u), nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type memQuizzes struct {
	mu     sync.Mutex
	items  []*models.Quiz
	nextID int64
	gets   int

	createErr  error
	getDateErr error
}

func (r *memQuizzes) add(date string, items ...models.QuizItem) *models.Quiz {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	q := &models.Quiz{ID: r.nextID, Date: day(date), Items: items, CreatedAt: time.Now()}
	r.items = append(r.items, q)
	return q
}

func (r *memQuizzes) Create(ctx context.Context, q *models.Quiz) (*models.Quiz, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.items {
		if x.Date.Equal(q.Date) {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.nextID++
	q.ID = r.nextID
	r.items = append(r.items, q)
	return q, nil
}

func (r *memQuizzes) GetByID(ctx context.Context, id int64) (*models.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	for _, q := range r.items {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memQuizzes) GetByDate(ctx context.Context, date time.Time) (*models.Quiz, error) {
	if r.getDateErr != nil {
		return nil, r.getDateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.items {
		if q.Date.Equal(models.DateOf(date)) {
			return q, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memQuizzes) ListFrom(ctx context.Context, from time.Time) ([]*models.Quiz, error) {
	return r.filter(func(q *models.Quiz) bool { return !q.Date.Before(from) }), nil
}

func (r *memQuizzes) ListBetween(ctx context.Context, from, before time.Time) ([]*models.Quiz, error) {
	return r.filter(func(q *models.Quiz) bool { return !q.Date.Before(from) && q.Date.Before(before) }), nil
}

func (r *memQuizzes) filter(keep func(*models.Quiz) bool) []*models.Quiz {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Quiz
	for _, q := range r.items {
		if keep(q) {
			out = append(out, q)
		}
	}
	slices.SortFunc(out, func(a, b *models.Quiz) int { return a.Date.Compare(b.Date) })
	return out
}

type memAttempts struct {
	mu     sync.Mutex
	items  []*models.Attempt
	nextID int64
}

func (r *memAttempts) Create(ctx context.Context, a *models.Attempt) (*models.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.items {
		if x.Completed && a.Completed && x.UserID == a.UserID && x.TestID == a.TestID {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.nextID++
	a.ID = r.nextID
	a.AttemptedAt = time.Now()
	r.items = append(r.items, a)
	return a, nil
}

func (r *memAttempts) ListCompletedByUser(ctx context.Context, userID int64) ([]*models.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Attempt
	for _, a := range r.items {
		if a.UserID == userID && a.Completed {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAttempts) GetCompleted(ctx context.Context, userID, testID int64) (*models.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.UserID == userID && a.TestID == testID && a.Completed {
			return a, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memSavedWords struct {
	mu     sync.Mutex
	items  []*models.SavedWord
	nextID int64
}

func (r *memSavedWords) List(ctx context.Context, userID int64, search string) ([]*models.SavedWord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.SavedWord, 0)
	s := strings.ToLower(search)
	for _, w := range r.items {
		if w.UserID != userID {
			continue
		}
		if s != "" && !strings.Contains(strings.ToLower(w.Word), s) && !strings.Contains(strings.ToLower(w.Meaning), s) {
			continue
		}
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSavedWords) Get(ctx context.Context, id, userID int64) (*models.SavedWord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.items {
		if w.ID == id && w.UserID == userID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memSavedWords) GetByWord(ctx context.Context, userID int64, word string) (*models.SavedWord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.items {
		if w.UserID == userID && w.Word == word {
			cp := *w
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memSavedWords) Create(ctx context.Context, w *models.SavedWord) (*models.SavedWord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	w.ID = r.nextID
	w.CreatedAt = time.Now()
	cp := *w
	r.items = append(r.items, &cp)
	return w, nil
}

func (r *memSavedWords) Update(ctx context.Context, w *models.SavedWord) (*models.SavedWord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID == w.ID && x.UserID == w.UserID {
			cp := *w
			r.items[i] = &cp
			return w, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memSavedWords) Delete(ctx context.Context, id, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID == id && x.UserID == userID {
			r.items = slices.Delete(r.items, i, i+1)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeRepoManager struct {
	users      *memUsers
	quizzes    *memQuizzes
	attempts   *memAttempts
	savedWords *memSavedWords
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:      newMemUsers(),
		quizzes:    &memQuizzes{},
		attempts:   &memAttempts{},
		savedWords: &memSavedWords{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.users }
func (m *fakeRepoManager) Quizzes(db dbx.DBTX) quizzes.Repository       { return m.quizzes }
func (m *fakeRepoManager) Attempts(db dbx.DBTX) attempts.Repository     { return m.attempts }
func (m *fakeRepoManager) SavedWords(db dbx.DBTX) savedwords.Repository { return m.savedWords }

// --- cache / archive fakes ---

type fakeCache struct {
	mu     sync.Mutex
	data   map[int64]*models.Quiz
	getErr error
	setErr error
	sets   int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[int64]*models.Quiz{}} }

func (c *fakeCache) Get(ctx context.Context, id int64) (*models.Quiz, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	if q, ok := c.data[id]; ok {
		return q, nil
	}
	return nil, common.ErrorNotFound
}

func (c *fakeCache) Set(ctx context.Context, q *models.Quiz) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[q.ID] = q
	return nil
}

type fakeArchiver struct {
	archived []*models.Quiz
	err      error
}

func (a *fakeArchiver) Archive(ctx context.Context, q *models.Quiz) error {
	a.archived = append(a.archived, q)
	return a.err
}
