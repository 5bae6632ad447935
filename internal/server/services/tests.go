package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/dbx"
	"github.com/dmitrijs2005/vocabday/internal/logging"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vocabday/internal/server/scoring"
)

// PrerequisiteError reports the earliest quiz the user still has to
// complete before the requested one unlocks.
type PrerequisiteError struct {
	TestID int64
	Date   time.Time
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("complete test %d (%s) first", e.TestID, models.FormatDate(e.Date))
}

func (e *PrerequisiteError) Unwrap() error { return common.ErrorForbidden }

// ProgressEntry is one row of the user's progress list.
type ProgressEntry struct {
	ID        int64
	Date      time.Time
	Completed bool
	Score     int
}

// Availability is the user's view of the quiz sequence.
type Availability struct {
	NextTest         *models.Quiz
	Progress         []ProgressEntry
	TotalTests       int
	CompletedCount   int
	RegistrationDate time.Time
}

// QuizView is a single quiz as served to its user. PreviousScore is nil
// unless the quiz is already completed.
type QuizView struct {
	Test             *models.Quiz
	AlreadyCompleted bool
	PreviousScore    *int
}

// TestService implements the daily quiz workflow: availability, the
// sequential access guard and submission.
type TestService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       QuizCache
	log         logging.Logger
}

func NewTestService(db *sql.DB, m repomanager.RepositoryManager, cache QuizCache, log logging.Logger) *TestService {
	if cache == nil {
		cache = NopQuizCache{}
	}
	return &TestService{db: db, repomanager: m, cache: cache, log: log.With("module", "tests")}
}

// Available lists quizzes dated on or after the user's registration date,
// oldest first, and picks the first one not yet completed.
func (s *TestService) Available(ctx context.Context, userID int64) (*Availability, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	reg := user.RegistrationDate()

	quizzes, err := s.repomanager.Quizzes(s.db).ListFrom(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("error listing tests: %w", err)
	}

	scores, err := s.completedScores(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	res := &Availability{
		Progress:         make([]ProgressEntry, 0, len(quizzes)),
		TotalTests:       len(quizzes),
		RegistrationDate: reg,
	}
	for _, q := range quizzes {
		score, done := scores[q.ID]
		if done {
			res.CompletedCount++
		} else if res.NextTest == nil {
			res.NextTest = q
		}
		res.Progress = append(res.Progress, ProgressEntry{ID: q.ID, Date: q.Date, Completed: done, Score: score})
	}

	return res, nil
}

// Get serves one quiz after checking it is within the user's range and all
// earlier quizzes in that range are completed.
func (s *TestService) Get(ctx context.Context, userID, testID int64) (*QuizView, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.loadQuiz(ctx, testID)
	if err != nil {
		return nil, err
	}

	if err := s.guard(ctx, s.db, user, quiz); err != nil {
		return nil, err
	}

	view := &QuizView{Test: quiz}
	attempt, err := s.repomanager.Attempts(s.db).GetCompleted(ctx, userID, testID)
	switch {
	case err == nil:
		view.AlreadyCompleted = true
		view.PreviousScore = &attempt.Score
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error searching attempt: %w", err)
	}

	return view, nil
}

// Submit grades answers against the quiz and records the completed
// attempt. A quiz can be completed once; a second submission yields
// common.ErrorAlreadyExists.
func (s *TestService) Submit(ctx context.Context, userID, testID int64, answers []string) (*scoring.Result, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.loadQuiz(ctx, testID)
	if err != nil {
		return nil, err
	}

	result := scoring.Score(quiz.Items, answers)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.guard(ctx, tx, user, quiz); err != nil {
			return err
		}

		repo := s.repomanager.Attempts(tx)
		_, err := repo.GetCompleted(ctx, userID, testID)
		switch {
		case err == nil:
			return common.ErrorAlreadyExists
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("error searching attempt: %w", err)
		}

		_, err = repo.Create(ctx, &models.Attempt{
			UserID:    userID,
			TestID:    testID,
			Score:     result.Score,
			Answers:   scoring.Normalize(answers, len(quiz.Items)),
			Completed: true,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "test submitted", "user_id", userID, "test_id", testID, "score", result.Score)
	return &result, nil
}

// guard hides quizzes dated before registration and requires a completed
// attempt for every earlier quiz in the user's range.
// user loads the token's owner. A token for a deleted account is no longer
// valid.
func (s *TestService) user(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorUnauthorized
	}
	return user, err
}

func (s *TestService) guard(ctx context.Context, db dbx.DBTX, user *models.User, quiz *models.Quiz) error {
	reg := user.RegistrationDate()
	if quiz.Date.Before(reg) {
		return common.ErrorNotFound
	}

	earlier, err := s.repomanager.Quizzes(db).ListBetween(ctx, reg, quiz.Date)
	if err != nil {
		return fmt.Errorf("error listing tests: %w", err)
	}
	if len(earlier) == 0 {
		return nil
	}

	scores, err := s.completedScores(ctx, db, user.ID)
	if err != nil {
		return err
	}
	for _, q := range earlier {
		if _, ok := scores[q.ID]; !ok {
			return &PrerequisiteError{TestID: q.ID, Date: q.Date}
		}
	}
	return nil
}

func (s *TestService) completedScores(ctx context.Context, db dbx.DBTX, userID int64) (map[int64]int, error) {
	attempts, err := s.repomanager.Attempts(db).ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing attempts: %w", err)
	}
	scores := make(map[int64]int, len(attempts))
	for _, a := range attempts {
		scores[a.TestID] = a.Score
	}
	return scores, nil
}

// loadQuiz reads through the cache. Cache failures are logged and fall
// back to the catalog.
func (s *TestService) loadQuiz(ctx context.Context, id int64) (*models.Quiz, error) {
	q, err := s.cache.Get(ctx, id)
	if err == nil {
		return q, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.log.Warn(ctx, "quiz cache read failed", "test_id", id, "error", err)
	}

	q, err = s.repomanager.Quizzes(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, q); err != nil {
		s.log.Warn(ctx, "quiz cache write failed", "test_id", id, "error", err)
	}
	return q, nil
}
