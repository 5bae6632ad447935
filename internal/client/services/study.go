package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vocabday/internal/client/client"
	"github.com/dmitrijs2005/vocabday/internal/client/models"
)

// StudyService runs the authenticated commands: quizzes and saved words.
// Every call loads the current session first; a 401 from the server drops
// the stored session.
type StudyService struct {
	auth   AuthService
	client client.Client
}

func NewStudyService(auth AuthService, c client.Client) *StudyService {
	return &StudyService{auth: auth, client: c}
}

func withSession[T any](ctx context.Context, s *StudyService, call func(*models.Session) (T, error)) (T, error) {
	var zero T

	sess, err := s.auth.Current(ctx)
	if err != nil {
		return zero, err
	}
	if sess == nil {
		return zero, ErrNotSignedIn
	}

	res, err := call(sess)
	if errors.Is(err, client.ErrUnauthorized) {
		if lerr := s.auth.Logout(ctx); lerr != nil {
			return zero, errors.Join(err, lerr)
		}
	}
	return res, err
}

func (s *StudyService) Me(ctx context.Context) (*models.User, error) {
	return withSession(ctx, s, func(sess *models.Session) (*models.User, error) {
		return s.client.Me(ctx, sess)
	})
}

func (s *StudyService) Available(ctx context.Context) (*models.Availability, error) {
	return withSession(ctx, s, func(sess *models.Session) (*models.Availability, error) {
		return s.client.Available(ctx, sess)
	})
}

func (s *StudyService) GetTest(ctx context.Context, id int64) (*models.TestView, error) {
	return withSession(ctx, s, func(sess *models.Session) (*models.TestView, error) {
		return s.client.GetTest(ctx, sess, id)
	})
}

func (s *StudyService) Submit(ctx context.Context, id int64, answers []string) (*models.SubmitResult, error) {
	return withSession(ctx, s, func(sess *models.Session) (*models.SubmitResult, error) {
		return s.client.Submit(ctx, sess, id, answers)
	})
}

func (s *StudyService) ListWords(ctx context.Context, search string) ([]models.SavedWord, error) {
	return withSession(ctx, s, func(sess *models.Session) ([]models.SavedWord, error) {
		return s.client.ListWords(ctx, sess, search)
	})
}

func (s *StudyService) AddWord(ctx context.Context, word, meaning string, notes *string) (*models.SavedWord, error) {
	return withSession(ctx, s, func(sess *models.Session) (*models.SavedWord, error) {
		return s.client.AddWord(ctx, sess, word, meaning, notes)
	})
}

func (s *StudyService) UpdateWord(ctx context.Context, id int64, patch models.WordPatch) (*models.SavedWord, error) {
	return withSession(ctx, s, func(sess *models.Session) (*models.SavedWord, error) {
		return s.client.UpdateWord(ctx, sess, id, patch)
	})
}

func (s *StudyService) DeleteWord(ctx context.Context, id int64) error {
	_, err := withSession(ctx, s, func(sess *models.Session) (struct{}, error) {
		return struct{}{}, s.client.DeleteWord(ctx, sess, id)
	})
	return err
}
