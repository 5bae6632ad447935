// Package services contains application services for the VocabDay client.
// This file defines the authentication service: signup, signin, logout and
// the persisted session.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/client/client"
	"github.com/dmitrijs2005/vocabday/internal/client/models"
	"github.com/dmitrijs2005/vocabday/internal/client/repositories/session"
)

// ErrNotSignedIn is returned when a command needs a session and none is stored.
var ErrNotSignedIn = errors.New("not signed in")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignUp / SignIn: authenticate against the server and persist the session.
//   - Current: the stored session, nil if there is none. An expired session is
//     removed and reported as client.ErrSessionExpired.
//   - Logout: forget the stored session.
type AuthService interface {
	SignUp(ctx context.Context, email string, password []byte, name string) (*models.Session, error)
	SignIn(ctx context.Context, email string, password []byte) (*models.Session, error)
	Current(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client
// and a local SQL database for the session.
type authService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db, now: time.Now}
}

func (a *authService) getSessionRepo() session.Repository {
	return session.NewSQLiteRepository(a.db)
}

func (a *authService) SignUp(ctx context.Context, email string, password []byte, name string) (*models.Session, error) {
	s, err := a.client.SignUp(ctx, email, string(password), name)
	if err != nil {
		return nil, err
	}
	return s, a.getSessionRepo().Save(ctx, s)
}

func (a *authService) SignIn(ctx context.Context, email string, password []byte) (*models.Session, error) {
	s, err := a.client.SignIn(ctx, email, string(password))
	if err != nil {
		return nil, err
	}
	return s, a.getSessionRepo().Save(ctx, s)
}

func (a *authService) Current(ctx context.Context) (*models.Session, error) {
	repo := a.getSessionRepo()

	s, err := repo.Get(ctx)
	if err != nil || s == nil {
		return nil, err
	}
	if !s.Valid(a.now()) {
		if err := repo.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, client.ErrSessionExpired
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.getSessionRepo().Clear(ctx)
}
