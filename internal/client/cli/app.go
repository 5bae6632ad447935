package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/vocabday/internal/client/client"
	"github.com/dmitrijs2005/vocabday/internal/client/config"
	"github.com/dmitrijs2005/vocabday/internal/client/models"
	"github.com/dmitrijs2005/vocabday/internal/client/services"
)

// studyService is the authenticated command surface used by the CLI.
type studyService interface {
	Me(ctx context.Context) (*models.User, error)
	Available(ctx context.Context) (*models.Availability, error)
	GetTest(ctx context.Context, id int64) (*models.TestView, error)
	Submit(ctx context.Context, id int64, answers []string) (*models.SubmitResult, error)
	ListWords(ctx context.Context, search string) ([]models.SavedWord, error)
	AddWord(ctx context.Context, word, meaning string, notes *string) (*models.SavedWord, error)
	UpdateWord(ctx context.Context, id int64, patch models.WordPatch) (*models.SavedWord, error)
	DeleteWord(ctx context.Context, id int64) error
}

type App struct {
	config *config.Config
	db     *sql.DB
	auth   services.AuthService
	study  studyService
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)

	as := services.NewAuthService(apiClient, db)
	ss := services.NewStudyService(as, apiClient)

	return &App{config: c, db: db, auth: as, study: ss, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

// Root greets the user and runs the REPL until exit or EOF.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to VocabDay (type 'help' for commands)")

	if s, err := a.auth.Current(ctx); err != nil {
		a.report(err)
	} else if s != nil {
		fmt.Fprintf(a.out, "Signed in as %s <%s>\n", s.Name, s.Email)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) currentSession(ctx context.Context) *models.Session {
	s, err := a.auth.Current(ctx)
	if err != nil {
		return nil
	}
	return s
}

func (a *App) isSignedIn(ctx context.Context) bool {
	return a.currentSession(ctx) != nil
}

func (a *App) getStatus(ctx context.Context) string {
	if s := a.currentSession(ctx); s != nil {
		return fmt.Sprintf("(%s)", s.Name)
	}
	return ""
}

// report prints a user-facing description of err.
func (a *App) report(err error) {
	fmt.Fprintln(a.out, describeError(err))
}

func describeError(err error) string {
	var apiErr *client.APIError

	switch {
	case errors.Is(err, services.ErrNotSignedIn):
		return "Please sign in first (signin or signup)"
	case errors.Is(err, client.ErrSessionExpired):
		return "Your session has expired, please sign in again"
	case errors.Is(err, client.ErrUnauthorized):
		return "Your session is no longer valid, please sign in again"
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later"
	case errors.As(err, &apiErr):
		if apiErr.RequiredTest != nil {
			return fmt.Sprintf("%s: test #%d (%s)", apiErr.Message, apiErr.RequiredTest.ID, apiErr.RequiredTest.Date)
		}
		return apiErr.Error()
	}
	return "Error: " + err.Error()
}
