// Package httpapi exposes the VocabDay services over JSON/HTTP using fiber.
//
// Every failure is answered with a {"error": "..."} body; the mapping from
// service errors to status codes lives in errors.go.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/logging"
	"github.com/dmitrijs2005/vocabday/internal/server/config"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
	"github.com/dmitrijs2005/vocabday/internal/server/scoring"
	"github.com/dmitrijs2005/vocabday/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	SignUp(ctx context.Context, email, password, name string) (*services.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*services.AuthResult, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
}

type TestService interface {
	Available(ctx context.Context, userID int64) (*services.Availability, error)
	Get(ctx context.Context, userID, testID int64) (*services.QuizView, error)
	Submit(ctx context.Context, userID, testID int64, answers []string) (*scoring.Result, error)
}

type SavedWordService interface {
	List(ctx context.Context, userID int64, search string) ([]*models.SavedWord, error)
	Create(ctx context.Context, userID int64, word, meaning string, notes *string) (*models.SavedWord, error)
	Update(ctx context.Context, id, userID int64, patch models.SavedWordPatch) (*models.SavedWord, error)
	Delete(ctx context.Context, id, userID int64) error
}

type GenerationService interface {
	GenerateToday(ctx context.Context) (*services.GenerationResult, error)
}

// Pinger reports database liveness for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	app        *fiber.App
	address    string
	logger     logging.Logger
	db         Pinger
	users      UserService
	tests      TestService
	words      SavedWordService
	generation GenerationService
	jwtSecret  []byte
	cronSecret string
	rateLimit  int
}

func NewServer(c *config.Config, l logging.Logger, db Pinger, us UserService, ts TestService,
	ws SavedWordService, gs GenerationService) *Server {

	s := &Server{
		address:    c.EndpointAddrHTTP,
		logger:     l.With("module", "http_server"),
		db:         db,
		users:      us,
		tests:      ts,
		words:      ws,
		generation: gs,
		jwtSecret:  []byte(c.SecretKey),
		cronSecret: c.CronSecret,
		rateLimit:  c.AuthRateLimit,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "vocabday",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	s.routes()

	return s
}

func (s *Server) routes() {
	s.app.Use(s.requestLogger)
	s.app.Use(recover.New())

	s.app.Get("/health", s.health)

	if s.rateLimit > 0 {
		s.app.Use("/auth", limiter.New(limiter.Config{
			Max:        s.rateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests",
				})
			},
		}))
	}
	s.app.Post("/auth/signup", s.signUp)
	s.app.Post("/auth/signin", s.signIn)
	s.app.Get("/auth/me", s.authRequired, s.me)

	s.app.Get("/tests/available", s.authRequired, s.availableTests)
	s.app.Get("/tests/:id", s.authRequired, s.getTest)
	s.app.Post("/tests/:id/submit", s.authRequired, s.submitTest)

	s.app.Get("/saved-words", s.authRequired, s.listWords)
	s.app.Post("/saved-words", s.authRequired, s.createWord)
	s.app.Patch("/saved-words/:id", s.authRequired, s.updateWord)
	s.app.Delete("/saved-words/:id", s.authRequired, s.deleteWord)

	s.app.Get("/cron/generate-test", s.cronRequired, s.generateTest)
	s.app.Post("/cron/generate-test", s.cronRequired, s.generateTest)
}

// Run serves HTTP until ctx is cancelled, then shuts the server down.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}

func (s *Server) health(c *fiber.Ctx) error {
	if err := s.db.PingContext(c.UserContext()); err != nil {
		s.log(c).Error(c.UserContext(), "database ping failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Database unavailable"})
	}
	return c.SendString("OK")
}
