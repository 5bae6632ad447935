package httpapi

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/logging"
	"github.com/dmitrijs2005/vocabday/internal/server/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localLogger = "logger"
	localClaims = "claims"
)

// requestLogger tags the request with an id and logs its start and end.
// Handler errors are rendered here so the logged status is the final one.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(fiber.HeaderXRequestID, id)

	log := s.logger.With("request_id", id)
	c.Locals(localLogger, log)

	ctx := c.UserContext()
	log.Debug(ctx, "request started", "method", c.Method(), "path", c.Path(), "remote", c.IP())

	if err := c.Next(); err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	log.Info(ctx, "request completed",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// log returns the request-scoped logger.
func (s *Server) log(c *fiber.Ctx) logging.Logger {
	if l, ok := c.Locals(localLogger).(logging.Logger); ok {
		return l
	}
	return s.logger
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	token, ok := strings.CutPrefix(c.Get(common.AuthorizationHeaderName), common.BearerPrefix)
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// authRequired validates the bearer JWT and stores its claims in Locals.
func (s *Server) authRequired(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return s.fail(c, common.ErrorUnauthorized, resourceNone)
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return s.fail(c, err, resourceNone)
	}

	c.Locals(localClaims, claims)
	return c.Next()
}

// userID reads the authenticated user id placed by authRequired.
func userID(c *fiber.Ctx) (int64, error) {
	claims, ok := c.Locals(localClaims).(*auth.Claims)
	if !ok {
		return 0, errors.New("no claims in request context")
	}
	return claims.UserID, nil
}

// cronRequired guards the generation trigger with the shared cron secret.
// An empty configured secret rejects everything.
func (s *Server) cronRequired(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok || s.cronSecret == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(s.cronSecret)) != 1 {
		return s.fail(c, common.ErrorUnauthorized, resourceNone)
	}
	return c.Next()
}
