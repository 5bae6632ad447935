package httpapi

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

const msgInternal = "Internal server error"

// resource carries the messages and conflict status that differ between
// endpoints. Signup and saved-word creation answer duplicates with 400,
// everything else with 409.
type resource struct {
	notFound       string
	conflict       string
	conflictStatus int
}

var (
	resourceNone = resource{notFound: "Not found", conflict: "Already exists", conflictStatus: fiber.StatusConflict}
	resourceUser = resource{notFound: "User not found", conflict: "User already exists", conflictStatus: fiber.StatusBadRequest}
	resourceTest = resource{notFound: "Test not found", conflict: "Test already completed", conflictStatus: fiber.StatusConflict}
	resourceWord = resource{notFound: "Word not found", conflict: "Word already saved", conflictStatus: fiber.StatusBadRequest}
	resourceEdit = resource{notFound: "Word not found", conflict: "Word already saved", conflictStatus: fiber.StatusConflict}
)

// fail writes the error response for err. Unexpected errors are logged and
// hidden behind a generic message.
func (s *Server) fail(c *fiber.Ctx, err error, r resource) error {
	var prereq *services.PrerequisiteError

	switch {
	case errors.As(err, &prereq):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":        "You must complete previous tests first",
			"requiredTest": fiber.Map{"id": prereq.TestID, "date": formatDate(prereq.Date)},
		})
	case errors.Is(err, common.ErrorValidation):
		return errorJSON(c, fiber.StatusBadRequest, validationMessage(err))
	case errors.Is(err, common.ErrTokenExpired):
		return errorJSON(c, fiber.StatusUnauthorized, "Token expired")
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		return errorJSON(c, fiber.StatusForbidden, "Forbidden")
	case errors.Is(err, common.ErrorNotFound):
		return errorJSON(c, fiber.StatusNotFound, r.notFound)
	case errors.Is(err, common.ErrorAlreadyExists):
		return errorJSON(c, r.conflictStatus, r.conflict)
	case errors.Is(err, common.ErrGenerationFailed):
		s.log(c).Error(c.UserContext(), "quiz generation failed", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to generate daily test")
	}

	s.log(c).Error(c.UserContext(), "request failed", "error", err)
	return errorJSON(c, fiber.StatusInternalServerError, msgInternal)
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// validationMessage strips the sentinel prefix from wrapped validation
// errors: "validation error: word is required" -> "Word is required".
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), common.ErrorValidation.Error())
	msg = strings.TrimLeft(msg, ": ")
	if msg == "" {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// errorHandler renders errors returned by fiber itself (unknown routes,
// wrong methods, recovered panics) in the common body shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := msgInternal

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	return errorJSON(c, code, msg)
}
