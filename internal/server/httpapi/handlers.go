package httpapi

import (
	"strconv"

	"github.com/dmitrijs2005/vocabday/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

// pathID parses a positive integer path parameter.
func pathID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func badRequest(c *fiber.Ctx, msg string) error {
	return errorJSON(c, fiber.StatusBadRequest, msg)
}

func (s *Server) signUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	res, err := s.users.SignUp(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return s.fail(c, err, resourceUser)
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{User: toUserDTO(res.User), Token: res.Token})
}

func (s *Server) signIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	res, err := s.users.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.fail(c, err, resourceUser)
	}

	return c.JSON(authResponse{User: toUserDTO(res.User), Token: res.Token})
}

func (s *Server) me(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return s.fail(c, err, resourceNone)
	}

	user, err := s.users.Me(c.UserContext(), uid)
	if err != nil {
		return s.fail(c, err, resourceUser)
	}

	return c.JSON(fiber.Map{"user": toUserDTO(user)})
}

func (s *Server) availableTests(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return s.fail(c, err, resourceNone)
	}

	a, err := s.tests.Available(c.UserContext(), uid)
	if err != nil {
		return s.fail(c, err, resourceTest)
	}

	return c.JSON(toAvailabilityResponse(a))
}

func (s *Server) getTest(c *fiber.Ctx) error {
	testID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "Invalid test id")
	}
	uid, err := userID(c)
	if err != nil {
		return s.fail(c, err, resourceNone)
	}

	view, err := s.tests.Get(c.UserContext(), uid, testID)
	if err != nil {
		return s.fail(c, err, resourceTest)
	}

	return c.JSON(testResponse{
		Test:             toTestDTO(view.Test),
		AlreadyCompleted: view.AlreadyCompleted,
		PreviousScore:    view.PreviousScore,
	})
}

func (s *Server) submitTest(c *fiber.Ctx) error {
	testID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "Invalid test id")
	}
	uid, err := userID(c)
	if err != nil {
		return s.fail(c, err, resourceNone)
	}

	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	res, err := s.tests.Submit(c.UserContext(), uid, testID, req.Answers)
	if err != nil {
		return s.fail(c, err, resourceTest)
	}

	return c.JSON(res)
}

func (s *Server) listWords(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return s.fail(c, err, resourceNone)
	}

	words, err := s.words.List(c.UserContext(), uid, c.Query("search"))
	if err != nil {
		return s.fail(c, err, resourceWord)
	}
	if words == nil {
		words = []*models.SavedWord{}
	}

	return c.JSON(fiber.Map{"words": words})
}

func (s *Server) createWord(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return s.fail(c, err, resourceNone)
	}

	var req createWordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	w, err := s.words.Create(c.UserContext(), uid, req.Word, req.Meaning, req.Notes)
	if err != nil {
		return s.fail(c, err, resourceWord)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"word": w})
}

func (s *Server) updateWord(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "Invalid word id")
	}
	uid, err := userID(c)
	if err != nil {
		return s.fail(c, err, resourceNone)
	}

	var patch models.SavedWordPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	w, err := s.words.Update(c.UserContext(), id, uid, patch)
	if err != nil {
		return s.fail(c, err, resourceEdit)
	}

	return c.JSON(fiber.Map{"word": w})
}

func (s *Server) deleteWord(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "Invalid word id")
	}
	uid, err := userID(c)
	if err != nil {
		return s.fail(c, err, resourceNone)
	}

	if err := s.words.Delete(c.UserContext(), id, uid); err != nil {
		return s.fail(c, err, resourceWord)
	}

	return c.JSON(fiber.Map{"message": "Word deleted successfully"})
}

func (s *Server) generateTest(c *fiber.Ctx) error {
	res, err := s.generation.GenerateToday(c.UserContext())
	if err != nil {
		return s.fail(c, err, resourceNone)
	}

	return c.JSON(generationResponse{
		Message:   res.Message,
		Date:      formatDate(res.Date),
		WordCount: res.WordCount,
	})
}
