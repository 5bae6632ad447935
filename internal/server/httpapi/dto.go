package httpapi

import (
	"time"

	"github.com/dmitrijs2005/vocabday/internal/server/models"
	"github.com/dmitrijs2005/vocabday/internal/server/services"
)

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type submitRequest struct {
	Answers []string `json:"answers"`
}

type createWordRequest struct {
	Word    string  `json:"word"`
	Meaning string  `json:"meaning"`
	Notes   *string `json:"notes"`
}

type userDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

type testDTO struct {
	ID    int64             `json:"id"`
	Date  string            `json:"date"`
	Words []models.QuizItem `json:"words"`
}

type progressDTO struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Score     int    `json:"score"`
}

type availabilityResponse struct {
	NextTest         *testDTO      `json:"nextTest"`
	Progress         []progressDTO `json:"progress"`
	TotalTests       int           `json:"totalTests"`
	CompletedCount   int           `json:"completedCount"`
	RegistrationDate string        `json:"registrationDate"`
}

type testResponse struct {
	Test             testDTO `json:"test"`
	AlreadyCompleted bool    `json:"alreadyCompleted"`
	PreviousScore    *int    `json:"previousScore"`
}

type generationResponse struct {
	Message   string `json:"message"`
	Date      string `json:"date"`
	WordCount int    `json:"wordCount,omitempty"`
}

func formatDate(t time.Time) string { return models.FormatDate(t) }

func toUserDTO(u *models.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name}
}

func toTestDTO(q *models.Quiz) testDTO {
	words := q.Items
	if words == nil {
		words = []models.QuizItem{}
	}
	return testDTO{ID: q.ID, Date: formatDate(q.Date), Words: words}
}

func toAvailabilityResponse(a *services.Availability) availabilityResponse {
	resp := availabilityResponse{
		Progress:         make([]progressDTO, 0, len(a.Progress)),
		TotalTests:       a.TotalTests,
		CompletedCount:   a.CompletedCount,
		RegistrationDate: formatDate(a.RegistrationDate),
	}
	if a.NextTest != nil {
		t := toTestDTO(a.NextTest)
		resp.NextTest = &t
	}
	for _, p := range a.Progress {
		resp.Progress = append(resp.Progress, progressDTO{
			ID:        p.ID,
			Date:      formatDate(p.Date),
			Completed: p.Completed,
			Score:     p.Score,
		})
	}
	return resp
}
