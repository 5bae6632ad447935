package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired, please sign in again")
)

// APIError is a non-2xx answer other than 401. Message is the server's
// "error" field.
type APIError struct {
	Status       int
	Message      string
	RequiredTest *RequiredTest
}

// RequiredTest names the quiz that must be completed first (403 answers).
type RequiredTest struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return e.Message
}
