// Package models holds the server's domain records.
package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegistrationDate is the calendar day the account was created. Quizzes
// dated earlier are outside the user's sequence.
func (u *User) RegistrationDate() time.Time {
	return DateOf(u.CreatedAt)
}
