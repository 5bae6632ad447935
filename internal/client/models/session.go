// Package models defines client-side data models used by the VocabDay CLI.
package models

import "time"

// Session is the signed-in state of the CLI. It is passed explicitly into
// every authenticated API call and persisted between runs.
type Session struct {
	UserID    int64
	Email     string
	Name      string
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether s carries a token that has not expired at now.
// A nil session is never valid.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresAt)
}
