package models

import "time"

// Attempt is an immutable ledger entry for one user's submission of one quiz.
type Attempt struct {
	ID          int64
	UserID      int64
	TestID      int64
	Score       int
	Answers     []string
	Completed   bool
	AttemptedAt time.Time
}
