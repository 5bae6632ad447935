package models

// User is the public account view returned by the auth endpoints.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse is the body of signup and signin.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type TestItem struct {
	Word          string   `json:"word"`
	Meaning       string   `json:"meaning"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Test is a daily quiz. Date is YYYY-MM-DD.
type Test struct {
	ID    int64      `json:"id"`
	Date  string     `json:"date"`
	Words []TestItem `json:"words"`
}

type ProgressEntry struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Score     int    `json:"score"`
}

// Availability is the body of GET /tests/available.
type Availability struct {
	NextTest         *Test           `json:"nextTest"`
	Progress         []ProgressEntry `json:"progress"`
	TotalTests       int             `json:"totalTests"`
	CompletedCount   int             `json:"completedCount"`
	RegistrationDate string          `json:"registrationDate"`
}

// TestView is the body of GET /tests/{id}.
type TestView struct {
	Test             Test `json:"test"`
	AlreadyCompleted bool `json:"alreadyCompleted"`
	PreviousScore    *int `json:"previousScore"`
}

type ItemResult struct {
	Word          string `json:"word"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

type SubmitResult struct {
	Score          int          `json:"score"`
	TotalQuestions int          `json:"totalQuestions"`
	Percentage     float64      `json:"percentage"`
	Results        []ItemResult `json:"results"`
}

type SavedWord struct {
	ID        int64   `json:"id"`
	Word      string  `json:"word"`
	Meaning   string  `json:"meaning"`
	Notes     *string `json:"notes"`
	CreatedAt string  `json:"createdAt"`
}

// WordPatch is a partial saved-word update. Nil fields are left out of the
// request; ClearNotes sends an explicit null for notes.
type WordPatch struct {
	Word       *string
	Meaning    *string
	Notes      *string
	ClearNotes bool
}

// Body renders the patch as the JSON object expected by the API.
func (p WordPatch) Body() map[string]any {
	body := map[string]any{}
	if p.Word != nil {
		body["word"] = *p.Word
	}
	if p.Meaning != nil {
		body["meaning"] = *p.Meaning
	}
	switch {
	case p.ClearNotes:
		body["notes"] = nil
	case p.Notes != nil:
		body["notes"] = *p.Notes
	}
	return body
}
