package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Username string `json:"username" validate:"omitempty,max=20"`
	Email    string `json:"email"    validate:"omitempty,max=254"`
	Password string `json:"password" validate:"omitempty,max=64"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,max=20"`
	Email    *string `json:"email,omitempty"    validate:"omitempty,max=254"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

type authResponse struct {
	Message string       `json:"message,omitempty"`
	User    userResponse `json:"user"`
}

// --- Articles ---

type articleRequest struct {
	Title      string `json:"title"      validate:"max=140"`
	Body       string `json:"body"       validate:"max=10000"`
	Source     string `json:"source"     validate:"max=2048"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=public private"`
}

type articlePatchRequest struct {
	Title      *string `json:"title,omitempty"      validate:"omitempty,max=140"`
	Body       *string `json:"body,omitempty"       validate:"omitempty,max=10000"`
	Source     *string `json:"source,omitempty"     validate:"omitempty,max=2048"`
	Visibility *string `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
}

type articleResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Source     string    `json:"source,omitempty"`
	Visibility string    `json:"visibility"`
	OwnerID    string    `json:"ownerId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type articleEnvelope struct {
	Message string          `json:"message,omitempty"`
	Article articleResponse `json:"article"`
}

type articleListResponse struct {
	Articles []articleResponse `json:"articles"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// --- Summaries ---

type summaryRequest struct {
	OriginalText string `json:"originalText" validate:"max=50000"`
}

type summaryResponse struct {
	ID           string    `json:"id"`
	OriginalText string    `json:"originalText"`
	SummaryText  string    `json:"summaryText"`
	OwnerID      string    `json:"ownerId"`
	CreatedAt    time.Time `json:"createdAt"`
}

type summaryEnvelope struct {
	Message string          `json:"message,omitempty"`
	Summary summaryResponse `json:"summary"`
}

type summaryListResponse struct {
	Summaries []summaryResponse `json:"summaries"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}
