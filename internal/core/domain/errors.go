package domain

import (
	"errors"
	"fmt"
)

// Error classes. Every sentinel below wraps exactly one of these so callers
// can branch on the class with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("access forbidden")
	ErrNotFound        = errors.New("not found")
	ErrUpstream        = errors.New("upstream failure")
)

var (
	ErrInvalidID     = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrInvalidUserID = fmt.Errorf("%w: invalid user id", ErrValidation)
	ErrUserExists    = fmt.Errorf("%w: user already exists", ErrValidation)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrUnauthenticated)
	ErrTokenInvalid       = fmt.Errorf("%w: token invalid", ErrUnauthenticated)
	ErrTokenRevoked       = fmt.Errorf("%w: token revoked", ErrUnauthenticated)

	ErrNotArticleOwner = fmt.Errorf("%w: not the article owner", ErrForbidden)
	ErrNotSummaryOwner = fmt.Errorf("%w: not the summary owner", ErrForbidden)
	ErrNotAdmin        = fmt.Errorf("%w: admin required", ErrForbidden)

	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)
	ErrArticleNotFound = fmt.Errorf("%w: article", ErrNotFound)
	ErrSummaryNotFound = fmt.Errorf("%w: summary", ErrNotFound)

	ErrSummarizer = fmt.Errorf("%w: summarizer", ErrUpstream)
)

// ValidationError carries a user-facing message for malformed input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError with a formatted message.
func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
