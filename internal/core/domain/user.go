package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	MinPasswordLen = 8
	MaxPasswordLen = 64
	MaxEmailLen    = 254

	passwordSpecials = "@$!%*?&"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// User models a registered identity. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfilePatch is a merge-patch over the editable profile fields.
type ProfilePatch struct {
	Username *string
	Email    *string
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.Username == nil && p.Email == nil
}

// NormalizeEmail lowercases and trims an address the same way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateUsername(username string) error {
	if len(username) < 3 {
		return Invalid("Username must be at least 3 characters")
	}
	if len(username) > 20 {
		return Invalid("Username must be at most 20 characters")
	}
	if !usernamePattern.MatchString(username) {
		return Invalid("Username can only contain letters, digits, underscore, and hyphen")
	}
	return nil
}

func ValidateEmail(email string) error {
	if len(email) > MaxEmailLen {
		return Invalid("Email is too long")
	}
	if !emailPattern.MatchString(email) {
		return Invalid("Please enter a valid email address")
	}
	return nil
}

// ValidatePassword enforces 8 to 64 characters drawn from letters, digits and
// @$!%*?&, with at least one of each of lowercase, uppercase, digit, special.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return Invalid("Password must be at least %d characters", MinPasswordLen)
	}
	if len(password) > MaxPasswordLen {
		return Invalid("Password must be at most %d characters", MaxPasswordLen)
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return Invalid("Password may only contain letters, digits and %s", passwordSpecials)
		}
	}
	if !lower || !upper || !digit || !special {
		return Invalid("Password must contain at least one uppercase letter, one lowercase letter, one digit, and one special character")
	}
	return nil
}
