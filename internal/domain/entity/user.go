package entity

import (
	"net/mail"
	"strings"
	"time"
)

const (
	MinPasswordLength = 6
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

// User is the single locally stored credential record.
type User struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Address      string    `json:"address,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) IsZero() bool {
	return u.Email == ""
}

type SignUpInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

func (in SignUpInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name", "name is required")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return NewValidationError("email", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return NewValidationError("email", "email address is malformed")
	}
	if len(in.Password) < MinPasswordLength {
		return NewValidationError("password", "password must be at least 6 characters")
	}
	if len(in.Password) > MaxPasswordLength {
		return NewValidationError("password", "password must be at most 72 bytes")
	}
	return nil
}

// NormalizeEmail lowercases and trims an address for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
