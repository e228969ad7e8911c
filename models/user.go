package models

import "time"

// User status values
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// User represents an account that can hold a session
type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsActive reports whether the user may hold a session
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// LoginForm represents the credentials posted to /auth/login
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login form data
func (f *LoginForm) Validate() []string {
	var errors []string

	if f.Email == "" {
		errors = append(errors, "Email is required")
	}

	if f.Password == "" {
		errors = append(errors, "Password is required")
	}

	return errors
}
