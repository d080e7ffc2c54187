// Package model defines domain entities for the application.
package model

import "time"

// User is an account holder. Glossaries hang off users via owner_id
// with cascade delete, so deleting a user removes everything they own.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Identity is the resolved caller for one request. It is attached to
// the request context exactly once by the identity middleware and
// never cached process-wide.
type Identity struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
