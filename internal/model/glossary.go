package model

import "time"

// Glossary is a named term list owned by exactly one user.
// OwnerID never changes after creation. IsPublic grants read-only
// access to everyone; write access is always owner-only.
type Glossary struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
