package model

import "time"

// Term is a term/definition pair inside a glossary. It carries no
// access-control state of its own; visibility and write rights are
// inherited from the parent glossary. Duplicate term text is allowed.
type Term struct {
	ID         string    `json:"id"`
	GlossaryID string    `json:"glossary_id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
