package dto

import (
	"time"

	"github.com/termbase/termbase/internal/model"
)

// ListTermsRequest is the input for term.list. Omitted page and
// pageSize take the defaults (1 and 10).
type ListTermsRequest struct {
	GlossaryID string `json:"glossaryId"`
	Page       *int   `json:"page,omitempty"`
	PageSize   *int   `json:"pageSize,omitempty"`
}

// CreateTermRequest is the input for term.create.
type CreateTermRequest struct {
	GlossaryID string `json:"glossaryId"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// UpdateTermRequest is the input for term.update.
// Omitted fields are left unchanged.
type UpdateTermRequest struct {
	ID         string  `json:"id"`
	Term       *string `json:"term,omitempty"`
	Definition *string `json:"definition,omitempty"`
}

// TermIDRequest is the input for term.delete.
type TermIDRequest struct {
	ID string `json:"id"`
}

// SearchTermsRequest is the input for term.search.
type SearchTermsRequest struct {
	GlossaryID string `json:"glossaryId"`
	Query      string `json:"query"`
}

// TermResponse represents a term in API responses.
type TermResponse struct {
	ID         string    `json:"id"`
	GlossaryID string    `json:"glossaryId"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TermPageResponse is one page of terms with the pagination contract.
type TermPageResponse struct {
	Data        []TermResponse `json:"data"`
	TotalCount  int            `json:"totalCount"`
	CurrentPage int            `json:"currentPage"`
	PageSize    int            `json:"pageSize"`
	TotalPages  int            `json:"totalPages"`
}

// TermListResponse is the unpaginated result of term.search.
type TermListResponse struct {
	Data []TermResponse `json:"data"`
}

// ToTermResponse converts a model to its API representation.
func ToTermResponse(t *model.Term) TermResponse {
	return TermResponse{
		ID:         t.ID,
		GlossaryID: t.GlossaryID,
		Term:       t.Term,
		Definition: t.Definition,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// ToTermResponses converts a slice of models, never returning nil.
func ToTermResponses(terms []*model.Term) []TermResponse {
	data := make([]TermResponse, 0, len(terms))
	for _, t := range terms {
		data = append(data, ToTermResponse(t))
	}
	return data
}
