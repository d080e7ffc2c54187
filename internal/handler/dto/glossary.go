package dto

import (
	"time"

	"github.com/termbase/termbase/internal/model"
)

// CreateGlossaryRequest is the input for glossary.create.
type CreateGlossaryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateGlossaryRequest is the input for glossary.update.
// Omitted fields are left unchanged.
type UpdateGlossaryRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

// GlossaryIDRequest is the input for operations addressed by glossary id.
type GlossaryIDRequest struct {
	ID string `json:"id"`
}

// SetSharingRequest is the input for glossary.setSharing.
type SetSharingRequest struct {
	ID       string `json:"id"`
	IsPublic bool   `json:"isPublic"`
}

// GlossaryResponse represents a glossary in API responses.
type GlossaryResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GlossaryDetailResponse is the guarded read result: the glossary
// plus what the caller may do with it.
type GlossaryDetailResponse struct {
	GlossaryResponse
	Access    string `json:"access"`
	TermCount int    `json:"termCount"`
}

// GlossaryListResponse is the result of glossary.listMine.
type GlossaryListResponse struct {
	Data []GlossaryResponse `json:"data"`
}

// SharingResponse is the result of glossary.setSharing.
type SharingResponse struct {
	ID       string `json:"id"`
	IsPublic bool   `json:"isPublic"`
}

// DeleteResponse acknowledges a destructive mutation.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// ToGlossaryResponse converts a model to its API representation.
func ToGlossaryResponse(g *model.Glossary) GlossaryResponse {
	return GlossaryResponse{
		ID:          g.ID,
		OwnerID:     g.OwnerID,
		Name:        g.Name,
		Description: g.Description,
		IsPublic:    g.IsPublic,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// ToGlossaryListResponse converts a slice of models. Always returns a
// non-nil Data so empty lists encode as [].
func ToGlossaryListResponse(glossaries []*model.Glossary) GlossaryListResponse {
	data := make([]GlossaryResponse, 0, len(glossaries))
	for _, g := range glossaries {
		data = append(data, ToGlossaryResponse(g))
	}
	return GlossaryListResponse{Data: data}
}
