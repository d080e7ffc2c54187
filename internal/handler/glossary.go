package handler

import (
	"log/slog"
	"net/http"

	"github.com/termbase/termbase/internal/auth"
	"github.com/termbase/termbase/internal/handler/dto"
	"github.com/termbase/termbase/internal/service"
)

// GlossaryHandler handles the glossary.* operations.
type GlossaryHandler struct {
	svc    *service.GlossaryService
	logger *slog.Logger
}

// NewGlossaryHandler creates a new GlossaryHandler.
func NewGlossaryHandler(svc *service.GlossaryService, logger *slog.Logger) *GlossaryHandler {
	return &GlossaryHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/rpc/glossary.create.
func (h *GlossaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGlossaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := auth.IdentityFromContext(r.Context())
	g, err := h.svc.Create(r.Context(), caller, service.CreateGlossaryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("glossary_created",
		"glossary_id", g.ID,
		"owner_id", g.OwnerID,
	)

	writeJSON(w, http.StatusCreated, dto.ToGlossaryResponse(g))
}

// ListMine handles POST /api/v1/rpc/glossary.listMine.
func (h *GlossaryHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())
	glossaries, err := h.svc.ListMine(r.Context(), caller)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToGlossaryListResponse(glossaries))
}

// GetByID handles POST /api/v1/rpc/glossary.getById.
func (h *GlossaryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	var req dto.GlossaryIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := auth.IdentityFromContext(r.Context())
	detail, err := h.svc.GetByID(r.Context(), caller, req.ID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GlossaryDetailResponse{
		GlossaryResponse: dto.ToGlossaryResponse(detail.Glossary),
		Access:           detail.Access.String(),
		TermCount:        detail.TermCount,
	})
}

// Update handles POST /api/v1/rpc/glossary.update.
func (h *GlossaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateGlossaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := auth.IdentityFromContext(r.Context())
	g, err := h.svc.Update(r.Context(), caller, service.UpdateGlossaryInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("glossary_updated", "glossary_id", g.ID)

	writeJSON(w, http.StatusOK, dto.ToGlossaryResponse(g))
}

// Delete handles POST /api/v1/rpc/glossary.delete.
func (h *GlossaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req dto.GlossaryIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := auth.IdentityFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), caller, req.ID); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("glossary_deleted", "glossary_id", req.ID)

	writeJSON(w, http.StatusOK, dto.DeleteResponse{Success: true})
}

// SetSharing handles POST /api/v1/rpc/glossary.setSharing.
func (h *GlossaryHandler) SetSharing(w http.ResponseWriter, r *http.Request) {
	var req dto.SetSharingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := auth.IdentityFromContext(r.Context())
	g, err := h.svc.SetSharing(r.Context(), caller, req.ID, req.IsPublic)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("glossary_sharing_changed",
		"glossary_id", g.ID,
		"is_public", g.IsPublic,
	)

	writeJSON(w, http.StatusOK, dto.SharingResponse{ID: g.ID, IsPublic: g.IsPublic})
}
