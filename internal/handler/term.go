package handler

import (
	"log/slog"
	"net/http"

	"github.com/termbase/termbase/internal/auth"
	"github.com/termbase/termbase/internal/handler/dto"
	"github.com/termbase/termbase/internal/service"
)

// TermHandler handles the term.* operations.
type TermHandler struct {
	svc    *service.TermService
	logger *slog.Logger
}

// NewTermHandler creates a new TermHandler.
func NewTermHandler(svc *service.TermService, logger *slog.Logger) *TermHandler {
	return &TermHandler{svc: svc, logger: logger}
}

// List handles POST /api/v1/rpc/term.list.
func (h *TermHandler) List(w http.ResponseWriter, r *http.Request) {
	var req dto.ListTermsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := auth.IdentityFromContext(r.Context())
	page, err := h.svc.List(r.Context(), caller, service.ListTermsInput{
		GlossaryID: req.GlossaryID,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TermPageResponse{
		Data:        dto.ToTermResponses(page.Data),
		TotalCount:  page.TotalCount,
		CurrentPage: page.CurrentPage,
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages,
	})
}

// Create handles POST /api/v1/rpc/term.create.
func (h *TermHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTermRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := auth.IdentityFromContext(r.Context())
	t, err := h.svc.Create(r.Context(), caller, service.CreateTermInput{
		GlossaryID: req.GlossaryID,
		Term:       req.Term,
		Definition: req.Definition,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("term_created",
		"term_id", t.ID,
		"glossary_id", t.GlossaryID,
	)

	writeJSON(w, http.StatusCreated, dto.ToTermResponse(t))
}

// Update handles POST /api/v1/rpc/term.update.
func (h *TermHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTermRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := auth.IdentityFromContext(r.Context())
	t, err := h.svc.Update(r.Context(), caller, service.UpdateTermInput{
		ID:         req.ID,
		Term:       req.Term,
		Definition: req.Definition,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("term_updated", "term_id", t.ID)

	writeJSON(w, http.StatusOK, dto.ToTermResponse(t))
}

// Delete handles POST /api/v1/rpc/term.delete.
func (h *TermHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req dto.TermIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := auth.IdentityFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), caller, req.ID); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("term_deleted", "term_id", req.ID)

	writeJSON(w, http.StatusOK, dto.DeleteResponse{Success: true})
}

// Search handles POST /api/v1/rpc/term.search.
func (h *TermHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchTermsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := auth.IdentityFromContext(r.Context())
	terms, err := h.svc.Search(r.Context(), caller, service.SearchTermsInput{
		GlossaryID: req.GlossaryID,
		Query:      req.Query,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TermListResponse{Data: dto.ToTermResponses(terms)})
}
