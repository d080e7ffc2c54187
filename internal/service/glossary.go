package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/termbase/termbase/internal/metrics"
	"github.com/termbase/termbase/internal/model"
	"github.com/termbase/termbase/internal/repository"
)

// Access is the outcome of the glossary access guard.
type Access int

const (
	// AccessReadOnly is granted to non-owners of a public glossary.
	AccessReadOnly Access = iota
	// AccessReadWrite is granted to the owner.
	AccessReadWrite
)

// String returns the wire representation of the access level.
func (a Access) String() string {
	if a == AccessReadWrite {
		return "read-write"
	}
	return "read-only"
}

// GlossaryService handles glossary business logic.
type GlossaryService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewGlossaryService creates a new GlossaryService.
func NewGlossaryService(repo *repository.Repository, recorder metrics.Recorder) *GlossaryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &GlossaryService{repo: repo, metrics: recorder}
}

// CreateGlossaryInput defines input for creating a glossary.
type CreateGlossaryInput struct {
	Name        string
	Description *string
}

// UpdateGlossaryInput defines input for a partial glossary update.
// Nil fields are left unchanged.
type UpdateGlossaryInput struct {
	ID          string
	Name        *string
	Description *string
	IsPublic    *bool
}

// GlossaryDetail is the result of the guarded read path.
type GlossaryDetail struct {
	Glossary  *model.Glossary
	Access    Access
	TermCount int
}

// Resolve is the access guard: it looks a glossary up by primary key
// and decides what the caller may do with it.
//
//	owner                        -> read-write
//	public, anyone else          -> read-only
//	missing row                  -> ErrNotFound
//	private, non-owner/anonymous -> ErrForbidden
func (s *GlossaryService) Resolve(ctx context.Context, glossaryID string, caller *model.Identity) (*model.Glossary, Access, error) {
	g, err := s.repo.GetGlossaryByID(ctx, glossaryID)
	if err != nil {
		if errors.Is(err, repository.ErrGlossaryNotFound) {
			return nil, AccessReadOnly, ErrNotFound
		}
		return nil, AccessReadOnly, fmt.Errorf("resolve glossary: %w", err)
	}

	if caller != nil && caller.UserID == g.OwnerID {
		return g, AccessReadWrite, nil
	}
	if g.IsPublic {
		return g, AccessReadOnly, nil
	}
	return nil, AccessReadOnly, ErrForbidden
}

// Create makes the caller the owner of a new glossary.
// New glossaries are private until shared explicitly.
func (s *GlossaryService) Create(ctx context.Context, caller *model.Identity, input CreateGlossaryInput) (g *model.Glossary, err error) {
	defer func() { s.metrics.RecordOperation("glossary.create", outcome(err)) }()

	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if input.Name == "" {
		return nil, invalid("name", "name is required")
	}

	now := time.Now().UTC()
	g = &model.Glossary{
		ID:          uuid.New().String(),
		OwnerID:     caller.UserID,
		Name:        input.Name,
		Description: input.Description,
		IsPublic:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err = s.repo.CreateGlossary(ctx, g); err != nil {
		return nil, fmt.Errorf("create glossary: %w", err)
	}

	return g, nil
}

// ListMine returns the caller's own glossaries, oldest first. It
// bypasses the guard: the list is filtered by owner in the WHERE
// clause and never includes anyone else's glossaries, public or not.
func (s *GlossaryService) ListMine(ctx context.Context, caller *model.Identity) (glossaries []*model.Glossary, err error) {
	defer func() { s.metrics.RecordOperation("glossary.listMine", outcome(err)) }()

	if caller == nil {
		return nil, ErrUnauthenticated
	}

	glossaries, err = s.repo.ListGlossariesByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list glossaries: %w", err)
	}

	return glossaries, nil
}

// GetByID is the guarded read path. Anonymous callers are allowed;
// the guard decides whether they may see anything.
func (s *GlossaryService) GetByID(ctx context.Context, caller *model.Identity, id string) (detail *GlossaryDetail, err error) {
	defer func() { s.metrics.RecordOperation("glossary.getById", outcome(err)) }()

	if err = validateID("id", id); err != nil {
		return nil, err
	}

	g, access, err := s.Resolve(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountTerms(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("count terms: %w", err)
	}

	return &GlossaryDetail{Glossary: g, Access: access, TermCount: count}, nil
}

// Update applies a partial update to a glossary the caller owns.
// The ownership check is the UPDATE's WHERE clause; a non-owner's
// attempt is indistinguishable from a missing glossary.
func (s *GlossaryService) Update(ctx context.Context, caller *model.Identity, input UpdateGlossaryInput) (g *model.Glossary, err error) {
	defer func() { s.metrics.RecordOperation("glossary.update", outcome(err)) }()

	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if err = validateID("id", input.ID); err != nil {
		return nil, err
	}
	if input.Name != nil && *input.Name == "" {
		return nil, invalid("name", "name must not be empty")
	}

	g, err = s.repo.UpdateGlossary(ctx, input.ID, caller.UserID, repository.GlossaryUpdate{
		Name:        input.Name,
		Description: input.Description,
		IsPublic:    input.IsPublic,
	}, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrGlossaryNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("update glossary: %w", err)
	}

	return g, nil
}

// SetSharing flips the public flag on a glossary the caller owns.
func (s *GlossaryService) SetSharing(ctx context.Context, caller *model.Identity, id string, isPublic bool) (g *model.Glossary, err error) {
	defer func() { s.metrics.RecordOperation("glossary.setSharing", outcome(err)) }()

	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if err = validateID("id", id); err != nil {
		return nil, err
	}

	g, err = s.repo.SetGlossarySharing(ctx, id, caller.UserID, isPublic, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrGlossaryNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("set glossary sharing: %w", err)
	}

	return g, nil
}

// Delete removes a glossary the caller owns, cascading to its terms.
func (s *GlossaryService) Delete(ctx context.Context, caller *model.Identity, id string) (err error) {
	defer func() { s.metrics.RecordOperation("glossary.delete", outcome(err)) }()

	if caller == nil {
		return ErrUnauthenticated
	}
	if err = validateID("id", id); err != nil {
		return err
	}

	if err = s.repo.DeleteGlossary(ctx, id, caller.UserID); err != nil {
		if errors.Is(err, repository.ErrGlossaryNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		return fmt.Errorf("delete glossary: %w", err)
	}

	return nil
}

// validateID rejects identifiers that are not UUIDs before they reach
// the store, where a malformed uuid literal would error anyway.
func validateID(field, id string) error {
	if id == "" {
		return invalid(field, field+" is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return invalid(field, field+" must be a valid UUID")
	}
	return nil
}
