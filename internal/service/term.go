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

// Pagination bounds for term listing.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// TermService handles term business logic.
type TermService struct {
	repo       *repository.Repository
	glossaries *GlossaryService
	metrics    metrics.Recorder
}

// NewTermService creates a new TermService. The glossary service is
// needed for the access guard on read paths.
func NewTermService(repo *repository.Repository, glossaries *GlossaryService, recorder metrics.Recorder) *TermService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TermService{repo: repo, glossaries: glossaries, metrics: recorder}
}

// ListTermsInput defines input for the paginated term listing.
// Nil Page/PageSize take the defaults.
type ListTermsInput struct {
	GlossaryID string
	Page       *int
	PageSize   *int
}

// TermPage is one window of a glossary's terms.
type TermPage struct {
	Data        []*model.Term
	TotalCount  int
	CurrentPage int
	PageSize    int
	TotalPages  int
}

// CreateTermInput defines input for creating a term.
type CreateTermInput struct {
	GlossaryID string
	Term       string
	Definition string
}

// UpdateTermInput defines input for a partial term update.
// Nil fields are left unchanged.
type UpdateTermInput struct {
	ID         string
	Term       *string
	Definition *string
}

// SearchTermsInput defines input for substring search.
type SearchTermsInput struct {
	GlossaryID string
	Query      string
}

// List returns one page of a glossary's terms, ordered by creation
// time. The guard runs in read mode, so public glossaries are
// listable anonymously. Pages beyond the data yield an empty page
// with correct totals, never an error.
func (s *TermService) List(ctx context.Context, caller *model.Identity, input ListTermsInput) (page *TermPage, err error) {
	defer func() { s.metrics.RecordOperation("term.list", outcome(err)) }()

	if err = validateID("glossaryId", input.GlossaryID); err != nil {
		return nil, err
	}

	pageNum, pageSize, err := normalizePagination(input.Page, input.PageSize)
	if err != nil {
		return nil, err
	}

	if _, _, err = s.glossaries.Resolve(ctx, input.GlossaryID, caller); err != nil {
		return nil, err
	}

	total, err := s.repo.CountTerms(ctx, input.GlossaryID)
	if err != nil {
		return nil, fmt.Errorf("count terms: %w", err)
	}

	terms, err := s.repo.ListTerms(ctx, input.GlossaryID, pageSize, (pageNum-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	if terms == nil {
		terms = []*model.Term{}
	}

	return &TermPage{
		Data:        terms,
		TotalCount:  total,
		CurrentPage: pageNum,
		PageSize:    pageSize,
		TotalPages:  totalPages(total, pageSize),
	}, nil
}

// Create adds a term to a glossary the caller owns. The glossary's
// existence and ownership are re-checked inside the insert itself.
func (s *TermService) Create(ctx context.Context, caller *model.Identity, input CreateTermInput) (t *model.Term, err error) {
	defer func() { s.metrics.RecordOperation("term.create", outcome(err)) }()

	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if err = validateID("glossaryId", input.GlossaryID); err != nil {
		return nil, err
	}
	if fields := validateTermFields(input.Term, input.Definition); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	now := time.Now().UTC()
	t = &model.Term{
		ID:         uuid.New().String(),
		GlossaryID: input.GlossaryID,
		Term:       input.Term,
		Definition: input.Definition,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err = s.repo.CreateTerm(ctx, t, caller.UserID); err != nil {
		if errors.Is(err, repository.ErrGlossaryNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("create term: %w", err)
	}

	return t, nil
}

// Update applies a partial update to a term whose parent glossary the
// caller owns. Re-invoking with identical fields is idempotent up to
// updated_at.
func (s *TermService) Update(ctx context.Context, caller *model.Identity, input UpdateTermInput) (t *model.Term, err error) {
	defer func() { s.metrics.RecordOperation("term.update", outcome(err)) }()

	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if err = validateID("id", input.ID); err != nil {
		return nil, err
	}
	if input.Term != nil && *input.Term == "" {
		return nil, invalid("term", "term must not be empty")
	}
	if input.Definition != nil && *input.Definition == "" {
		return nil, invalid("definition", "definition must not be empty")
	}

	t, err = s.repo.UpdateTerm(ctx, input.ID, caller.UserID, repository.TermUpdate{
		Term:       input.Term,
		Definition: input.Definition,
	}, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrTermNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("update term: %w", err)
	}

	return t, nil
}

// Delete removes a term whose parent glossary the caller owns.
func (s *TermService) Delete(ctx context.Context, caller *model.Identity, id string) (err error) {
	defer func() { s.metrics.RecordOperation("term.delete", outcome(err)) }()

	if caller == nil {
		return ErrUnauthenticated
	}
	if err = validateID("id", id); err != nil {
		return err
	}

	if err = s.repo.DeleteTerm(ctx, id, caller.UserID); err != nil {
		if errors.Is(err, repository.ErrTermNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		return fmt.Errorf("delete term: %w", err)
	}

	return nil
}

// Search finds terms by case-insensitive substring over term or
// definition, ordered alphabetically. Guarded like any read, so
// public glossaries are searchable by anyone.
func (s *TermService) Search(ctx context.Context, caller *model.Identity, input SearchTermsInput) (terms []*model.Term, err error) {
	defer func() { s.metrics.RecordOperation("term.search", outcome(err)) }()

	if err = validateID("glossaryId", input.GlossaryID); err != nil {
		return nil, err
	}

	if _, _, err = s.glossaries.Resolve(ctx, input.GlossaryID, caller); err != nil {
		return nil, err
	}

	terms, err = s.repo.SearchTerms(ctx, input.GlossaryID, input.Query)
	if err != nil {
		return nil, fmt.Errorf("search terms: %w", err)
	}
	if terms == nil {
		terms = []*model.Term{}
	}

	return terms, nil
}

// normalizePagination applies defaults and bounds-checks page inputs.
func normalizePagination(page, pageSize *int) (int, int, error) {
	p, ps := DefaultPage, DefaultPageSize

	if page != nil {
		if *page < 1 {
			return 0, 0, invalid("page", "page must be at least 1")
		}
		p = *page
	}
	if pageSize != nil {
		if *pageSize < 1 || *pageSize > MaxPageSize {
			return 0, 0, invalid("pageSize", fmt.Sprintf("pageSize must be between 1 and %d", MaxPageSize))
		}
		ps = *pageSize
	}

	return p, ps, nil
}

// totalPages is ceil(total/pageSize), 0 for an empty glossary.
func totalPages(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// validateTermFields collects non-empty violations for term inputs.
func validateTermFields(term, definition string) map[string]string {
	fields := make(map[string]string)
	if term == "" {
		fields["term"] = "term is required"
	}
	if definition == "" {
		fields["definition"] = "definition is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
