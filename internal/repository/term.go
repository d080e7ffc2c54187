package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/termbase/termbase/internal/model"
)

// ErrTermNotFound is returned when no term row matches an
// owner-scoped lookup. Like ErrGlossaryNotFound, it merges "missing"
// and "not yours" so existence never leaks to non-owners.
var ErrTermNotFound = errors.New("term not found")

// TermUpdate holds the mutable term fields for a partial update.
// Nil fields are left unchanged.
type TermUpdate struct {
	Term       *string
	Definition *string
}

// CreateTerm inserts a term into a glossary, but only if that
// glossary exists and belongs to ownerID. The ownership check rides
// inside the INSERT ... SELECT, so a concurrent glossary delete
// cannot slip a term into a dead or foreign glossary.
func (r *Repository) CreateTerm(ctx context.Context, t *model.Term, ownerID string) error {
	query := `
		INSERT INTO terms (id, glossary_id, term, definition, created_at, updated_at)
		SELECT $1, g.id, $3, $4, $5, $6
		FROM glossaries g
		WHERE g.id = $2 AND g.owner_id = $7
	`

	result, err := r.pool.Exec(ctx, query,
		t.ID,
		t.GlossaryID,
		t.Term,
		t.Definition,
		t.CreatedAt,
		t.UpdatedAt,
		ownerID,
	)

	if err != nil {
		return fmt.Errorf("failed to create term: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrGlossaryNotFound
	}

	return nil
}

// UpdateTerm applies a partial update joined to the parent glossary's
// owner. One statement, affected-row check - never SELECT then UPDATE.
func (r *Repository) UpdateTerm(ctx context.Context, id, ownerID string, upd TermUpdate, now time.Time) (*model.Term, error) {
	query := `
		UPDATE terms t
		SET term       = COALESCE($3, t.term),
		    definition = COALESCE($4, t.definition),
		    updated_at = $5
		FROM glossaries g
		WHERE t.glossary_id = g.id AND t.id = $1 AND g.owner_id = $2
		RETURNING t.id, t.glossary_id, t.term, t.definition, t.created_at, t.updated_at
	`

	term, err := scanTerm(r.pool.QueryRow(ctx, query, id, ownerID, upd.Term, upd.Definition, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTermNotFound
		}
		return nil, fmt.Errorf("failed to update term: %w", err)
	}

	return term, nil
}

// DeleteTerm removes a term, joined to the parent glossary's owner.
func (r *Repository) DeleteTerm(ctx context.Context, id, ownerID string) error {
	query := `
		DELETE FROM terms t
		USING glossaries g
		WHERE t.glossary_id = g.id AND t.id = $1 AND g.owner_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete term: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTermNotFound
	}

	return nil
}

// ListTerms retrieves one page of a glossary's terms ordered by
// creation time, with id as tie-break so pages are stable under
// concurrent inserts in the same instant.
func (r *Repository) ListTerms(ctx context.Context, glossaryID string, limit, offset int) ([]*model.Term, error) {
	query := `
		SELECT id, glossary_id, term, definition, created_at, updated_at
		FROM terms
		WHERE glossary_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, glossaryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}
	defer rows.Close()

	return collectTerms(rows)
}

// CountTerms returns the total number of terms in a glossary.
func (r *Repository) CountTerms(ctx context.Context, glossaryID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM terms WHERE glossary_id = $1`, glossaryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count terms: %w", err)
	}

	return count, nil
}

// SearchTerms finds terms whose text or definition contains the query
// substring, case-insensitively, ordered alphabetically by term.
// Wildcards in the query are passed through, matching plain LIKE.
func (r *Repository) SearchTerms(ctx context.Context, glossaryID, query string) ([]*model.Term, error) {
	sql := `
		SELECT id, glossary_id, term, definition, created_at, updated_at
		FROM terms
		WHERE glossary_id = $1
		  AND (term ILIKE '%' || $2 || '%' OR definition ILIKE '%' || $2 || '%')
		ORDER BY term ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, sql, glossaryID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search terms: %w", err)
	}
	defer rows.Close()

	return collectTerms(rows)
}

// collectTerms drains rows into Term models.
func collectTerms(rows pgx.Rows) ([]*model.Term, error) {
	var terms []*model.Term
	for rows.Next() {
		t, err := scanTerm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		terms = append(terms, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating terms: %w", err)
	}

	return terms, nil
}

// scanTerm scans a single row into a Term model.
func scanTerm(row pgx.Row) (*model.Term, error) {
	var t model.Term
	err := row.Scan(
		&t.ID,
		&t.GlossaryID,
		&t.Term,
		&t.Definition,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return &t, err
}
