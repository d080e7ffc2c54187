package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/termbase/termbase/internal/model"
)

// ErrGlossaryNotFound is returned when no glossary row matches the
// lookup. For owner-scoped mutations this deliberately covers both
// "no such row" and "row owned by someone else" - the WHERE clause
// joins id and owner, so the two cases are indistinguishable by design.
var ErrGlossaryNotFound = errors.New("glossary not found")

// GlossaryUpdate holds the mutable glossary fields for a partial
// update. Nil fields are left unchanged.
type GlossaryUpdate struct {
	Name        *string
	Description *string
	IsPublic    *bool
}

// CreateGlossary inserts a new glossary owned by the given user.
func (r *Repository) CreateGlossary(ctx context.Context, g *model.Glossary) error {
	query := `
		INSERT INTO glossaries (id, owner_id, name, description, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		g.ID,
		g.OwnerID,
		g.Name,
		g.Description,
		g.IsPublic,
		g.CreatedAt,
		g.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create glossary: %w", err)
	}

	return nil
}

// GetGlossaryByID retrieves a glossary by primary key, regardless of
// owner. The access guard in the service layer decides visibility.
func (r *Repository) GetGlossaryByID(ctx context.Context, id string) (*model.Glossary, error) {
	query := `
		SELECT id, owner_id, name, description, is_public, created_at, updated_at
		FROM glossaries
		WHERE id = $1
	`

	g, err := scanGlossary(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGlossaryNotFound
		}
		return nil, fmt.Errorf("failed to get glossary by ID: %w", err)
	}

	return g, nil
}

// ListGlossariesByOwner retrieves all glossaries owned by a user,
// ordered by creation time.
func (r *Repository) ListGlossariesByOwner(ctx context.Context, ownerID string) ([]*model.Glossary, error) {
	query := `
		SELECT id, owner_id, name, description, is_public, created_at, updated_at
		FROM glossaries
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list glossaries: %w", err)
	}
	defer rows.Close()

	var glossaries []*model.Glossary
	for rows.Next() {
		g, err := scanGlossary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan glossary: %w", err)
		}
		glossaries = append(glossaries, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating glossaries: %w", err)
	}

	return glossaries, nil
}

// UpdateGlossary applies a partial update scoped to (id, owner). The
// ownership check and the write are one statement; there is no window
// for a just-revoked owner to sneak a mutation in.
func (r *Repository) UpdateGlossary(ctx context.Context, id, ownerID string, upd GlossaryUpdate, now time.Time) (*model.Glossary, error) {
	query := `
		UPDATE glossaries
		SET name        = COALESCE($3, name),
		    description = COALESCE($4, description),
		    is_public   = COALESCE($5, is_public),
		    updated_at  = $6
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, name, description, is_public, created_at, updated_at
	`

	g, err := scanGlossary(r.pool.QueryRow(ctx, query, id, ownerID, upd.Name, upd.Description, upd.IsPublic, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGlossaryNotFound
		}
		return nil, fmt.Errorf("failed to update glossary: %w", err)
	}

	return g, nil
}

// SetGlossarySharing flips the public flag, scoped to (id, owner).
func (r *Repository) SetGlossarySharing(ctx context.Context, id, ownerID string, isPublic bool, now time.Time) (*model.Glossary, error) {
	query := `
		UPDATE glossaries
		SET is_public = $3, updated_at = $4
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, name, description, is_public, created_at, updated_at
	`

	g, err := scanGlossary(r.pool.QueryRow(ctx, query, id, ownerID, isPublic, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGlossaryNotFound
		}
		return nil, fmt.Errorf("failed to set glossary sharing: %w", err)
	}

	return g, nil
}

// DeleteGlossary removes a glossary scoped to (id, owner). Terms go
// with it via the cascade constraint.
func (r *Repository) DeleteGlossary(ctx context.Context, id, ownerID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM glossaries WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete glossary: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrGlossaryNotFound
	}

	return nil
}

// scanGlossary scans a single row into a Glossary model.
func scanGlossary(row pgx.Row) (*model.Glossary, error) {
	var g model.Glossary
	err := row.Scan(
		&g.ID,
		&g.OwnerID,
		&g.Name,
		&g.Description,
		&g.IsPublic,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return &g, err
}
