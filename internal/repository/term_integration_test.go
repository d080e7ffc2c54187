//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/termbase/termbase/internal/model"
	"github.com/termbase/termbase/internal/testutil"
)

// ============================================================================
// Term Repository Integration Tests
// ============================================================================

func TestIntegrationTermRepository_Create(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := mustCreateUser(t, ctx, repo)
	g := mustCreateGlossary(t, ctx, repo, owner.ID, "Biology")

	term := testutil.NewTestTerm(t, g.ID, "Cell", "The basic unit of life")
	if err := repo.CreateTerm(ctx, term, owner.ID); err != nil {
		t.Fatalf("CreateTerm failed: %v", err)
	}

	count, err := repo.CountTerms(ctx, g.ID)
	if err != nil {
		t.Fatalf("CountTerms failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 term, got %d", count)
	}
}

func TestIntegrationTermRepository_Create_WrongOwner(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := mustCreateUser(t, ctx, repo)
	intruder := mustCreateUser(t, ctx, repo)
	g := mustCreateGlossary(t, ctx, repo, owner.ID, "Biology")

	term := testutil.NewTestTerm(t, g.ID, "Cell", "The basic unit of life")
	err := repo.CreateTerm(ctx, term, intruder.ID)
	if !errors.Is(err, ErrGlossaryNotFound) {
		t.Fatalf("Expected ErrGlossaryNotFound, got: %v", err)
	}

	count, err := repo.CountTerms(ctx, g.ID)
	if err != nil {
		t.Fatalf("CountTerms failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Intruder insert should not land, got %d terms", count)
	}
}

func TestIntegrationTermRepository_Update_Partial(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := mustCreateUser(t, ctx, repo)
	g := mustCreateGlossary(t, ctx, repo, owner.ID, "Biology")
	term := mustCreateTerm(t, ctx, repo, g.ID, owner.ID, "DNA", "Deoxyribonucleic acid")

	newDef := "Carrier of genetic information"
	updated, err := repo.UpdateTerm(ctx, term.ID, owner.ID, TermUpdate{Definition: &newDef}, time.Now().UTC())
	if err != nil {
		t.Fatalf("UpdateTerm failed: %v", err)
	}

	if updated.Term != "DNA" {
		t.Errorf("Term should be untouched, got %q", updated.Term)
	}
	if updated.Definition != newDef {
		t.Errorf("Definition mismatch: got %q, want %q", updated.Definition, newDef)
	}
}

func TestIntegrationTermRepository_Update_WrongOwner(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := mustCreateUser(t, ctx, repo)
	intruder := mustCreateUser(t, ctx, repo)
	g := mustCreateGlossary(t, ctx, repo, owner.ID, "Biology")
	term := mustCreateTerm(t, ctx, repo, g.ID, owner.ID, "DNA", "Deoxyribonucleic acid")

	bad := "vandalized"
	_, err := repo.UpdateTerm(ctx, term.ID, intruder.ID, TermUpdate{Definition: &bad}, time.Now().UTC())
	if !errors.Is(err, ErrTermNotFound) {
		t.Fatalf("Expected ErrTermNotFound, got: %v", err)
	}
}

func TestIntegrationTermRepository_Delete(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := mustCreateUser(t, ctx, repo)
	intruder := mustCreateUser(t, ctx, repo)
	g := mustCreateGlossary(t, ctx, repo, owner.ID, "Biology")
	term := mustCreateTerm(t, ctx, repo, g.ID, owner.ID, "RNA", "Ribonucleic acid")

	if err := repo.DeleteTerm(ctx, term.ID, intruder.ID); !errors.Is(err, ErrTermNotFound) {
		t.Fatalf("Expected ErrTermNotFound for wrong owner, got: %v", err)
	}

	if err := repo.DeleteTerm(ctx, term.ID, owner.ID); err != nil {
		t.Fatalf("DeleteTerm failed: %v", err)
	}

	if err := repo.DeleteTerm(ctx, term.ID, owner.ID); !errors.Is(err, ErrTermNotFound) {
		t.Errorf("Expected ErrTermNotFound on second delete, got: %v", err)
	}
}

func TestIntegrationTermRepository_List_OrderAndWindow(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := mustCreateUser(t, ctx, repo)
	g := mustCreateGlossary(t, ctx, repo, owner.ID, "Biology")

	base := time.Now().UTC().Add(-time.Hour)
	names := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for i, name := range names {
		term := testutil.NewTestTerm(t, g.ID, name, "def "+name)
		term.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		term.UpdatedAt = term.CreatedAt
		if err := repo.CreateTerm(ctx, term, owner.ID); err != nil {
			t.Fatalf("CreateTerm %q failed: %v", name, err)
		}
	}

	page, err := repo.ListTerms(ctx, g.ID, 2, 2)
	if err != nil {
		t.Fatalf("ListTerms failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("Expected 2 terms, got %d", len(page))
	}
	if page[0].Term != "gamma" || page[1].Term != "delta" {
		t.Errorf("Window mismatch: got [%q, %q], want [gamma, delta]", page[0].Term, page[1].Term)
	}

	// Offset past the end yields an empty slice, not an error.
	empty, err := repo.ListTerms(ctx, g.ID, 10, 100)
	if err != nil {
		t.Fatalf("ListTerms (past end) failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty page past the end, got %d terms", len(empty))
	}
}

func TestIntegrationTermRepository_Search(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := mustCreateUser(t, ctx, repo)
	g := mustCreateGlossary(t, ctx, repo, owner.ID, "Biology")

	seed := []struct{ term, def string }{
		{"Cell", "The basic unit of life"},
		{"Mitochondria", "Powerhouse of the cell"},
		{"DNA", "Deoxyribonucleic acid"},
	}
	for _, s := range seed {
		mustCreateTerm(t, ctx, repo, g.ID, owner.ID, s.term, s.def)
	}

	// Case-insensitive, matches term or definition, ordered by term.
	results, err := repo.SearchTerms(ctx, g.ID, "cell")
	if err != nil {
		t.Fatalf("SearchTerms failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(results))
	}
	if results[0].Term != "Cell" || results[1].Term != "Mitochondria" {
		t.Errorf("Order mismatch: got [%q, %q]", results[0].Term, results[1].Term)
	}

	none, err := repo.SearchTerms(ctx, g.ID, "photosynthesis")
	if err != nil {
		t.Fatalf("SearchTerms (no match) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no matches, got %d", len(none))
	}
}

func TestIntegrationTermRepository_CascadeDelete(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := mustCreateUser(t, ctx, repo)
	g := mustCreateGlossary(t, ctx, repo, owner.ID, "Biology")
	mustCreateTerm(t, ctx, repo, g.ID, owner.ID, "Cell", "The basic unit of life")

	if err := repo.DeleteGlossary(ctx, g.ID, owner.ID); err != nil {
		t.Fatalf("DeleteGlossary failed: %v", err)
	}

	count, err := repo.CountTerms(ctx, g.ID)
	if err != nil {
		t.Fatalf("CountTerms failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Terms should cascade on glossary delete, got %d", count)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func mustCreateGlossary(t *testing.T, ctx context.Context, repo *Repository, ownerID, name string) *model.Glossary {
	t.Helper()
	g := testutil.NewTestGlossary(t, ownerID, name)
	if err := repo.CreateGlossary(ctx, g); err != nil {
		t.Fatalf("CreateGlossary failed: %v", err)
	}
	return g
}

func mustCreateTerm(t *testing.T, ctx context.Context, repo *Repository, glossaryID, ownerID, term, definition string) *model.Term {
	t.Helper()
	tm := testutil.NewTestTerm(t, glossaryID, term, definition)
	if err := repo.CreateTerm(ctx, tm, ownerID); err != nil {
		t.Fatalf("CreateTerm failed: %v", err)
	}
	return tm
}
