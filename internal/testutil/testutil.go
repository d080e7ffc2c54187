package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/termbase/termbase/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 730731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// migrationNames lists the migration files in apply order. ResetSchema
// tears them down in reverse so foreign keys never dangle.
var migrationNames = []string{
	"000001_users",
	"000002_sessions",
	"000003_glossaries",
}

// ResetSchema drops and recreates the full schema for tests.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for i := len(migrationNames) - 1; i >= 0; i-- {
		path := filepath.Join(root, "migrations", migrationNames[i]+".down.sql")
		sql, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read down migration %s: %w", migrationNames[i], err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply down migration %s: %w", migrationNames[i], err)
		}
	}

	for _, name := range migrationNames {
		path := filepath.Join(root, "migrations", name+".up.sql")
		sql, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read up migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply up migration %s: %w", name, err)
		}
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:           uuid.NewString(),
		Name:         "Test User",
		Email:        UniqueEmail("user"),
		PasswordHash: fmt.Sprintf("hash-%d", now.UnixNano()),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTestGlossary creates a test glossary owned by the given user.
func NewTestGlossary(t testing.TB, ownerID, name string) *model.Glossary {
	t.Helper()
	now := time.Now().UTC()
	return &model.Glossary{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		IsPublic:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestTerm creates a test term belonging to the given glossary.
func NewTestTerm(t testing.TB, glossaryID, term, definition string) *model.Term {
	t.Helper()
	now := time.Now().UTC()
	return &model.Term{
		ID:         uuid.NewString(),
		GlossaryID: glossaryID,
		Term:       term,
		Definition: definition,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
