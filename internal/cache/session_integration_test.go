//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/termbase/termbase/internal/auth"
	"github.com/termbase/termbase/internal/model"
	"github.com/termbase/termbase/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	return ctx, c
}

func TestIntegrationCache_IdentityRoundTrip(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	hash := auth.HashToken("tbs_roundtrip")
	id := &model.Identity{
		UserID:    "user-1",
		SessionID: auth.NewSessionID(),
		Name:      "Ada",
		Email:     "ada@example.com",
	}

	if err := c.SetIdentity(ctx, hash, id, time.Minute); err != nil {
		t.Fatalf("SetIdentity failed: %v", err)
	}

	got, err := c.GetIdentity(ctx, hash)
	if err != nil {
		t.Fatalf("GetIdentity failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected cached identity, got nil")
	}
	if got.UserID != id.UserID || got.Email != id.Email {
		t.Errorf("Identity mismatch: got %+v, want %+v", got, id)
	}
}

func TestIntegrationCache_IdentityMiss(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	got, err := c.GetIdentity(ctx, auth.HashToken("tbs_never_stored"))
	if err != nil {
		t.Fatalf("GetIdentity failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected cache miss as nil, got %+v", got)
	}
}

func TestIntegrationCache_DeleteIdentity(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	hash := auth.HashToken("tbs_deleted")
	if err := c.SetIdentity(ctx, hash, &model.Identity{UserID: "user-2"}, time.Minute); err != nil {
		t.Fatalf("SetIdentity failed: %v", err)
	}
	if err := c.DeleteIdentity(ctx, hash); err != nil {
		t.Fatalf("DeleteIdentity failed: %v", err)
	}

	got, err := c.GetIdentity(ctx, hash)
	if err != nil {
		t.Fatalf("GetIdentity failed: %v", err)
	}
	if got != nil {
		t.Errorf("Identity should be gone after delete, got %+v", got)
	}
}

func TestIntegrationCache_RateLimitWindow(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	key := "authtest:" + auth.NewSessionID()
	for i := 0; i < 3; i++ {
		allowed, _, err := c.Allow(ctx, key, 3, time.Minute)
		if err != nil {
			t.Fatalf("Allow failed: %v", err)
		}
		if !allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}

	allowed, remaining, err := c.Allow(ctx, key, 3, time.Minute)
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if allowed {
		t.Error("Fourth request should be denied")
	}
	if remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", remaining)
	}
}
