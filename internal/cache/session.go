package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/termbase/termbase/internal/model"
)

// sessionCachePrefix is the Redis key prefix for resolved sessions.
// Keys are SHA-256 hashes of the bearer token, never the token itself.
const sessionCachePrefix = "session:identity:"

// cachedIdentity is the Redis representation of a resolved session.
type cachedIdentity struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetIdentity retrieves a cached identity by token hash.
// Returns nil on cache miss; a miss is not an error.
func (c *Cache) GetIdentity(ctx context.Context, tokenHash string) (*model.Identity, error) {
	data, err := c.client.Get(ctx, sessionCachePrefix+tokenHash).Bytes()
	if err != nil {
		return nil, nil //nolint:nilerr
	}

	var cached cachedIdentity
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.Identity{
		UserID:    cached.UserID,
		SessionID: cached.SessionID,
		Name:      cached.Name,
		Email:     cached.Email,
		Verified:  cached.Verified,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}, nil
}

// SetIdentity caches a resolved identity under the token hash.
// TTL must not outlive the session expiry; callers clamp it.
func (c *Cache) SetIdentity(ctx context.Context, tokenHash string, id *model.Identity, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	cached := cachedIdentity{
		UserID:    id.UserID,
		SessionID: id.SessionID,
		Name:      id.Name,
		Email:     id.Email,
		Verified:  id.Verified,
		CreatedAt: id.CreatedAt,
		UpdatedAt: id.UpdatedAt,
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, sessionCachePrefix+tokenHash, data, ttl).Err()
}

// DeleteIdentity drops a cached identity. Called on sign-out so a
// revoked session stops resolving immediately.
func (c *Cache) DeleteIdentity(ctx context.Context, tokenHash string) error {
	return c.client.Del(ctx, sessionCachePrefix+tokenHash).Err()
}
