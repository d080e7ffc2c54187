package auth

import (
	"context"

	"github.com/termbase/termbase/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// identityKey is the context key for the resolved caller identity.
const identityKey contextKey = "identity"

// ContextWithIdentity attaches a resolved Identity to the context.
// The identity middleware calls this at most once per request.
func ContextWithIdentity(ctx context.Context, id *model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the caller Identity from the context.
// Returns nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *model.Identity {
	id, ok := ctx.Value(identityKey).(*model.Identity)
	if !ok {
		return nil
	}
	return id
}

// UserIDFromContext is a convenience accessor for the caller's user ID.
// Returns empty string for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	id := IdentityFromContext(ctx)
	if id == nil {
		return ""
	}
	return id.UserID
}
