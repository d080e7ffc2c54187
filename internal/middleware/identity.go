package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/termbase/termbase/internal/auth"
	"github.com/termbase/termbase/internal/cache"
	"github.com/termbase/termbase/internal/model"
	"github.com/termbase/termbase/internal/repository"
)

// IdentityConfig holds configuration for the identity middleware.
type IdentityConfig struct {
	Logger   *slog.Logger
	Repo     *repository.Repository
	Cache    *cache.Cache
	CacheTTL time.Duration
}

// Identity resolves the bearer session token to a caller identity and
// attaches it to the request context - once per request, which is the
// only identity memoization in the process.
//
// It never rejects: a missing, malformed, expired, or unknown token
// leaves the request anonymous, and operations that need an identity
// fail with UNAUTHENTICATED in the service layer. Several operations
// (glossary.getById, term.list, term.search) are legitimately
// anonymous on public glossaries.
func Identity(cfg IdentityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" || !auth.ValidTokenFormat(token) {
				next.ServeHTTP(w, r)
				return
			}

			tokenHash := auth.HashToken(token)

			// Cache first
			identity, _ := cfg.Cache.GetIdentity(r.Context(), tokenHash)
			if identity != nil {
				ctx := auth.ContextWithIdentity(r.Context(), identity)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// Cache miss - hit the store
			session, user, err := cfg.Repo.GetSessionWithUser(r.Context(), token, time.Now().UTC())
			if err != nil {
				// Unknown or expired token resolves to anonymous. Store
				// errors also degrade to anonymous rather than failing
				// public reads; protected operations will still be denied.
				if cfg.Logger != nil && !isSessionMiss(err) {
					cfg.Logger.Error("identity resolution failed",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.String("error", err.Error()),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			identity = &model.Identity{
				UserID:    user.ID,
				SessionID: session.ID,
				Name:      user.Name,
				Email:     user.Email,
				Verified:  user.EmailVerified,
				CreatedAt: user.CreatedAt,
				UpdatedAt: user.UpdatedAt,
			}

			// Cache for the shorter of the configured TTL and the time
			// left on the session.
			ttl := cfg.CacheTTL
			if remaining := time.Until(session.ExpiresAt); remaining < ttl {
				ttl = remaining
			}
			_ = cfg.Cache.SetIdentity(r.Context(), tokenHash, identity, ttl)

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the session token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func isSessionMiss(err error) bool {
	return errors.Is(err, repository.ErrSessionNotFound)
}
