package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/termbase/termbase/internal/cache"
)

// RateLimitConfig holds configuration for the credential rate limiter.
type RateLimitConfig struct {
	Logger *slog.Logger
	Cache  *cache.Cache

	// Enabled toggles the limiter without unwiring it.
	Enabled bool
	// Max requests per client IP per window.
	Max int
	// Window is the fixed-window duration.
	Window time.Duration
}

// RateLimitAuth limits sign-in/sign-up attempts per client IP to slow
// credential stuffing. Fails open on Redis errors: losing the counter
// must not lock every user out.
func RateLimitAuth(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			key := "auth:" + clientIP(r)
			allowed, remaining, err := cfg.Cache.Allow(r.Context(), key, cfg.Max, cfg.Window)
			if err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Warn("rate limiter unavailable, failing open",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.String("error", err.Error()),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Max))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				if cfg.Logger != nil {
					cfg.Logger.Warn("rate limit exceeded",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.String("ip", clientIP(r)),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
					)
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":"RATE_LIMITED","message":"Too many attempts, try again later"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. RealIP middleware has
// already rewritten it from forwarding headers where applicable.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
