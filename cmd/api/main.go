// Package main is the entrypoint for the Termbase API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/termbase/termbase/internal/cache"
	"github.com/termbase/termbase/internal/config"
	"github.com/termbase/termbase/internal/handler"
	"github.com/termbase/termbase/internal/metrics"
	"github.com/termbase/termbase/internal/middleware"
	"github.com/termbase/termbase/internal/repository"
	"github.com/termbase/termbase/internal/server"
	"github.com/termbase/termbase/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	recorder := metrics.NewInMemory()

	accountService := service.NewAccountService(repo, cacheClient, cfg.SessionTTL, recorder)
	glossaryService := service.NewGlossaryService(repo, recorder)
	termService := service.NewTermService(repo, glossaryService, recorder)

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(recorder)
	accountHandler := handler.NewAccountHandler(accountService, logger)
	glossaryHandler := handler.NewGlossaryHandler(glossaryService, logger)
	termHandler := handler.NewTermHandler(termService, logger)

	r := setupRouter(routerDeps{
		base:       h,
		health:     healthHandler,
		metrics:    metricsHandler,
		accounts:   accountHandler,
		glossaries: glossaryHandler,
		terms:      termHandler,
		repo:       repo,
		cache:      cacheClient,
		cfg:        cfg,
		logger:     logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base       *handler.Handler
	health     *handler.HealthHandler
	metrics    *handler.MetricsHandler
	accounts   *handler.AccountHandler
	glossaries *handler.GlossaryHandler
	terms      *handler.TermHandler
	repo       *repository.Repository
	cache      *cache.Cache
	cfg        *config.Config
	logger     *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetCORSAllowedOrigins()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      d.cfg.IsDevelopment(),
		MaxRequestBodySize: d.cfg.MaxRequestBodySize,
	}))
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints (no auth required)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/metrics", d.metrics.Snapshot)

	// Root info endpoint
	r.Get("/", d.base.Root)

	identityCfg := middleware.IdentityConfig{
		Logger:   d.logger,
		Repo:     d.repo,
		Cache:    d.cache,
		CacheTTL: d.cfg.SessionCacheTTL,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  d.logger,
		Cache:   d.cache,
		Enabled: d.cfg.AuthRateLimitEnabled,
		Max:     d.cfg.AuthRateLimitMax,
		Window:  d.cfg.AuthRateLimitWindow,
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Identity resolves the bearer token once per request. It never
		// rejects; services decide what anonymous callers may do.
		r.Use(middleware.Identity(identityCfg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimitAuth(rateLimitCfg)).Post("/signup", d.accounts.SignUp)
			r.With(middleware.RateLimitAuth(rateLimitCfg)).Post("/signin", d.accounts.SignIn)
			r.Post("/signout", d.accounts.SignOut)
			r.Get("/me", d.accounts.Me)
		})

		r.Route("/rpc", func(r chi.Router) {
			r.Post("/glossary.create", d.glossaries.Create)
			r.Post("/glossary.listMine", d.glossaries.ListMine)
			r.Post("/glossary.getById", d.glossaries.GetByID)
			r.Post("/glossary.update", d.glossaries.Update)
			r.Post("/glossary.delete", d.glossaries.Delete)
			r.Post("/glossary.setSharing", d.glossaries.SetSharing)

			r.Post("/term.list", d.terms.List)
			r.Post("/term.create", d.terms.Create)
			r.Post("/term.update", d.terms.Update)
			r.Post("/term.delete", d.terms.Delete)
			r.Post("/term.search", d.terms.Search)
		})
	})

	// 404 and 405 handlers
	r.NotFound(d.base.NotFound)
	r.MethodNotAllowed(d.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
