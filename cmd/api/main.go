// Package main is the entrypoint for the PulseHub API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/pulsehub/pulsehub/internal/auth"
	"github.com/pulsehub/pulsehub/internal/cache"
	"github.com/pulsehub/pulsehub/internal/config"
	"github.com/pulsehub/pulsehub/internal/handler"
	"github.com/pulsehub/pulsehub/internal/middleware"
	"github.com/pulsehub/pulsehub/internal/repository"
	"github.com/pulsehub/pulsehub/internal/server"
	"github.com/pulsehub/pulsehub/internal/service"
)

func main() {
	ctx := context.Background()

	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("error", err.Error()),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL, cache.Options{
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err != nil {
		logger.Error("failed to connect to Redis",
			slog.String("error", err.Error()),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)

	pollService := service.NewPollService(repo, cacheClient, logger)
	accountService := service.NewAccountService(repo, sessions)
	postService := service.NewPostService(repo)
	taskService := service.NewTaskService(repo)

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	pollHandler := handler.NewPollHandler(pollService, logger)
	accountHandler := handler.NewAccountHandler(accountService, logger, cfg.IsProduction())
	postHandler := handler.NewPostHandler(postService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)

	r := setupRouter(routerDeps{
		base:     h,
		health:   healthHandler,
		polls:    pollHandler,
		accounts: accountHandler,
		posts:    postHandler,
		tasks:    taskHandler,
		sessions: sessions,
		cache:    cacheClient,
		cfg:      cfg,
		logger:   logger,
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
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
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
	base     *handler.Handler
	health   *handler.HealthHandler
	polls    *handler.PollHandler
	accounts *handler.AccountHandler
	posts    *handler.PostHandler
	tasks    *handler.TaskHandler
	sessions *auth.SessionManager
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(chimiddleware.RequestSize(deps.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	if origins := deps.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg.AllowedOrigins = origins
	}
	r.Use(middleware.CORS(corsCfg))

	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	r.Get("/", deps.base.Hello)

	authCfg := middleware.AuthConfig{
		Logger:   deps.logger,
		Sessions: deps.sessions,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:     deps.logger,
		Cache:      deps.cache,
		Enabled:    deps.cfg.RateLimitVoteEnabled,
		RatePerSec: deps.cfg.RateLimitVoteRPS,
		Burst:      deps.cfg.RateLimitVoteBurst,
	}

	r.Route("/polls", func(r chi.Router) {
		r.Post("/sign-up", deps.accounts.SignUp)
		r.Post("/sign-in", deps.accounts.SignIn)
		r.Get("/", deps.polls.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Post("/", deps.polls.Create)
			r.Get("/user", deps.accounts.Me)
			r.Get("/mine", deps.polls.ListMine)
			r.With(middleware.RateLimitVotes(rateLimitCfg)).
				Post("/vote/{pollID}/{optionID}", deps.polls.Vote)
		})
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", deps.posts.List)
		r.Post("/", deps.posts.Create)
		r.Put("/{id}", deps.posts.Update)
		r.Delete("/{id}", deps.posts.Delete)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", deps.tasks.List)
		r.Post("/", deps.tasks.Create)
		r.Put("/{id}", deps.tasks.Update)
		r.Delete("/{id}", deps.tasks.Delete)
	})

	return r
}

// redactURL removes credentials from a URL for safe logging.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}
	if u.User != nil {
		u.User = url.UserPassword("***", "***")
	}
	redacted := u.String()
	return strings.ReplaceAll(redacted, "%2A%2A%2A", "***")
}
