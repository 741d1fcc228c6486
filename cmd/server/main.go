package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/newsgpt/newsgpt-api/internal/api"
	"github.com/newsgpt/newsgpt-api/internal/api/cookies"
	"github.com/newsgpt/newsgpt-api/internal/api/handler"
	"github.com/newsgpt/newsgpt-api/internal/api/middleware"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
	"github.com/newsgpt/newsgpt-api/internal/core/service"
	mongoinfra "github.com/newsgpt/newsgpt-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/newsgpt/newsgpt-api/internal/infrastructure/db/redis"
	"github.com/newsgpt/newsgpt-api/internal/infrastructure/summarizer"
	"github.com/newsgpt/newsgpt-api/internal/pkg/config"
	"github.com/newsgpt/newsgpt-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "newsgpt-api"})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "newsgpt-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// run owns every resource with cleanup so that its defers complete before
// main decides the exit code.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	users := mongoinfra.NewUserRepository(db)
	articles := mongoinfra.NewArticleRepository(db)
	summaries := mongoinfra.NewSummaryRepository(db)
	for name, repo := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{"users": users, "articles": articles, "summaries": summaries} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("mongo indexes for %s: %w", name, err)
		}
	}

	// ── Redis (optional) ─────────────────────────────────────
	var (
		rdb      *redis.Client
		cache    ports.ReadCache
		denylist ports.TokenDenylist
	)
	if cfg.Cache.Enabled || cfg.Auth.DenylistEnabled {
		rdb, err = redisinfra.Connect(ctx, redisinfra.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without cache and token denylist")
		} else {
			defer func() { _ = rdb.Close() }()
			if cfg.Cache.Enabled {
				cache = redisinfra.NewPageCache(rdb, cfg.Cache.TTL)
			}
			if cfg.Auth.DenylistEnabled {
				denylist = redisinfra.NewTokenDenylist(rdb)
			}
		}
	}

	// ── Services ─────────────────────────────────────────────
	tokenOpts := []service.TokenOption{service.WithTokenLogger(log)}
	if denylist != nil {
		tokenOpts = append(tokenOpts, service.WithDenylist(denylist))
	}
	tokens, err := service.NewTokenService(service.TokenConfig{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	}, tokenOpts...)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	sum := newSummarizer(cfg.Summarizer, log)

	router := api.NewRouter(api.Dependencies{
		Log:          log,
		ExposeErrors: !cfg.IsProduction(),
		CORSOrigins:  cfg.CORSOrigins,
		Cookies:      cookies.NewPolicy(cfg.IsProduction()),
		Tokens:       tokens,
		Users:        users,
		Auth:         service.NewAuthService(users, tokens, log),
		Articles:     service.NewArticleService(articles, users, cache, log),
		Summaries:    service.NewSummaryService(summaries, users, sum, cache, log),
		Admin:        service.NewAdminService(users, articles, summaries, cache, log),
		AuthLimiter:  middleware.NewRateLimiter(rate.Limit(cfg.Auth.RateLimitRPS), cfg.Auth.RateLimitBurst),
		Health:       healthChecks(mongoClient, rdb),
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	}

	shutCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func newSummarizer(cfg config.SummarizerConfig, log zerolog.Logger) ports.Summarizer {
	if cfg.Mode == "mock" {
		log.Warn().Msg("using mock summarizer")
		return summarizer.Mock{}
	}
	return summarizer.NewHuggingFace(cfg.URL, cfg.Model, cfg.Token, cfg.Timeout)
}

func healthChecks(mc *mongo.Client, rdb *redis.Client) []handler.DependencyCheck {
	checks := []handler.DependencyCheck{{
		Name:     "mongodb",
		Required: true,
		Ping:     func(ctx context.Context) error { return mc.Ping(ctx, nil) },
	}}
	if rdb != nil {
		checks = append(checks, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	return checks
}
