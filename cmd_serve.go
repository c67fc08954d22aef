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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpLayer "launchpilot/http"
	"launchpilot/repository"
	"launchpilot/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the projection HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	repo, closeRepo, err := buildRepository(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	cache, closeCache, err := buildCache(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	aiService := service.NewAIService(service.AIConfig{
		APIKey: cfg.OpenAI.APIKey,
		Model:  cfg.OpenAI.Model,
		APIURL: cfg.OpenAI.APIURL,
	}, logger)

	projectionService := service.NewProjectionService(repo, cache, aiService, logger,
		service.WithCacheTTL(cfg.CacheTTL))
	projectionHandler := httpLayer.NewProjectionHandler(projectionService, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      httpLayer.NewRouter(projectionHandler, rateLimiter, logger),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	case <-quit:
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", zap.Error(err))
	}

	logger.Info("server exited")
	return nil
}

func buildRepository(ctx context.Context) (repository.ProjectionRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("DATABASE_URL not set, storing projections in memory")
		return repository.NewProjectionRepositoryMemory(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := repository.NewPostgresPool(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewProjectionRepositoryPostgres(pool)
	if err := repo.EnsureSchema(connectCtx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("storing projections in PostgreSQL")
	return repo, pool.Close, nil
}

func buildCache(ctx context.Context) (repository.CacheRepository, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, caching projections in memory")
		return repository.NewMemoryCache(), func() {}, nil
	}

	cache := repository.NewRedisCache(repository.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		_ = cache.Close()
		return nil, nil, err
	}
	logger.Info("caching projections in Redis", zap.String("addr", cfg.Redis.Addr))
	return cache, func() { _ = cache.Close() }, nil
}
