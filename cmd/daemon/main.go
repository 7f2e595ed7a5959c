// SPDX-License-Identifier: MIT

// The daemon aggregates the 123TV program guide into the shared database and
// serves an operational API. It refreshes once at startup and on POST
// /api/refresh; recurring triggers belong to an external scheduler.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cabernetwork/provider-video-123tv/internal/api"
	"github.com/cabernetwork/provider-video-123tv/internal/cache"
	"github.com/cabernetwork/provider-video-123tv/internal/channels"
	"github.com/cabernetwork/provider-video-123tv/internal/config"
	"github.com/cabernetwork/provider-video-123tv/internal/jobs"
	"github.com/cabernetwork/provider-video-123tv/internal/log"
	"github.com/cabernetwork/provider-video-123tv/internal/metrics"
	"github.com/cabernetwork/provider-video-123tv/internal/store"
	"github.com/cabernetwork/provider-video-123tv/internal/tv123"
	"github.com/cabernetwork/provider-video-123tv/internal/version"
)

func main() {
	log.Configure(log.Config{})
	logger := log.WithComponent("daemon")

	logger.Info().
		Str("version", version.Version).
		Str("commit", version.Commit).
		Msg("starting")

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DataDir).Msg("create data dir")
	}

	db, err := store.Open(cfg.DBPath, store.DefaultConfig())
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer func() { _ = db.Close() }()

	deps := jobs.Deps{
		Config:   cfg,
		Fetcher:  tv123.New(cfg.BaseURL, tv123.Options{Timeout: cfg.FetchTimeout, RequestsPerSec: cfg.FetchRate}),
		Resolver: store.NewPrograms(db, cfg.Namespace),
		Channels: channels.NewDirectory(db, cfg.Namespace),
		Store:    store.NewGuide(db, cfg.Namespace),
		Metrics:  metrics.Recorder{},
	}

	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(cache.RedisConfig{
			Addr: cfg.RedisAddr,
			TTL:  cfg.FeedCacheTTL,
		}, log.WithComponent("cache"))
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, using run-scoped feed caches")
		} else {
			defer func() { _ = redisStore.Close() }()
			deps.NewPayloadStore = func() cache.PayloadStore { return redisStore }
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if status, err := jobs.Refresh(ctx, deps); err != nil {
		logger.Error().Err(err).Msg("initial refresh failed")
	} else {
		logger.Info().Int("programs", status.Programs).Msg("initial refresh done")
	}

	srv := api.NewServer(func(r *http.Request) (*jobs.Status, error) {
		return jobs.Refresh(r.Context(), deps)
	})
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown")
	}
}
