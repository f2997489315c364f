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

	"github.com/fridgechef/backend/config"
	httpDelivery "github.com/fridgechef/backend/internal/delivery/http"
	"github.com/fridgechef/backend/internal/domain"
	"github.com/fridgechef/backend/internal/infrastructure/cache"
	"github.com/fridgechef/backend/internal/infrastructure/fooddb"
	"github.com/fridgechef/backend/internal/infrastructure/logger"
	"github.com/fridgechef/backend/internal/infrastructure/storage"
	"github.com/fridgechef/backend/internal/infrastructure/youtube"
	"github.com/fridgechef/backend/internal/observability/metrics"
	"github.com/fridgechef/backend/internal/usecase"
	"go.uber.org/zap"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("starting fridgechef backend",
		zap.String("version", httpDelivery.Version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type),
		zap.String("journal", cfg.Journal.Type),
	)

	m, err := metrics.New()
	if err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Nutrition reference table
	entries, err := fooddb.Load(cfg.Nutrition.TablePath)
	if err != nil {
		return err
	}
	log.Info("food reference table loaded",
		zap.Int("entries", len(entries)),
		zap.String("path", cfg.Nutrition.TablePath),
	)

	estimator := usecase.NewNutritionEstimator(entries, log, m)
	ranker := usecase.NewVideoRanker(log, m)

	// Cache
	var videoCache domain.CacheRepository
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(startCtx, cfg.Cache.RedisURL, "fridgechef:")
		if err != nil {
			return err
		}
		defer redisCache.Close()
		videoCache = redisCache
	default:
		videoCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	log.Info("cache configured", zap.String("type", cfg.Cache.Type), zap.Duration("ttl", cfg.Cache.TTL))

	// Video search is optional; without a key the search endpoint reports 503
	var searcher domain.VideoSearcher
	if cfg.VideoSearchEnabled() {
		searcher = youtube.NewClient(youtube.Config{
			APIKey:            cfg.YouTube.APIKey,
			BaseURL:           cfg.YouTube.BaseURL,
			RegionCode:        cfg.YouTube.RegionCode,
			RelevanceLanguage: cfg.YouTube.RelevanceLanguage,
			RequestsPerSecond: cfg.YouTube.RequestsPerSecond,
			Burst:             cfg.YouTube.Burst,
			Timeout:           cfg.YouTube.Timeout,
			RetryCount:        cfg.YouTube.RetryCount,
		}, log)
		log.Info("youtube search enabled", zap.String("region", cfg.YouTube.RegionCode))
	} else {
		log.Warn("youtube api key not configured, video search disabled")
	}

	videos := usecase.NewVideoService(videoCache, searcher, ranker, usecase.VideoServiceConfig{
		CacheTTL:          cfg.Cache.TTL,
		DefaultMaxResults: cfg.Videos.MaxResults,
		QuerySuffix:       cfg.Videos.QuerySuffix,
		SearchPoolSize:    cfg.YouTube.SearchResults,
	}, log, m)

	// Journal storage
	var journalRepo domain.JournalRepository
	switch cfg.Journal.Type {
	case "mongo":
		mongoJournal, err := storage.NewMongoJournal(startCtx, cfg.Journal.MongoURI, cfg.Journal.Database, log)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := mongoJournal.Close(ctx); err != nil {
				log.Warn("failed to close mongo journal", zap.Error(err))
			}
		}()
		journalRepo = mongoJournal
	default:
		journalRepo = storage.NewMemoryJournal()
	}
	journal := usecase.NewJournalService(journalRepo, estimator, log)

	handler := httpDelivery.NewHandler(estimator, ranker, videos, journal, log)
	router := httpDelivery.SetupRouter(cfg, handler, log, m)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}
