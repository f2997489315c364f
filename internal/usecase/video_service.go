package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fridgechef/backend/internal/domain"
	"github.com/fridgechef/backend/internal/observability/metrics"
	"go.uber.org/zap"
)

const (
	// maxVideoResults caps how many ranked videos a search may return
	maxVideoResults = 10
	// defaultSearchPool is how many candidates are fetched so ranking has a choice
	defaultSearchPool = 15
)

// VideoServiceConfig holds configuration for the video service
type VideoServiceConfig struct {
	CacheTTL          time.Duration
	DefaultMaxResults int
	QuerySuffix       string
	SearchPoolSize    int
}

// VideoService finds companion cooking videos for a recipe
type VideoService struct {
	cache             domain.CacheRepository
	searcher          domain.VideoSearcher
	ranker            *VideoRanker
	cacheTTL          time.Duration
	defaultMaxResults int
	querySuffix       string
	searchPool        int
	log               *zap.Logger
	metrics           *metrics.Metrics
}

// NewVideoService creates a new video service with dependencies.
// A nil searcher leaves the service in a disabled state.
func NewVideoService(
	cache domain.CacheRepository,
	searcher domain.VideoSearcher,
	ranker *VideoRanker,
	config VideoServiceConfig,
	log *zap.Logger,
	m *metrics.Metrics,
) *VideoService {
	if log == nil {
		log = zap.NewNop()
	}
	if ranker == nil {
		ranker = NewVideoRanker(log, m)
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	defaultMax := config.DefaultMaxResults
	if defaultMax <= 0 || defaultMax > maxVideoResults {
		defaultMax = 3
	}

	searchPool := config.SearchPoolSize
	if searchPool <= 0 {
		searchPool = defaultSearchPool
	}

	return &VideoService{
		cache:             cache,
		searcher:          searcher,
		ranker:            ranker,
		cacheTTL:          cacheTTL,
		defaultMaxResults: defaultMax,
		querySuffix:       strings.TrimSpace(config.QuerySuffix),
		searchPool:        searchPool,
		log:               log.Named("video-service"),
		metrics:           m,
	}
}

// SearchRecipeVideos searches the video platform for a recipe and ranks the results.
// Flow: check cache -> search platform -> rank eligible candidates -> cache -> return
func (s *VideoService) SearchRecipeVideos(
	ctx context.Context,
	recipeName string,
	ingredients []string,
	maxResults int,
) (*domain.VideoSearchResult, error) {
	recipeName = strings.TrimSpace(recipeName)
	if recipeName == "" {
		return nil, domain.ErrInvalidRequest
	}
	if s.searcher == nil {
		return nil, domain.ErrVideoSearchDisabled
	}

	if maxResults <= 0 {
		maxResults = s.defaultMaxResults
	}
	if maxResults > maxVideoResults {
		maxResults = maxVideoResults
	}

	ingredients = SanitizeIngredients(ingredients)
	cacheKey := s.generateCacheKey(recipeName, ingredients, maxResults)

	// Try cache first
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		cached.Source = "Cache"
		return cached, nil
	}

	query := s.buildSearchQuery(recipeName)
	poolSize := s.searchPool
	if poolSize < maxResults {
		poolSize = maxResults
	}

	start := time.Now()
	candidates, err := s.searcher.SearchVideos(ctx, query, poolSize)
	s.metrics.ObserveVideoSearch(err, time.Since(start))
	if err != nil {
		s.log.Warn("video search failed", zap.String("query", query), zap.Error(err))
		if errors.Is(err, domain.ErrVideoSearchFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrVideoSearchFailure, err)
	}

	result := &domain.VideoSearchResult{
		Query:  query,
		Videos: s.ranker.Rank(candidates, recipeName, ingredients, maxResults),
		Source: "YouTube",
	}

	s.log.Info("video search completed",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(result.Videos)),
	)

	// Caching failures must not fail the request
	if err := s.setInCache(ctx, cacheKey, result); err != nil {
		s.log.Warn("failed to cache video search", zap.String("key", cacheKey), zap.Error(err))
	}

	return result, nil
}

// buildSearchQuery appends the configured suffix unless the name already carries it
func (s *VideoService) buildSearchQuery(recipeName string) string {
	if s.querySuffix == "" {
		return recipeName
	}
	if strings.Contains(strings.ToLower(recipeName), strings.ToLower(s.querySuffix)) {
		return recipeName
	}
	return recipeName + " " + s.querySuffix
}

// generateCacheKey creates a normalized cache key.
// Format: "videos:{recipe}:{ingredient,ingredient}:{max}"
func (s *VideoService) generateCacheKey(recipeName string, ingredients []string, maxResults int) string {
	normalized := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		normalized = append(normalized, NormalizeText(ingredient))
	}
	return fmt.Sprintf("videos:%s:%s:%d", NormalizeText(recipeName), strings.Join(normalized, ","), maxResults)
}

// getFromCache retrieves a search result from cache
func (s *VideoService) getFromCache(ctx context.Context, key string) (*domain.VideoSearchResult, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	var result domain.VideoSearchResult
	err := s.cache.Get(ctx, key, &result)
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		s.log.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	s.metrics.ObserveCacheLookup(err == nil)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// setInCache stores a search result in cache
func (s *VideoService) setInCache(ctx context.Context, key string, result *domain.VideoSearchResult) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, key, result, s.cacheTTL)
}
