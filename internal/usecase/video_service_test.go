package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fridgechef/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository.
// Values are stored as JSON like the real backends.
type MockCacheRepository struct {
	data     map[string][]byte
	getError error
	setError error
	getCalls int
	setCalls int
	lastTTL  time.Duration
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	m.getCalls++
	if m.getError != nil {
		return m.getError
	}
	raw, ok := m.data[key]
	if !ok {
		return domain.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalls++
	m.lastTTL = ttl
	if m.setError != nil {
		return m.setError
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockVideoSearcher is a mock implementation of domain.VideoSearcher
type MockVideoSearcher struct {
	results        []domain.VideoCandidate
	err            error
	calls          int
	lastQuery      string
	lastMaxResults int
}

func (m *MockVideoSearcher) SearchVideos(ctx context.Context, query string, maxResults int) ([]domain.VideoCandidate, error) {
	m.calls++
	m.lastQuery = query
	m.lastMaxResults = maxResults
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func searchFixture() []domain.VideoCandidate {
	return []domain.VideoCandidate{
		candidate("v1", "오늘 뭐 먹지 브이로그", true),
		candidate("v2", "김치찌개 황금레시피", true),
		candidate("v3", "김치찌개 끓이는 법", false),
		candidate("v4", "돼지고기 김치찌개", true),
	}
}

func TestVideoService_SearchRecipeVideos(t *testing.T) {
	t.Run("rejects empty recipe name", func(t *testing.T) {
		svc := NewVideoService(nil, &MockVideoSearcher{}, nil, VideoServiceConfig{}, nil, nil)
		_, err := svc.SearchRecipeVideos(context.Background(), "   ", nil, 3)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("disabled without searcher", func(t *testing.T) {
		svc := NewVideoService(nil, nil, nil, VideoServiceConfig{}, nil, nil)
		_, err := svc.SearchRecipeVideos(context.Background(), "김치찌개", nil, 3)
		assert.ErrorIs(t, err, domain.ErrVideoSearchDisabled)
	})

	t.Run("searches ranks and caches", func(t *testing.T) {
		cache := NewMockCacheRepository()
		searcher := &MockVideoSearcher{results: searchFixture()}
		svc := NewVideoService(cache, searcher, nil, VideoServiceConfig{
			CacheTTL:    time.Hour,
			QuerySuffix: "레시피",
		}, nil, nil)

		result, err := svc.SearchRecipeVideos(context.Background(), "김치찌개", []string{"김치", "돼지고기"}, 2)
		require.NoError(t, err)

		assert.Equal(t, "YouTube", result.Source)
		assert.Equal(t, "김치찌개 레시피", result.Query)
		assert.Equal(t, "김치찌개 레시피", searcher.lastQuery)
		assert.Equal(t, 15, searcher.lastMaxResults)
		assert.Equal(t, []string{"v4", "v2"}, videoIDs(result.Videos))
		assert.Equal(t, 1, cache.setCalls)
		assert.Equal(t, time.Hour, cache.lastTTL)

		cached, err := svc.SearchRecipeVideos(context.Background(), "김치찌개", []string{"김치", "돼지고기"}, 2)
		require.NoError(t, err)
		assert.Equal(t, "Cache", cached.Source)
		assert.Equal(t, videoIDs(result.Videos), videoIDs(cached.Videos))
		assert.Equal(t, 1, searcher.calls)
	})

	t.Run("does not repeat query suffix", func(t *testing.T) {
		searcher := &MockVideoSearcher{results: searchFixture()}
		svc := NewVideoService(nil, searcher, nil, VideoServiceConfig{QuerySuffix: "Recipe"}, nil, nil)

		result, err := svc.SearchRecipeVideos(context.Background(), "Bulgogi recipe", nil, 1)
		require.NoError(t, err)
		assert.Equal(t, "Bulgogi recipe", result.Query)
	})

	t.Run("defaults and caps max results", func(t *testing.T) {
		many := make([]domain.VideoCandidate, 0, 30)
		for i := 0; i < 30; i++ {
			many = append(many, candidate(fmt.Sprintf("v%d", i), "bibimbap", true))
		}
		searcher := &MockVideoSearcher{results: many}
		svc := NewVideoService(nil, searcher, nil, VideoServiceConfig{DefaultMaxResults: 4}, nil, nil)

		result, err := svc.SearchRecipeVideos(context.Background(), "bibimbap", nil, 0)
		require.NoError(t, err)
		assert.Len(t, result.Videos, 4)

		result, err = svc.SearchRecipeVideos(context.Background(), "bibimbap", nil, 50)
		require.NoError(t, err)
		assert.Len(t, result.Videos, maxVideoResults)
	})

	t.Run("wraps search failures", func(t *testing.T) {
		searcher := &MockVideoSearcher{err: errors.New("connection reset")}
		svc := NewVideoService(NewMockCacheRepository(), searcher, nil, VideoServiceConfig{}, nil, nil)

		_, err := svc.SearchRecipeVideos(context.Background(), "japchae", nil, 3)
		assert.ErrorIs(t, err, domain.ErrVideoSearchFailure)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("keeps already wrapped failures", func(t *testing.T) {
		wrapped := fmt.Errorf("%w: quota exceeded", domain.ErrVideoSearchFailure)
		searcher := &MockVideoSearcher{err: wrapped}
		svc := NewVideoService(nil, searcher, nil, VideoServiceConfig{}, nil, nil)

		_, err := svc.SearchRecipeVideos(context.Background(), "japchae", nil, 3)
		assert.Equal(t, wrapped, err)
	})

	t.Run("cache errors do not fail the request", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.getError = domain.ErrCacheUnavailable
		cache.setError = domain.ErrCacheUnavailable
		searcher := &MockVideoSearcher{results: searchFixture()}
		svc := NewVideoService(cache, searcher, nil, VideoServiceConfig{}, nil, nil)

		result, err := svc.SearchRecipeVideos(context.Background(), "김치찌개", nil, 3)
		require.NoError(t, err)
		assert.Equal(t, "YouTube", result.Source)
		assert.Equal(t, 1, cache.getCalls)
		assert.Equal(t, 1, cache.setCalls)
	})

	t.Run("empty search results", func(t *testing.T) {
		searcher := &MockVideoSearcher{results: nil}
		svc := NewVideoService(nil, searcher, nil, VideoServiceConfig{}, nil, nil)

		result, err := svc.SearchRecipeVideos(context.Background(), "naengmyeon", nil, 3)
		require.NoError(t, err)
		assert.NotNil(t, result.Videos)
		assert.Empty(t, result.Videos)
	})
}

func TestVideoService_GenerateCacheKey(t *testing.T) {
	svc := NewVideoService(nil, nil, nil, VideoServiceConfig{}, nil, nil)

	a := svc.generateCacheKey("Kimchi-Jjigae", []string{"Pork Belly", "kimchi"}, 3)
	b := svc.generateCacheKey("kimchi jjigae", []string{"pork belly", "KIMCHI"}, 3)
	c := svc.generateCacheKey("kimchi jjigae", []string{"pork belly", "kimchi"}, 5)

	assert.Equal(t, "videos:kimchi jjigae:pork belly,kimchi:3", a)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
