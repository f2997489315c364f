package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are stored serialized so memory and redis backends behave the same.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// VideoSearcher defines the interface for the video platform search API
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, maxResults int) ([]VideoCandidate, error)
}

// JournalRepository defines the interface for journal persistence
type JournalRepository interface {
	Save(ctx context.Context, entry *JournalEntry) error
	GetByID(ctx context.Context, id string) (*JournalEntry, error)
	List(ctx context.Context, limit int) ([]JournalEntry, error)
	Delete(ctx context.Context, id string) error
}
