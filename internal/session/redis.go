package session

import (
	"context"
	"time"

	"feedbackhub/internal/cache"
)

const sessionKeyPrefix = "session:"

// RedisBackend stores one browser session as a redis hash. All fields are
// written by a single HSET and removed by a single DEL.
type RedisBackend struct {
	cache *cache.Client
	id    string
	ttl   time.Duration
}

// Ensure RedisBackend implements Backend
var _ Backend = (*RedisBackend)(nil)

// NewRedisBackend binds a backend to the browser session id. ttl 0 keeps the
// session until it is cleared.
func NewRedisBackend(cache *cache.Client, id string, ttl time.Duration) *RedisBackend {
	return &RedisBackend{cache: cache, id: id, ttl: ttl}
}

func (b *RedisBackend) ID() string {
	return b.id
}

func (b *RedisBackend) key() string {
	return sessionKeyPrefix + b.id
}

func (b *RedisBackend) Load(ctx context.Context) (map[string]string, error) {
	return b.cache.HGetAll(ctx, b.key()), nil
}

// Save writes non-empty fields and drops empty ones so absent stays absent.
func (b *RedisBackend) Save(ctx context.Context, fields map[string]string) error {
	return b.cache.HSet(ctx, b.key(), fields, b.ttl)
}

func (b *RedisBackend) Clear(ctx context.Context) error {
	return b.cache.Delete(ctx, b.key())
}
