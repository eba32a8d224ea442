// Package cache provides a Redis-backed cache for generated alert narrations.
// Narrations are expensive to produce, so results are keyed by a digest of the
// assessment they describe and reused until they expire.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medrisk-server/internal/domain"
)

// NarrationCache wraps a Redis client with caching for narration text.
type NarrationCache struct {
	redis      *redis.Client
	defaultTTL time.Duration
}

// NewNarrationCache creates a new narration cache from configuration.
func NewNarrationCache(config domain.CacheConfig) (*NarrationCache, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = config.PoolSize
	opts.PoolTimeout = config.PoolTimeout
	opts.MaxRetries = config.MaxRetries

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := config.DefaultTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	return &NarrationCache{
		redis:      client,
		defaultTTL: ttl,
	}, nil
}

// CachedNarration represents a cached narration with metadata.
type CachedNarration struct {
	Text      string    `json:"text"`
	CachedAt  time.Time `json:"cached_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a cached narration by assessment digest.
// Returns the narration, whether it was found, and any error.
func (c *NarrationCache) Get(ctx context.Context, digest string) (string, bool, error) {
	key := narrationKey(digest)

	val, err := c.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil // Cache miss
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get narration cache: %w", err)
	}

	var cached CachedNarration
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		// Remove corrupted cache entry
		c.redis.Del(ctx, key)
		return "", false, nil
	}

	if time.Now().After(cached.ExpiresAt) {
		c.redis.Del(ctx, key)
		return "", false, nil
	}

	return cached.Text, true, nil
}

// Set caches a narration under an assessment digest.
func (c *NarrationCache) Set(ctx context.Context, digest, text string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	cached := CachedNarration{
		Text:      text,
		CachedAt:  time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}

	jsonData, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to marshal narration cache data: %w", err)
	}

	return c.redis.Set(ctx, narrationKey(digest), jsonData, ttl).Err()
}

// Invalidate removes the cached narration for an assessment digest.
func (c *NarrationCache) Invalidate(ctx context.Context, digest string) error {
	return c.redis.Del(ctx, narrationKey(digest)).Err()
}

// Ping checks if the Redis connection is alive.
func (c *NarrationCache) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *NarrationCache) Close() error {
	return c.redis.Close()
}

func narrationKey(digest string) string {
	return "narration:assessment:" + digest
}

// AssessmentDigest produces a stable digest for an assessment payload.
// Two byte-identical payloads always map to the same narration key.
func AssessmentDigest(payload []byte) string {
	hash := sha256.Sum256(payload)
	return fmt.Sprintf("%x", hash[:16])
}
