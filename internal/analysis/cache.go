package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bizmodel-ai/backend/internal/models"
)

var ErrCacheMiss = errors.New("cache miss")

const cacheKeyPrefix = "bizmodel:fit:"

// Cache stores AI fit analyses keyed by the answers that produced them.
type Cache interface {
	Get(ctx context.Context, key string) (*models.BusinessFitAnalysis, error)
	Set(ctx context.Context, key string, v *models.BusinessFitAnalysis) error
}

// CacheKey hashes the answers. Identical answers map to the same key.
func CacheKey(a *models.QuizAnswers) string {
	data, _ := json.Marshal(a)
	sum := sha256.Sum256(data)
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// ── RedisCache ─────────────────────────────────────────────

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.BusinessFitAnalysis, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get cached analysis: %w", err)
	}

	var v models.BusinessFitAnalysis
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode cached analysis: %w", err)
	}
	return &v, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, v *models.BusinessFitAnalysis) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache analysis: %w", err)
	}
	return nil
}

// NopCache never hits. Used when no redis URL is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*models.BusinessFitAnalysis, error) {
	return nil, ErrCacheMiss
}

func (NopCache) Set(context.Context, string, *models.BusinessFitAnalysis) error { return nil }
