package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"github.com/techieonvacation/ex-earning/internal/domain"
)

const sectionsKey = "catalog:sections"

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "redis-sections",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, redis.Nil)
			},
		}),
	}
}

// RedisCache stores the section listing as one JSON value. Calls go through a
// circuit breaker so a dead Redis fails fast instead of adding latency to reads.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func (r *RedisCache) Get(ctx context.Context) ([]domain.SectionView, error) {
	data, err := r.breaker.Execute(func() ([]byte, error) {
		return r.client.Get(ctx, sectionsKey).Bytes()
	})
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var sections []domain.SectionView
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("unmarshal sections failed: %w", err)
	}
	return sections, nil
}

func (r *RedisCache) Set(ctx context.Context, sections []domain.SectionView) error {
	data, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("marshal sections failed: %w", err)
	}

	jitter := time.Duration(rand.Int63n(int64(r.baseTTL/5) + 1))
	_, err = r.breaker.Execute(func() ([]byte, error) {
		return nil, r.client.Set(ctx, sectionsKey, data, r.baseTTL+jitter).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context) error {
	_, err := r.breaker.Execute(func() ([]byte, error) {
		return nil, r.client.Del(ctx, sectionsKey).Err()
	})
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// State reports the breaker state name.
func (r *RedisCache) State() string {
	return r.breaker.State().String()
}
