package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techieonvacation/ex-earning/internal/domain"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client, 10*time.Minute), mr
}

func sampleSections() []domain.SectionView {
	return []domain.SectionView{
		{
			Section: domain.Section{ID: "s1", Title: "Top Viral Bundle", Order: 1, Status: domain.StatusActive},
			Products: []domain.Product{
				{ID: "p1", Title: "Premium Reels Bundle 2024", Price: 2999, SectionID: "s1", Order: 1},
			},
		},
	}
}

func TestGet_Miss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	sections, err := cache.Get(context.Background())

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, sections)
}

func TestSetThenGet(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, sampleSections()))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Top Viral Bundle", got[0].Title)
	require.Len(t, got[0].Products, 1)
	assert.Equal(t, 2999.0, got[0].Products[0].Price)
}

func TestSet_TTLWithJitter(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, cache.Set(context.Background(), sampleSections()))

	ttl := mr.TTL(sectionsKey)
	assert.GreaterOrEqual(t, ttl, 10*time.Minute)
	assert.LessOrEqual(t, ttl, 12*time.Minute)
}

func TestSet_Expires(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, sampleSections()))

	mr.FastForward(13 * time.Minute)

	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDelete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, sampleSections()))

	require.NoError(t, cache.Delete(ctx))

	assert.False(t, mr.Exists(sectionsKey))
	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGet_CorruptValue(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Set(sectionsKey, "not-json")

	_, err := cache.Get(context.Background())

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestBreaker_OpensAfterFailures(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()
	mr.Close()

	for i := 0; i < 5; i++ {
		_, err := cache.Get(ctx)
		require.Error(t, err)
	}

	assert.Equal(t, "open", cache.State())
}

func TestBreaker_MissesDoNotTrip(t *testing.T) {
	cache, _ := setupTestRedis(t)

	for i := 0; i < 10; i++ {
		_, err := cache.Get(context.Background())
		require.ErrorIs(t, err, ErrCacheMiss)
	}

	assert.Equal(t, "closed", cache.State())
}

func TestNop(t *testing.T) {
	var c SectionCache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleSections()))
	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.Delete(ctx))
}
