package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptRepositoryAgainstRedis(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping redis test: REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	ctx := context.Background()
	repo := NewAttemptRepository(rdb)
	key := "test-" + uuid.NewString()
	defer repo.Reset(ctx, key)

	n, err := repo.Increment(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.Increment(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ttl, err := rdb.TTL(ctx, "notekeeper:attempts:"+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Reset(ctx, key))
	n, err = repo.Increment(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
