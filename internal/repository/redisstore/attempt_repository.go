package redisstore

import (
	"context"
	"time"

	"notekeeper-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type AttemptRepository struct {
	rdb    *redis.Client
	prefix string
}

func NewAttemptRepository(rdb *redis.Client) contract.AttemptRepository {
	return &AttemptRepository{
		rdb:    rdb,
		prefix: "notekeeper:attempts:",
	}
}

func (r *AttemptRepository) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	var incr *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, r.prefix+key)
		pipe.ExpireNX(ctx, r.prefix+key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (r *AttemptRepository) Reset(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.prefix+key).Err()
}
