package memory

import (
	"context"
	"sync"
	"time"

	"notekeeper-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type AttemptRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewAttemptRepository() contract.AttemptRepository {
	// Entries carry their own window as expiration; purge every 10 minutes.
	c := cache.New(15*time.Minute, 10*time.Minute)
	return &AttemptRepository{
		cache: c,
	}
}

func (r *AttemptRepository) Increment(_ context.Context, key string, window time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.cache.Add(key, 1, window); err == nil {
		return 1, nil
	}
	n, err := r.cache.IncrementInt(key, 1)
	if err != nil {
		// expired between Add and IncrementInt
		r.cache.Set(key, 1, window)
		return 1, nil
	}
	return n, nil
}

func (r *AttemptRepository) Reset(_ context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}
