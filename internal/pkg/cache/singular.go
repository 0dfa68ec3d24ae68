package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

func NewSingular[T any](key string) *Singular[T] {
	return &Singular[T]{
		key: key,
		c:   cache.New(cache.NoExpiration, time.Minute*10),
	}
}

// Singular memoizes one in-process value.
type Singular[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	key string

	c *cache.Cache
}

func (c *Singular[T]) Get() (T, bool) {
	result, ok := c.c.Get(c.key)
	if !ok {
		var zero T
		return zero, false
	}
	return result.(T), true
}

func (c *Singular[T]) Set(value T, expire time.Duration) {
	c.c.Set(c.key, value, expire)
}

// MutexGetSet returns the cached value, or computes it with valueFunc when absent.
// Concurrent misses are serialized so valueFunc runs once per invalidation.
func (c *Singular[T]) MutexGetSet(valueFunc func() (T, error), expire time.Duration) (T, error) {
	if v, ok := c.Get(); ok {
		return v, nil
	}

	c.m.Lock()
	defer c.m.Unlock()
	if v, ok := c.Get(); ok {
		return v, nil
	}

	value, err := valueFunc()
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to get value from valueFunc() in MutexGetSet")
		return value, err
	}
	c.Set(value, expire)
	return value, nil
}

func (c *Singular[T]) Delete() {
	c.c.Flush()
}
