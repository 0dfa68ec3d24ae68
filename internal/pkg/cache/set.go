package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrNotFound = errors.New("cache: key not found")

func NewSet(client *redis.Client, prefix string) *Set {
	return &Set{
		client: client,
		prefix: prefix + ":",
	}
}

// Set is a msgpack encoded key space in redis under a common prefix.
type Set struct {
	client *redis.Client
	prefix string
}

func (c *Set) key(key string) string {
	return c.prefix + key
}

// Get decodes the value under key into dest. A missing key yields ErrNotFound.
func (c *Set) Get(ctx context.Context, key string, dest any) error {
	key = c.key(key)
	resp, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	} else if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to get value from redis")
		return err
	}
	err = msgpack.Unmarshal(resp, dest)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal value from msgpack from redis")
		return err
	}
	return nil
}

func (c *Set) Set(ctx context.Context, key string, value any, expire time.Duration) error {
	key = c.key(key)
	if l := log.Trace(); l.Enabled() {
		l.Str("key", key).Msg("setting value to redis")
	}
	b, err := msgpack.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal value with msgpack")
		return err
	}
	err = c.client.Set(ctx, key, b, expire).Err()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set value to redis")
		return err
	}
	return nil
}

func (c *Set) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.key(k)
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		log.Error().Err(err).Strs("keys", prefixed).Msg("failed to delete value from redis")
		return err
	}
	return nil
}
