package fiberstore

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is a fiber.Storage over plain prefixed keys so entries can expire
// individually.
type Redis struct {
	Client *redis.Client
	Prefix string
}

var _ fiber.Storage = &Redis{}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{
		Client: client,
		Prefix: prefix,
	}
}

func (r *Redis) key(k string) string {
	return r.Prefix + ":" + k
}

// Close is a no-op: the client is shared with the rest of the app.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) Delete(key string) error {
	return r.Client.Del(context.Background(), r.key(key)).Err()
}

// Get returns nil without an error for a missing key, as fiber expects.
func (r *Redis) Get(key string) ([]byte, error) {
	val, err := r.Client.Get(context.Background(), r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

func (r *Redis) Reset() error {
	ctx := context.Background()
	iter := r.Client.Scan(ctx, 0, r.Prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *Redis) Set(key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}
	return r.Client.Set(context.Background(), r.key(key), val, exp).Err()
}
