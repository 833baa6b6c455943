package cache

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		Protocol: 2, // Connection protocol
	})

	return &Redis{client: client}, nil
}

func (r *Redis) Set(ctx context.Context, k string, v []byte, ttl time.Duration) error {
	return r.client.Set(ctx, k, v, ttl).Err()
}

func (r *Redis) Get(ctx context.Context, k string) ([]byte, error) {
	res := r.client.Get(ctx, k)
	if errors.Is(res.Err(), redis.Nil) {
		return nil, ErrCacheMiss
	}
	if res.Err() != nil {
		return nil, res.Err()
	}
	return res.Bytes()
}

func (r *Redis) Delete(ctx context.Context, k string) error {
	return r.client.Del(ctx, k).Err()
}
