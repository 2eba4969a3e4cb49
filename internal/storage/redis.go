package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/affine-affinity/internal/progress"
)

// Redis shares progress between several server instances.
// Keys are laid out as <prefix>:<profile>:<key>.
type Redis struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to the server at addr and checks it answers.
func OpenRedis(ctx context.Context, addr, prefix string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: cannot connect to redis at %s: %w", addr, err)
	}
	return NewRedis(client, prefix), nil
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "affinity"
	}
	return &Redis{client: client, prefix: prefix}
}

// Profile returns a backend scoped to one player.
func (r *Redis) Profile(name string) progress.Backend {
	return &redisProfile{r: r, name: name}
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(profile, key string) string {
	return r.prefix + ":" + profile + ":" + key
}

type redisProfile struct {
	r    *Redis
	name string
}

func (p *redisProfile) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := p.r.client.Get(ctx, p.r.key(p.name, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return v, true, nil
}

func (p *redisProfile) Set(ctx context.Context, key, value string) error {
	if err := p.r.client.Set(ctx, p.r.key(p.name, key), value, 0).Err(); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

func (p *redisProfile) Delete(ctx context.Context, key string) error {
	if err := p.r.client.Del(ctx, p.r.key(p.name, key)).Err(); err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}
