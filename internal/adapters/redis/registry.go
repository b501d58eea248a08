package redisad

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stayhub/internal/adapters/observability"
)

const keyPrefix = "stayhub:confirmation:"

// Registry claims booking confirmation numbers so two bookings never share
// one. Claims expire after ttl.
type Registry struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *Registry {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), ttl)
}

func NewWithClient(c *redis.Client, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Registry{c: c, ttl: ttl}
}

// Reserve returns false when code is already claimed.
func (r *Registry) Reserve(ctx context.Context, code string) (bool, error) {
	ok, err := r.c.SetNX(ctx, keyPrefix+strings.ToUpper(code), time.Now().UTC().Format(time.RFC3339), r.ttl).Result()
	if err != nil {
		observability.ObserveRegistry("redis", "error")
		return false, err
	}
	if !ok {
		observability.ObserveRegistry("redis", "taken")
		return false, nil
	}
	observability.ObserveRegistry("redis", "reserved")
	return true, nil
}

func (r *Registry) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

func (r *Registry) Close() error { return r.c.Close() }
