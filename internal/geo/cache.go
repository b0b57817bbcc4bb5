package geo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"favornet/server/internal/models"

	"github.com/redis/go-redis/v9"
)

// AddressCache keeps geocoded addresses in Redis in front of another lookup
type AddressCache struct {
	client *redis.Client
	next   AddressLookup
	prefix string
	ttl    time.Duration
}

// NewAddressCache connects to redisURL and wraps next
func NewAddressCache(redisURL string, next AddressLookup, ttl time.Duration) (*AddressCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewAddressCacheWithClient(client, next, ttl), nil
}

// NewAddressCacheWithClient creates a cache from an existing Redis client
func NewAddressCacheWithClient(client *redis.Client, next AddressLookup, ttl time.Duration) *AddressCache {
	return &AddressCache{
		client: client,
		next:   next,
		prefix: "address:",
		ttl:    ttl,
	}
}

func (c *AddressCache) key(loc models.Location) string {
	return c.prefix + strconv.FormatFloat(loc.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(loc.Lng, 'f', 6, 64)
}

// Address serves from Redis when possible. Redis failures fall through to
// the wrapped lookup.
func (c *AddressCache) Address(ctx context.Context, loc models.Location) (string, error) {
	key := c.key(loc)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		slog.Warn("geo: address cache read failed", "key", key, "error", err)
	}

	address, err := c.next.Address(ctx, loc)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, address, c.ttl).Err(); err != nil {
		slog.Warn("geo: address cache write failed", "key", key, "error", err)
	}
	return address, nil
}

// Close closes the Redis connection
func (c *AddressCache) Close() error {
	return c.client.Close()
}

// Ping checks if Redis is reachable
func (c *AddressCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
