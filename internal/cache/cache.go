package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL caps entries whose caller passes a non-positive TTL, so a
// forgotten expiry can never pin a stale snapshot forever.
const DefaultTTL = 15 * time.Minute

// Key builds a namespaced cache key, e.g. Key("user", email) -> "user:<email>".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Client wraps redis.Client but fails safe: connectivity errors behave as a
// cache miss, never as a request failure. The cache is an optimization on top
// of the database, not a dependency the request path may die on.
type Client struct {
	rdb *redis.Client
}

// New creates a fail-safe cache client for the given Redis instance.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get returns the stored value, or nil when the key is missing or Redis is
// unavailable. Callers cannot distinguish the two, which is the point.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors alike read as a miss
		return nil, nil
	}
	return val, nil
}

// Set stores value for ttl (DefaultTTL when ttl is not positive), swallowing
// Redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.rdb.Set(ctx, key, value, ttl)
	return nil
}

// Delete removes a key, swallowing Redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	c.rdb.Del(ctx, key)
	return nil
}
