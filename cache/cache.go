package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a namespaced string cache on top of Redis. It backs the shared
// level of the gallery dimension resolver so probed image dimensions survive
// restarts and are visible to every server instance.
type Cache struct {
	Redis     redis.UniversalClient
	Namespace string
}

func NewCache(namespace string, client redis.UniversalClient) *Cache {
	return &Cache{
		Namespace: namespace,
		Redis:     client,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	cmd := c.Redis.Get(ctx, c.Namespace+":"+key)
	return cmd.Val(), cmd.Err()
}

func (c *Cache) Store(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.Redis.Set(ctx, c.Namespace+":"+key, value, ttl).Err()
}

func (c *Cache) Remove(ctx context.Context, key string) error {
	return c.Redis.Del(ctx, c.Namespace+":"+key).Err()
}

// Flush removes all keys in this namespace
func (c *Cache) Flush(ctx context.Context) error {
	keys := c.Redis.Keys(ctx, c.Namespace+":*")
	pl := c.Redis.Pipeline()
	for _, key := range keys.Val() {
		pl.Del(ctx, key)
	}
	_, err := pl.Exec(ctx)
	return err
}
