package bootcamps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cacheVersionKey = "bootcamps:version"

// Cache wraps Redis based caching of list pages with versioning controls.
// Every write to the collection bumps the version, orphaning stale pages.
// A nil Cache (or nil client) degrades to pass-through.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	fills  singleflight.Group
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// FetchJSON loads a cached value or populates it using the loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return reencode(value, dest)
	}

	ver, err := c.version(ctx)
	if err != nil {
		return err
	}
	versioned := fmt.Sprintf("%s:%d", key, ver)

	raw, err := c.client.Get(ctx, versioned).Bytes()
	if err == nil {
		return json.Unmarshal(raw, dest)
	}
	if err != redis.Nil {
		return err
	}

	encoded, err := c.fill(ctx, versioned, loader)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, dest)
}

// fill runs the loader and stores the result, collapsing concurrent misses
// on the same key into a single load.
func (c *Cache) fill(ctx context.Context, versioned string, loader func(context.Context) (any, error)) ([]byte, error) {
	resultChan := c.fills.DoChan(versioned, func() (any, error) {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, versioned, encoded, c.ttl).Err(); err != nil {
			return nil, err
		}
		return encoded, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Bump invalidates every cached page by advancing the version.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

func reencode(value, dest any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, dest)
}
