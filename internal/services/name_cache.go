package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NameCache is a read-through cache for denormalized display names.
// A nil *NameCache is valid and falls straight through to the loader,
// so the rest of the service layer never branches on whether Redis is
// configured.
type NameCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func (c *NameCache) key(prefix string, id int64) string {
	return prefix + ":" + strconv.FormatInt(id, 10)
}

// Lookup resolves ids to names, consulting the cache first and loading
// only the misses. Cache failures degrade to a plain load; the database
// stays the source of truth.
func (c *NameCache) Lookup(ctx context.Context, prefix string, ids []int64, load func(context.Context, []int64) (map[int64]string, error)) (map[int64]string, error) {
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}
	if c == nil || c.RDB == nil {
		return load(ctx, ids)
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.key(prefix, id)
	}
	cached, err := c.RDB.MGet(ctx, keys...).Result()
	if err != nil {
		return load(ctx, ids)
	}

	names := make(map[int64]string, len(ids))
	var misses []int64
	for i, v := range cached {
		if s, ok := v.(string); ok {
			names[ids[i]] = s
		} else {
			misses = append(misses, ids[i])
		}
	}
	if len(misses) == 0 {
		return names, nil
	}

	loaded, err := load(ctx, misses)
	if err != nil {
		return nil, err
	}

	pipe := c.RDB.Pipeline()
	for id, name := range loaded {
		names[id] = name
		pipe.Set(ctx, c.key(prefix, id), name, c.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		// Stale cache beats a failed request.
		return names, nil
	}
	return names, nil
}

// Invalidate drops a cached name after a rename or delete.
func (c *NameCache) Invalidate(ctx context.Context, prefix string, id int64) error {
	if c == nil || c.RDB == nil {
		return nil
	}
	if err := c.RDB.Del(ctx, c.key(prefix, id)).Err(); err != nil {
		return fmt.Errorf("name cache invalidate: %w", err)
	}
	return nil
}
