package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
)

const defaultCacheTTL = 600 * time.Second

// invalidateScript deletes an owner+kind index and every page key it lists in
// one atomic step, so a page written between the read and the delete of the
// index cannot be orphaned.
var invalidateScript = redis.NewScript(`
local keys = redis.call('SMEMBERS', KEYS[1])
for i = 1, #keys, 500 do
  redis.call('DEL', unpack(keys, i, math.min(i + 499, #keys)))
end
redis.call('DEL', KEYS[1])
return #keys
`)

// PageCache stores listing pages and single records as JSON blobs.
//
// Key formats:
//
//	user:<owner>:<kind>:<scope>:page:<p>:limit:<l>:sort:<asc|desc>
//	idx:user:<owner>:<kind>   (set of live page keys for invalidation)
//	item:<kind>:<id>
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache wraps client. A non-positive ttl falls back to ten minutes.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

func PageKey(k ports.PageKey) string {
	return fmt.Sprintf("user:%s:%s:%s:page:%d:limit:%d:sort:%s",
		k.OwnerID, k.Kind, k.Scope, k.Query.Page, k.Query.Limit, k.Query.Sort)
}

func indexKey(ownerID string, kind domain.ResourceKind) string {
	return fmt.Sprintf("idx:user:%s:%s", ownerID, kind)
}

func itemKey(kind domain.ResourceKind, id string) string {
	return fmt.Sprintf("item:%s:%s", kind, id)
}

func (c *PageCache) GetPage(ctx context.Context, k ports.PageKey) ([]byte, bool, error) {
	return c.get(ctx, PageKey(k))
}

// SetPage writes the page and registers it in the owner+kind index. The
// index TTL is refreshed so it always outlives its members.
func (c *PageCache) SetPage(ctx context.Context, k ports.PageKey, value []byte) error {
	key := PageKey(k)
	idx := indexKey(k.OwnerID, k.Kind)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, value, c.ttl)
		pipe.SAdd(ctx, idx, key)
		pipe.Expire(ctx, idx, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache set page: %w", err)
	}
	return nil
}

func (c *PageCache) InvalidateOwner(ctx context.Context, ownerID string, kind domain.ResourceKind) error {
	if err := invalidateScript.Run(ctx, c.client, []string{indexKey(ownerID, kind)}).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *PageCache) GetItem(ctx context.Context, kind domain.ResourceKind, id string) ([]byte, bool, error) {
	return c.get(ctx, itemKey(kind, id))
}

func (c *PageCache) SetItem(ctx context.Context, kind domain.ResourceKind, id string, value []byte) error {
	if err := c.client.Set(ctx, itemKey(kind, id), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set item: %w", err)
	}
	return nil
}

func (c *PageCache) DeleteItem(ctx context.Context, kind domain.ResourceKind, id string) error {
	if err := c.client.Del(ctx, itemKey(kind, id)).Err(); err != nil {
		return fmt.Errorf("cache delete item: %w", err)
	}
	return nil
}

func (c *PageCache) get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return b, true, nil
}
