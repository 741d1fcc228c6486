package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
	"github.com/newsgpt/newsgpt-api/internal/pkg/metrics"
)

// readCache wraps a ports.ReadCache so that no cache failure ever reaches the
// caller: errors are logged, counted and treated as a miss.
type readCache struct {
	cache ports.ReadCache
	log   zerolog.Logger
}

func newReadCache(cache ports.ReadCache, log zerolog.Logger) *readCache {
	return &readCache{cache: cache, log: log}
}

func (rc *readCache) failed(err error, op string, ev func(*zerolog.Event) *zerolog.Event) {
	metrics.CacheErrorsTotal.WithLabelValues(op).Inc()
	ev(rc.log.Warn().Err(err).Str("op", op)).Msg("cache unavailable, falling back to store")
}

func cachedPage[T any](ctx context.Context, rc *readCache, key ports.PageKey) (*domain.Page[T], bool) {
	if rc == nil || rc.cache == nil {
		return nil, false
	}
	kind := string(key.Kind)
	raw, ok, err := rc.cache.GetPage(ctx, key)
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(kind, "error").Inc()
		rc.failed(err, "get_page", func(e *zerolog.Event) *zerolog.Event {
			return e.Str("user_id", key.OwnerID).Str("kind", kind)
		})
		return nil, false
	}
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues(kind, "miss").Inc()
		return nil, false
	}

	var page domain.Page[T]
	if err := json.Unmarshal(raw, &page); err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(kind, "error").Inc()
		rc.log.Warn().Err(err).Str("kind", kind).Msg("discarding undecodable cache entry")
		return nil, false
	}
	metrics.CacheLookupsTotal.WithLabelValues(kind, "hit").Inc()
	return &page, true
}

func (rc *readCache) storePage(ctx context.Context, key ports.PageKey, page any) {
	if rc == nil || rc.cache == nil {
		return
	}
	raw, err := json.Marshal(page)
	if err != nil {
		rc.log.Warn().Err(err).Msg("encode cache page")
		return
	}
	if err := rc.cache.SetPage(ctx, key, raw); err != nil {
		rc.failed(err, "set_page", func(e *zerolog.Event) *zerolog.Event {
			return e.Str("user_id", key.OwnerID).Str("kind", string(key.Kind))
		})
	}
}

// invalidate drops every cached page of ownerID's kind listings and, when
// itemID is set, that record's single-item entry.
func (rc *readCache) invalidate(ctx context.Context, ownerID string, kind domain.ResourceKind, itemID string) {
	if rc == nil || rc.cache == nil {
		return
	}
	fields := func(e *zerolog.Event) *zerolog.Event {
		return e.Str("user_id", ownerID).Str("kind", string(kind))
	}
	if err := rc.cache.InvalidateOwner(ctx, ownerID, kind); err != nil {
		rc.failed(err, "invalidate", fields)
	} else {
		metrics.CacheInvalidationsTotal.WithLabelValues(string(kind)).Inc()
	}
	if itemID != "" {
		if err := rc.cache.DeleteItem(ctx, kind, itemID); err != nil {
			rc.failed(err, "delete_item", fields)
		}
	}
}

func cachedItem[T any](ctx context.Context, rc *readCache, kind domain.ResourceKind, id string) (*T, bool) {
	if rc == nil || rc.cache == nil {
		return nil, false
	}
	raw, ok, err := rc.cache.GetItem(ctx, kind, id)
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(string(kind), "error").Inc()
		rc.failed(err, "get_item", func(e *zerolog.Event) *zerolog.Event {
			return e.Str("kind", string(kind)).Str("id", id)
		})
		return nil, false
	}
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues(string(kind), "miss").Inc()
		return nil, false
	}
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		rc.log.Warn().Err(err).Str("kind", string(kind)).Msg("discarding undecodable cache entry")
		return nil, false
	}
	metrics.CacheLookupsTotal.WithLabelValues(string(kind), "hit").Inc()
	return &item, true
}

func (rc *readCache) storeItem(ctx context.Context, kind domain.ResourceKind, id string, item any) {
	if rc == nil || rc.cache == nil {
		return
	}
	raw, err := json.Marshal(item)
	if err != nil {
		rc.log.Warn().Err(err).Msg("encode cache item")
		return
	}
	if err := rc.cache.SetItem(ctx, kind, id, raw); err != nil {
		rc.failed(err, "set_item", func(e *zerolog.Event) *zerolog.Event {
			return e.Str("kind", string(kind)).Str("id", id)
		})
	}
}
