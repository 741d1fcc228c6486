package ports

import (
	"context"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

// PageKey identifies one cached listing page.
type PageKey struct {
	OwnerID string
	Kind    domain.ResourceKind
	Scope   domain.ListScope
	Query   domain.PageQuery
}

// ReadCache stores serialized listing pages and single records. Misses are
// reported as (nil, false, nil); any non-nil error means the cache itself is
// unhealthy and callers should fall back to the store.
type ReadCache interface {
	GetPage(ctx context.Context, key PageKey) ([]byte, bool, error)
	SetPage(ctx context.Context, key PageKey, value []byte) error
	// InvalidateOwner drops every cached page for ownerID+kind regardless of
	// scope, page, limit or sort.
	InvalidateOwner(ctx context.Context, ownerID string, kind domain.ResourceKind) error

	GetItem(ctx context.Context, kind domain.ResourceKind, id string) ([]byte, bool, error)
	SetItem(ctx context.Context, kind domain.ResourceKind, id string, value []byte) error
	DeleteItem(ctx context.Context, kind domain.ResourceKind, id string) error
}
