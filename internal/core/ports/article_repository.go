package ports

import (
	"context"
	"time"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

// ArticleFilter selects the articles a listing covers. An empty OwnerID
// means every owner (admin views).
type ArticleFilter struct {
	OwnerID    string
	PublicOnly bool
}

// ArticleRepository persists articles. Single-record operations are atomic
// per document; there is no cross-record transaction.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) (*domain.Article, error)
	// FindByID returns domain.ErrArticleNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	// List returns one page ordered by creation time plus the filter's total.
	List(ctx context.Context, filter ArticleFilter, q domain.PageQuery) ([]domain.Article, int64, error)
	// Update applies patch and stamps updatedAt on the article only while it
	// is still owned by ownerID, returning the stored result.
	Update(ctx context.Context, id, ownerID string, patch domain.ArticlePatch, updatedAt time.Time) (*domain.Article, error)
	// Delete removes the article; an empty ownerID skips the owner guard.
	Delete(ctx context.Context, id, ownerID string) error
	Count(ctx context.Context) (int64, error)
}
