package ports

import (
	"context"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

// SummaryRepository persists summaries. There is deliberately no update.
type SummaryRepository interface {
	Create(ctx context.Context, s *domain.Summary) (*domain.Summary, error)
	// FindByID returns domain.ErrSummaryNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Summary, error)
	// List pages through ownerID's summaries, or all summaries when ownerID is empty.
	List(ctx context.Context, ownerID string, q domain.PageQuery) ([]domain.Summary, int64, error)
	// Delete removes the summary; an empty ownerID skips the owner guard.
	Delete(ctx context.Context, id, ownerID string) error
	Count(ctx context.Context) (int64, error)
}
