package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
	"github.com/newsgpt/newsgpt-api/internal/pkg/metrics"
)

type ArticleService struct {
	repo  ports.ArticleRepository
	users ports.UserRepository
	cache *readCache
	log   zerolog.Logger
	now   func() time.Time
}

// NewArticleService wires the article use cases. cache may be nil.
func NewArticleService(repo ports.ArticleRepository, users ports.UserRepository, cache ports.ReadCache, log zerolog.Logger) *ArticleService {
	return &ArticleService{
		repo:  repo,
		users: users,
		cache: newReadCache(cache, log),
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *ArticleService) Create(ctx context.Context, ownerID string, in domain.ArticleInput) (*domain.Article, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.Article{
		Title:      in.Title,
		Body:       in.Body,
		Source:     in.Source,
		Visibility: in.Visibility,
		OwnerID:    ownerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", ownerID).Msg("failed to create article")
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.cache.invalidate(ctx, ownerID, domain.KindArticles, "")
	metrics.ResourcesCreatedTotal.WithLabelValues(string(domain.KindArticles)).Inc()
	s.log.Info().Str("article_id", created.ID).Str("user_id", ownerID).Msg("article created")
	return created, nil
}

// Get returns any article by id; single reads are not ownership-scoped.
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	if a, ok := cachedItem[domain.Article](ctx, s.cache, domain.KindArticles, id); ok {
		return a, nil
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.storeItem(ctx, domain.KindArticles, a.ID, a)
	return a, nil
}

func (s *ArticleService) ListByOwner(ctx context.Context, viewerID, ownerID string, q domain.PageQuery) (*domain.Page[domain.Article], error) {
	if err := ensureUser(ctx, s.users, ownerID); err != nil {
		return nil, err
	}

	q = q.Normalize(domain.DefaultOwnerPageLimit)
	filter := ports.ArticleFilter{OwnerID: ownerID}
	scope := domain.ScopeAll
	if viewerID != ownerID {
		filter.PublicOnly = true
		scope = domain.ScopePublic
	}
	key := ports.PageKey{OwnerID: ownerID, Kind: domain.KindArticles, Scope: scope, Query: q}

	if page, ok := cachedPage[domain.Article](ctx, s.cache, key); ok {
		return page, nil
	}

	items, total, err := s.repo.List(ctx, filter, q)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	page := newPage(items, total, q)
	s.cache.storePage(ctx, key, page)
	return page, nil
}

// Update merge-patches an article the caller owns. Existence and ownership
// are checked before the patch is looked at.
func (s *ArticleService) Update(ctx context.Context, callerID, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	if _, err := s.owned(ctx, callerID, id); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.Invalid("Nothing to update.")
	}
	if err := patch.Normalize(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, callerID, patch, s.now())
	if err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, callerID, domain.KindArticles, id)
	s.log.Info().Str("article_id", id).Str("user_id", callerID).Msg("article updated")
	return updated, nil
}

func (s *ArticleService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.owned(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, callerID); err != nil {
		return err
	}
	s.cache.invalidate(ctx, callerID, domain.KindArticles, id)
	s.log.Info().Str("article_id", id).Str("user_id", callerID).Msg("article deleted")
	return nil
}

// owned loads the article straight from the store and checks ownership.
func (s *ArticleService) owned(ctx context.Context, callerID, id string) (*domain.Article, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.OwnerID != callerID {
		return nil, domain.ErrNotArticleOwner
	}
	return a, nil
}

// ensureUser distinguishes a malformed owner id (400) from an unknown one (404).
func ensureUser(ctx context.Context, users ports.UserRepository, id string) error {
	_, err := users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrInvalidID) {
		return domain.ErrInvalidUserID
	}
	return err
}

func newPage[T any](items []T, total int64, q domain.PageQuery) *domain.Page[T] {
	if items == nil {
		items = []T{}
	}
	return &domain.Page[T]{Items: items, Total: total, Page: q.Page, Limit: q.Limit}
}
