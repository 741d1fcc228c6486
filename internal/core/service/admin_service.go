package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
)

// AdminService serves cross-user views and moderation. Listings here are
// never cached; deletes still invalidate the affected owner's pages.
type AdminService struct {
	users     ports.UserRepository
	articles  ports.ArticleRepository
	summaries ports.SummaryRepository
	cache     *readCache
	log       zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	articles ports.ArticleRepository,
	summaries ports.SummaryRepository,
	cache ports.ReadCache,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:     users,
		articles:  articles,
		summaries: summaries,
		cache:     newReadCache(cache, log),
		log:       log,
	}
}

func (s *AdminService) Stats(ctx context.Context) (*domain.Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	articles, err := s.articles.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	summaries, err := s.summaries.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count summaries: %w", err)
	}
	return &domain.Stats{UsersCount: users, ArticlesCount: articles, SummariesCount: summaries}, nil
}

func (s *AdminService) ListArticles(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Article], error) {
	q = q.Normalize(domain.DefaultAdminPageLimit)
	items, total, err := s.articles.List(ctx, ports.ArticleFilter{}, q)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return newPage(items, total, q), nil
}

func (s *AdminService) ListSummaries(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Summary], error) {
	q = q.Normalize(domain.DefaultAdminPageLimit)
	items, total, err := s.summaries.List(ctx, "", q)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return newPage(items, total, q), nil
}

func (s *AdminService) DeleteArticle(ctx context.Context, id string) error {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, id, ""); err != nil {
		return err
	}
	s.cache.invalidate(ctx, a.OwnerID, domain.KindArticles, id)
	s.log.Info().Str("article_id", id).Str("user_id", a.OwnerID).Msg("article removed by admin")
	return nil
}

func (s *AdminService) DeleteSummary(ctx context.Context, id string) error {
	sm, err := s.summaries.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.summaries.Delete(ctx, id, ""); err != nil {
		return err
	}
	s.cache.invalidate(ctx, sm.OwnerID, domain.KindSummaries, id)
	s.log.Info().Str("summary_id", id).Str("user_id", sm.OwnerID).Msg("summary removed by admin")
	return nil
}

// Promote grants the admin flag to userID. The caller must be an admin,
// except while no admin exists yet: then any identity may bootstrap one.
func (s *AdminService) Promote(ctx context.Context, callerID, userID string) error {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin {
		admins, err := s.users.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if admins > 0 {
			return domain.ErrNotAdmin
		}
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return domain.ErrInvalidUserID
		}
		return err
	}
	if err := s.users.SetAdmin(ctx, userID, true); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Str("by", callerID).Bool("bootstrap", !caller.IsAdmin).Msg("user promoted to admin")
	return nil
}
