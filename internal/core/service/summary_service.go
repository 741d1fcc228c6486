package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
	"github.com/newsgpt/newsgpt-api/internal/pkg/metrics"
)

type SummaryService struct {
	repo       ports.SummaryRepository
	users      ports.UserRepository
	summarizer ports.Summarizer
	cache      *readCache
	log        zerolog.Logger
	now        func() time.Time
}

// NewSummaryService wires the summary use cases. cache may be nil.
func NewSummaryService(
	repo ports.SummaryRepository,
	users ports.UserRepository,
	summarizer ports.Summarizer,
	cache ports.ReadCache,
	log zerolog.Logger,
) *SummaryService {
	return &SummaryService{
		repo:       repo,
		users:      users,
		summarizer: summarizer,
		cache:      newReadCache(cache, log),
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create summarizes originalText and persists the pair. Nothing is stored
// unless the summarizer returns a non-empty result.
func (s *SummaryService) Create(ctx context.Context, ownerID, originalText string) (*domain.Summary, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if err := domain.ValidateSummaryText(originalText); err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := s.summarizer.Summarize(ctx, originalText)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty summary")
	}
	if err != nil {
		metrics.SummarizerDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		s.log.Error().Err(err).Str("user_id", ownerID).Msg("summarizer call failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrSummarizer, err)
	}
	metrics.SummarizerDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	created, err := s.repo.Create(ctx, &domain.Summary{
		OriginalText: originalText,
		SummaryText:  text,
		OwnerID:      ownerID,
		CreatedAt:    s.now(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", ownerID).Msg("failed to create summary")
		return nil, fmt.Errorf("create summary: %w", err)
	}

	s.cache.invalidate(ctx, ownerID, domain.KindSummaries, "")
	metrics.ResourcesCreatedTotal.WithLabelValues(string(domain.KindSummaries)).Inc()
	s.log.Info().Str("summary_id", created.ID).Str("user_id", ownerID).Msg("summary created")
	return created, nil
}

func (s *SummaryService) Get(ctx context.Context, id string) (*domain.Summary, error) {
	if sm, ok := cachedItem[domain.Summary](ctx, s.cache, domain.KindSummaries, id); ok {
		return sm, nil
	}
	sm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.storeItem(ctx, domain.KindSummaries, sm.ID, sm)
	return sm, nil
}

// ListByOwner pages through ownerID's summaries. Summaries have no
// visibility flag, so every viewer shares the same cached pages.
func (s *SummaryService) ListByOwner(ctx context.Context, ownerID string, q domain.PageQuery) (*domain.Page[domain.Summary], error) {
	if err := ensureUser(ctx, s.users, ownerID); err != nil {
		return nil, err
	}

	q = q.Normalize(domain.DefaultOwnerPageLimit)
	key := ports.PageKey{OwnerID: ownerID, Kind: domain.KindSummaries, Scope: domain.ScopeAll, Query: q}
	if page, ok := cachedPage[domain.Summary](ctx, s.cache, key); ok {
		return page, nil
	}

	items, total, err := s.repo.List(ctx, ownerID, q)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	page := newPage(items, total, q)
	s.cache.storePage(ctx, key, page)
	return page, nil
}

func (s *SummaryService) Delete(ctx context.Context, callerID, id string) error {
	sm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sm.OwnerID != callerID {
		return domain.ErrNotSummaryOwner
	}
	if err := s.repo.Delete(ctx, id, callerID); err != nil {
		return err
	}
	s.cache.invalidate(ctx, callerID, domain.KindSummaries, id)
	s.log.Info().Str("summary_id", id).Str("user_id", callerID).Msg("summary deleted")
	return nil
}
