package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

func newSummarySvc(sum *stubSummarizer) (*SummaryService, *stubSummaryRepo, *stubCache) {
	users := newStubUserRepo(&domain.User{ID: "A"}, &domain.User{ID: "B"})
	repo := newStubSummaryRepo()
	cache := newStubCache()
	svc := NewSummaryService(repo, users, sum, cache, zerolog.Nop())
	svc.now = tickingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return svc, repo, cache
}

func TestSummaryService_Create(t *testing.T) {
	sum := &stubSummarizer{}
	svc, repo, cache := newSummarySvc(sum)

	s, err := svc.Create(context.Background(), "A", "long text")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.SummaryText != "short: long text" || s.OwnerID != "A" {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 stored summary, got %d", len(repo.items))
	}
	if len(cache.invalid) != 1 || cache.invalid[0] != "A/summaries" {
		t.Fatalf("expected owner pages invalidated, got %v", cache.invalid)
	}
}

func TestSummaryService_Create_EmptyTextPersistsNothing(t *testing.T) {
	sum := &stubSummarizer{}
	svc, repo, _ := newSummarySvc(sum)

	for _, text := range []string{"", "   \n"} {
		_, err := svc.Create(context.Background(), "A", text)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Msg != "Text is required." {
			t.Fatalf("%q: expected 'Text is required.', got %v", text, err)
		}
	}
	if len(repo.items) != 0 || sum.calls != 0 {
		t.Fatalf("nothing should be persisted or summarized: items=%d calls=%d", len(repo.items), sum.calls)
	}
}

func TestSummaryService_Create_UpstreamFailure(t *testing.T) {
	for name, sum := range map[string]*stubSummarizer{
		"error": {err: errors.New("503 model loading")},
		"blank": {out: "   "},
	} {
		svc, repo, _ := newSummarySvc(sum)
		_, err := svc.Create(context.Background(), "A", "text")
		if !errors.Is(err, domain.ErrSummarizer) || !errors.Is(err, domain.ErrUpstream) {
			t.Fatalf("%s: expected ErrSummarizer, got %v", name, err)
		}
		if len(repo.items) != 0 {
			t.Fatalf("%s: partial record persisted", name)
		}
	}
}

func TestSummaryService_Create_UnknownOwner(t *testing.T) {
	svc, _, _ := newSummarySvc(&stubSummarizer{})
	if _, err := svc.Create(context.Background(), "ghost", "text"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSummaryService_Pagination(t *testing.T) {
	svc, repo, _ := newSummarySvc(&stubSummarizer{})
	ctx := context.Background()
	var created []*domain.Summary
	for i := 0; i < 8; i++ {
		s, err := svc.Create(ctx, "A", "text")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		created = append(created, s)
	}

	p1, _ := svc.ListByOwner(ctx, "A", domain.PageQuery{Page: 1, Limit: 3})
	p2, _ := svc.ListByOwner(ctx, "A", domain.PageQuery{Page: 2, Limit: 3})
	if len(p1.Items) != 3 || len(p2.Items) != 3 || p1.Total != 8 {
		t.Fatalf("unexpected page sizes: %d, %d (total %d)", len(p1.Items), len(p2.Items), p1.Total)
	}
	seen := map[string]bool{}
	for _, s := range append(p1.Items, p2.Items...) {
		if seen[s.ID] {
			t.Fatalf("pages overlap on %s", s.ID)
		}
		seen[s.ID] = true
	}
	if p1.Items[0].ID != created[7].ID || !p1.Items[0].CreatedAt.After(p1.Items[1].CreatedAt) {
		t.Fatalf("default order should be newest first, got %s", p1.Items[0].ID)
	}

	asc, _ := svc.ListByOwner(ctx, "A", domain.PageQuery{Page: 1, Limit: 3, Sort: domain.SortAsc})
	if asc.Items[0].ID != created[0].ID {
		t.Fatalf("asc should start with earliest summary, got %s", asc.Items[0].ID)
	}

	listsBefore := repo.lists
	again, _ := svc.ListByOwner(ctx, "A", domain.PageQuery{Page: 1, Limit: 3})
	if repo.lists != listsBefore || again.Items[0].ID != p1.Items[0].ID {
		t.Fatal("repeat query should be served from cache")
	}
}

func TestSummaryService_Delete(t *testing.T) {
	svc, repo, _ := newSummarySvc(&stubSummarizer{})
	ctx := context.Background()
	s, _ := svc.Create(ctx, "A", "text")

	if err := svc.Delete(ctx, "B", s.ID); !errors.Is(err, domain.ErrNotSummaryOwner) {
		t.Fatalf("expected ErrNotSummaryOwner, got %v", err)
	}
	if _, ok := repo.items[s.ID]; !ok {
		t.Fatal("forbidden delete removed the summary")
	}
	if err := svc.Delete(ctx, "A", s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "A", s.ID); !errors.Is(err, domain.ErrSummaryNotFound) {
		t.Fatalf("expected ErrSummaryNotFound, got %v", err)
	}
}
