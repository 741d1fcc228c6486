package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

type articleFixture struct {
	svc   *ArticleService
	repo  *stubArticleRepo
	cache *stubCache
}

func newArticleFixture() articleFixture {
	users := newStubUserRepo(&domain.User{ID: "A", Username: "alice"}, &domain.User{ID: "B", Username: "bob"})
	repo := newStubArticleRepo()
	cache := newStubCache()
	svc := NewArticleService(repo, users, cache, zerolog.Nop())
	svc.now = tickingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return articleFixture{svc: svc, repo: repo, cache: cache}
}

func (f articleFixture) create(t *testing.T, owner, title string, vis domain.Visibility) *domain.Article {
	t.Helper()
	a, err := f.svc.Create(context.Background(), owner, domain.ArticleInput{Title: title, Body: "B", Visibility: vis})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return a
}

func TestArticleService_Scenario(t *testing.T) {
	f := newArticleFixture()
	ctx := context.Background()

	a := f.create(t, "A", "T", domain.VisibilityPublic)

	got, err := f.svc.Get(ctx, a.ID)
	if err != nil || got.OwnerID != "A" {
		t.Fatalf("Get: %+v, %v", got, err)
	}

	title := "hijack"
	if _, err := f.svc.Update(ctx, "B", a.ID, domain.ArticlePatch{Title: &title}); !errors.Is(err, domain.ErrNotArticleOwner) {
		t.Fatalf("expected ErrNotArticleOwner, got %v", err)
	}
	if f.repo.items[a.ID].Title != "T" {
		t.Fatal("forbidden update modified the article")
	}
	if err := f.svc.Delete(ctx, "B", a.ID); !errors.Is(err, domain.ErrNotArticleOwner) {
		t.Fatalf("expected ErrNotArticleOwner on delete, got %v", err)
	}

	if err := f.svc.Delete(ctx, "A", a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.svc.Get(ctx, a.ID); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound after delete, got %v", err)
	}
}

func TestArticleService_Create_Validation(t *testing.T) {
	f := newArticleFixture()
	_, err := f.svc.Create(context.Background(), "A", domain.ArticleInput{Title: "only title"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.repo.items) != 0 {
		t.Fatal("invalid article was persisted")
	}
}

func TestArticleService_Update_MergePatch(t *testing.T) {
	f := newArticleFixture()
	a := f.create(t, "A", "Title", domain.VisibilityPrivate)

	pub := domain.VisibilityPublic
	updated, err := f.svc.Update(context.Background(), "A", a.ID, domain.ArticlePatch{Visibility: &pub})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Title" || updated.Body != "B" || updated.Visibility != domain.VisibilityPublic {
		t.Fatalf("unexpected merge result: %+v", updated)
	}
	if !updated.UpdatedAt.After(a.UpdatedAt) {
		t.Fatalf("updatedAt not refreshed: %v -> %v", a.UpdatedAt, updated.UpdatedAt)
	}
	if updated.OwnerID != "A" {
		t.Fatal("owner changed on update")
	}

	if _, err := f.svc.Update(context.Background(), "A", "missing", domain.ArticlePatch{}); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
	if _, err := f.svc.Update(context.Background(), "A", "bad-id", domain.ArticlePatch{}); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestArticleService_Update_OwnershipBeforePatchValidation(t *testing.T) {
	f := newArticleFixture()
	a := f.create(t, "A", "Title", domain.VisibilityPrivate)
	blank := ""

	if _, err := f.svc.Update(context.Background(), "B", a.ID, domain.ArticlePatch{Title: &blank}); !errors.Is(err, domain.ErrNotArticleOwner) {
		t.Fatalf("expected ErrNotArticleOwner, got %v", err)
	}
	if _, err := f.svc.Update(context.Background(), "B", a.ID, domain.ArticlePatch{}); !errors.Is(err, domain.ErrNotArticleOwner) {
		t.Fatalf("expected ErrNotArticleOwner for empty patch, got %v", err)
	}
	if _, err := f.svc.Update(context.Background(), "A", "missing", domain.ArticlePatch{Title: &blank}); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}

	stored := f.repo.items[a.ID]
	if stored.Title != "Title" || !stored.UpdatedAt.Equal(a.UpdatedAt) {
		t.Fatalf("article changed by rejected update: %+v", stored)
	}
}

func TestArticleService_Update_EmptyPatch(t *testing.T) {
	f := newArticleFixture()
	a := f.create(t, "A", "Title", domain.VisibilityPrivate)

	_, err := f.svc.Update(context.Background(), "A", a.ID, domain.ArticlePatch{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	blank := " "
	if _, err := f.svc.Update(context.Background(), "A", a.ID, domain.ArticlePatch{Title: &blank}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank title, got %v", err)
	}
}

func TestArticleService_ListByOwner_CacheCoherence(t *testing.T) {
	f := newArticleFixture()
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		f.create(t, "A", "t", domain.VisibilityPrivate)
	}

	q := domain.PageQuery{Page: 2, Limit: 3, Sort: domain.SortAsc}
	first, err := f.svc.ListByOwner(ctx, "A", "A", q)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	second, _ := f.svc.ListByOwner(ctx, "A", "A", q)
	if f.repo.lists != 1 {
		t.Fatalf("expected second call served from cache, store hit %d times", f.repo.lists)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached page differs:\n%+v\n%+v", first, second)
	}
	if first.Total != 7 || len(first.Items) != 3 || first.Page != 2 || first.Limit != 3 {
		t.Fatalf("unexpected page: %+v", first)
	}

	f.create(t, "A", "t", domain.VisibilityPrivate)
	third, _ := f.svc.ListByOwner(ctx, "A", "A", q)
	if third.Total != 8 {
		t.Fatalf("stale cache after create: total %d", third.Total)
	}

	if err := f.svc.Delete(ctx, "A", third.Items[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	fourth, _ := f.svc.ListByOwner(ctx, "A", "A", q)
	if fourth.Total != 7 {
		t.Fatalf("stale cache after delete: total %d", fourth.Total)
	}
}

func TestArticleService_ListByOwner_VisibilityScope(t *testing.T) {
	f := newArticleFixture()
	ctx := context.Background()
	f.create(t, "A", "public", domain.VisibilityPublic)
	f.create(t, "A", "private", domain.VisibilityPrivate)

	own, _ := f.svc.ListByOwner(ctx, "A", "A", domain.PageQuery{})
	if own.Total != 2 {
		t.Fatalf("owner should see both articles, got %d", own.Total)
	}
	other, _ := f.svc.ListByOwner(ctx, "B", "A", domain.PageQuery{})
	if other.Total != 1 || other.Items[0].Visibility != domain.VisibilityPublic {
		t.Fatalf("non-owner saw private articles: %+v", other)
	}
	if own.Limit != domain.DefaultOwnerPageLimit || own.Page != 1 {
		t.Fatalf("unexpected defaults: %+v", own)
	}
}

func TestArticleService_ListByOwner_OwnerErrors(t *testing.T) {
	f := newArticleFixture()
	if _, err := f.svc.ListByOwner(context.Background(), "A", "bad-owner", domain.PageQuery{}); !errors.Is(err, domain.ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
	if _, err := f.svc.ListByOwner(context.Background(), "A", "Z", domain.PageQuery{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestArticleService_CacheOutageFallsBackToStore(t *testing.T) {
	f := newArticleFixture()
	ctx := context.Background()
	a := f.create(t, "A", "T", domain.VisibilityPublic)

	f.cache.err = errors.New("connection refused")

	page, err := f.svc.ListByOwner(ctx, "A", "A", domain.PageQuery{})
	if err != nil || page.Total != 1 {
		t.Fatalf("list should fall through to store: %+v, %v", page, err)
	}
	if _, err := f.svc.Get(ctx, a.ID); err != nil {
		t.Fatalf("get should fall through to store: %v", err)
	}
	if _, err := f.svc.Create(ctx, "A", domain.ArticleInput{Title: "x", Body: "y"}); err != nil {
		t.Fatalf("create must not fail on cache outage: %v", err)
	}
	if err := f.svc.Delete(ctx, "A", a.ID); err != nil {
		t.Fatalf("delete must not fail on cache outage: %v", err)
	}
}

func TestArticleService_UpdateDropsItemCache(t *testing.T) {
	f := newArticleFixture()
	ctx := context.Background()
	a := f.create(t, "A", "T", domain.VisibilityPublic)

	_, _ = f.svc.Get(ctx, a.ID)
	title := "new"
	if _, err := f.svc.Update(ctx, "A", a.ID, domain.ArticlePatch{Title: &title}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := f.svc.Get(ctx, a.ID)
	if got.Title != "new" {
		t.Fatalf("stale item cache: %q", got.Title)
	}
}
