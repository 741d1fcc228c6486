package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/newsgpt/newsgpt-api/internal/api/middleware"
	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

type stubAdminService struct {
	promoted  []string
	lastQuery domain.PageQuery
}

func (s *stubAdminService) Stats(context.Context) (*domain.Stats, error) {
	return &domain.Stats{UsersCount: 3, ArticlesCount: 2, SummariesCount: 1}, nil
}

func (s *stubAdminService) ListArticles(_ context.Context, q domain.PageQuery) (*domain.Page[domain.Article], error) {
	s.lastQuery = q
	return &domain.Page[domain.Article]{Page: q.Page, Limit: q.Limit}, nil
}

func (s *stubAdminService) ListSummaries(_ context.Context, q domain.PageQuery) (*domain.Page[domain.Summary], error) {
	s.lastQuery = q
	return &domain.Page[domain.Summary]{Page: q.Page, Limit: q.Limit}, nil
}

func (s *stubAdminService) DeleteArticle(_ context.Context, id string) error {
	if id == "missing" {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (s *stubAdminService) DeleteSummary(context.Context, string) error { return nil }

func (s *stubAdminService) Promote(_ context.Context, callerID, userID string) error {
	if callerID == "plain" {
		return domain.ErrNotAdmin
	}
	s.promoted = append(s.promoted, userID)
	return nil
}

func TestAdminHandler_Stats(t *testing.T) {
	e := newEcho()
	handler := NewAdminHandler(&stubAdminService{})

	c, rec := newEchoContext(e, http.MethodGet, "/admin/stats")
	if err := handler.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"usersCount":3`) || !strings.Contains(body, `"summariesCount":1`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAdminHandler_ListDefaults(t *testing.T) {
	e := newEcho()
	stub := &stubAdminService{}
	handler := NewAdminHandler(stub)

	c, rec := newEchoContext(e, http.MethodGet, "/admin/articles")
	if err := handler.ListArticles(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.lastQuery.Limit != domain.DefaultAdminPageLimit || stub.lastQuery.Page != 1 {
		t.Fatalf("unexpected query: %+v", stub.lastQuery)
	}
	if !strings.Contains(rec.Body.String(), `"articles":[]`) {
		t.Fatalf("expected empty articles array, got %s", rec.Body.String())
	}

	c, rec = newEchoContext(e, http.MethodGet, "/admin/summaries?limit=7")
	if err := handler.ListSummaries(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.lastQuery.Limit != 7 || !strings.Contains(rec.Body.String(), `"summaries":[]`) {
		t.Fatalf("unexpected summaries listing: %+v %s", stub.lastQuery, rec.Body.String())
	}
}

func TestAdminHandler_DeleteArticle(t *testing.T) {
	e := newEcho()
	handler := NewAdminHandler(&stubAdminService{})

	c, rec := newEchoContext(e, http.MethodDelete, "/admin/article/a1")
	c.SetParamNames("id")
	c.SetParamValues("a1")
	if err := handler.DeleteArticle(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Article deleted successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	c, _ = newEchoContext(e, http.MethodDelete, "/admin/article/missing")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := handler.DeleteArticle(c); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestAdminHandler_Promote(t *testing.T) {
	e := newEcho()
	stub := &stubAdminService{}
	handler := NewAdminHandler(stub)

	c, rec := newEchoContext(e, http.MethodPost, "/admin/make-admin/u2")
	c.SetParamNames("userId")
	c.SetParamValues("u2")
	middleware.SetUserID(c, "admin")
	if err := handler.Promote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || len(stub.promoted) != 1 || stub.promoted[0] != "u2" {
		t.Fatalf("unexpected promote: %d %v", rec.Code, stub.promoted)
	}

	c, _ = newEchoContext(e, http.MethodPost, "/admin/make-admin/u3")
	c.SetParamNames("userId")
	c.SetParamValues("u3")
	middleware.SetUserID(c, "plain")
	if err := handler.Promote(c); !errors.Is(err, domain.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}
