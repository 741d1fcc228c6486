package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsgpt/newsgpt-api/internal/api/cookies"
	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

// stubTokens accepts exactly the tokens registered in its maps.
type stubTokens struct {
	access   map[string]string
	refresh  map[string]string
	reissued int
}

func (s *stubTokens) Issue(userID string) (domain.TokenPair, error) {
	return domain.TokenPair{}, nil
}

func (s *stubTokens) VerifyAccess(_ context.Context, tok string) (domain.TokenClaims, error) {
	if uid, ok := s.access[tok]; ok {
		return domain.TokenClaims{UserID: uid}, nil
	}
	return domain.TokenClaims{}, domain.ErrTokenExpired
}

func (s *stubTokens) VerifyRefresh(_ context.Context, tok string) (domain.TokenClaims, error) {
	if uid, ok := s.refresh[tok]; ok {
		return domain.TokenClaims{UserID: uid}, nil
	}
	return domain.TokenClaims{}, domain.ErrTokenInvalid
}

func (s *stubTokens) ReissueAccess(userID string) (string, time.Time, error) {
	s.reissued++
	return "fresh-" + userID, time.Now().Add(15 * time.Minute), nil
}

func (s *stubTokens) Revoke(context.Context, domain.TokenClaims) error { return nil }

type stubUsers map[string]*domain.User

func (s stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func newSessionTokens() *stubTokens {
	return &stubTokens{
		access:  map[string]string{"good-access": "u1"},
		refresh: map[string]string{"good-refresh": "u1", "orphan-refresh": "gone"},
	}
}

func runSession(t *testing.T, tokens *stubTokens, ck map[string]string) (*httptest.ResponseRecorder, string, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/article", nil)
	for name, v := range ck {
		req.AddCookie(&http.Cookie{Name: name, Value: v})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(SessionConfig{
		Tokens:  tokens,
		Users:   stubUsers{"u1": {ID: "u1"}},
		Cookies: cookies.NewPolicy(false),
		Log:     zerolog.Nop(),
	})

	var seen string
	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		seen = UserID(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen, called
}

func TestSession_NoCookies(t *testing.T) {
	_, _, called := runSession(t, newSessionTokens(), nil)
	if called {
		t.Fatalf("should not reach next")
	}
}

func TestSession_ValidAccess(t *testing.T) {
	tokens := newSessionTokens()
	rec, uid, called := runSession(t, tokens, map[string]string{cookies.AccessCookie: "good-access"})
	if !called || uid != "u1" {
		t.Fatalf("expected identity u1, got called=%v uid=%q", called, uid)
	}
	if tokens.reissued != 0 {
		t.Fatalf("valid access must not trigger a refresh")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie should be set on a valid access token")
	}
}

func TestSession_TransparentRefresh(t *testing.T) {
	tokens := newSessionTokens()
	rec, uid, called := runSession(t, tokens, map[string]string{
		cookies.AccessCookie:  "expired",
		cookies.RefreshCookie: "good-refresh",
	})
	if !called || uid != "u1" {
		t.Fatalf("expected refreshed identity u1, got called=%v uid=%q", called, uid)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var fresh *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookies.AccessCookie {
			fresh = ck
		}
	}
	if fresh == nil || fresh.Value != "fresh-u1" {
		t.Fatalf("expected new access cookie, got %+v", fresh)
	}
}

func TestSession_RefreshWithoutAccess(t *testing.T) {
	tokens := newSessionTokens()
	_, uid, called := runSession(t, tokens, map[string]string{cookies.RefreshCookie: "good-refresh"})
	if !called || uid != "u1" {
		t.Fatalf("expected refreshed identity, got called=%v uid=%q", called, uid)
	}
	if tokens.reissued != 1 {
		t.Fatalf("expected one reissue, got %d", tokens.reissued)
	}
}

func TestSession_RefreshForDeletedUser(t *testing.T) {
	tokens := newSessionTokens()
	_, _, called := runSession(t, tokens, map[string]string{
		cookies.AccessCookie:  "expired",
		cookies.RefreshCookie: "orphan-refresh",
	})
	if called {
		t.Fatalf("should not reach next for a deleted identity")
	}
	if tokens.reissued != 0 {
		t.Fatalf("no token should be minted for a deleted identity")
	}
}

func TestSession_InvalidRefresh(t *testing.T) {
	tokens := newSessionTokens()
	_, _, called := runSession(t, tokens, map[string]string{
		cookies.AccessCookie:  "expired",
		cookies.RefreshCookie: "forged",
	})
	if called {
		t.Fatalf("should not reach next")
	}
}

func TestSession_ExpiredAccessNoRefresh(t *testing.T) {
	_, _, called := runSession(t, newSessionTokens(), map[string]string{cookies.AccessCookie: "expired"})
	if called {
		t.Fatalf("should not reach next")
	}
}

func TestAccessOnly(t *testing.T) {
	tokens := newSessionTokens()
	mw := AccessOnly(tokens)
	e := echo.New()

	cases := []struct {
		name   string
		cookie *http.Cookie
		want   bool
	}{
		{"valid access", &http.Cookie{Name: cookies.AccessCookie, Value: "good-access"}, true},
		{"refresh only", &http.Cookie{Name: cookies.RefreshCookie, Value: "good-refresh"}, false},
		{"expired access", &http.Cookie{Name: cookies.AccessCookie, Value: "expired"}, false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.AddCookie(tc.cookie)
		c := e.NewContext(req, httptest.NewRecorder())

		called := false
		err := mw(func(c echo.Context) error {
			called = true
			return nil
		})(c)

		if called != tc.want {
			t.Fatalf("%s: expected called=%v, got %v (err=%v)", tc.name, tc.want, called, err)
		}
		if tokens.reissued != 0 {
			t.Fatalf("%s: AccessOnly must never refresh", tc.name)
		}
	}
}
