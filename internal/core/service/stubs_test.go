package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests. Ids starting with "bad" are
// treated as malformed, mirroring the ObjectID check in the Mongo repos.
// ---------------------------------------------------------------------------

func malformed(id string) bool { return strings.HasPrefix(id, "bad") }

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if malformed(id) {
		return nil, domain.ErrInvalidID
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email, excludeID string) (bool, error) {
	for id, u := range r.users {
		if id == excludeID {
			continue
		}
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, p domain.ProfilePatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsAdmin = isAdmin
	return nil
}

func (r *stubUserRepo) Count(context.Context) (int64, error) { return int64(len(r.users)), nil }

func (r *stubUserRepo) CountAdmins(context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.IsAdmin {
			n++
		}
	}
	return n, nil
}

type stubArticleRepo struct {
	items   map[string]*domain.Article
	seq     int
	listErr error
	lists   int // number of List calls that reached the store
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{items: make(map[string]*domain.Article)}
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) (*domain.Article, error) {
	r.seq++
	clone := *a
	clone.ID = fmt.Sprintf("article-%d", r.seq)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	if malformed(id) {
		return nil, domain.ErrInvalidID
	}
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) List(_ context.Context, f ports.ArticleFilter, q domain.PageQuery) ([]domain.Article, int64, error) {
	r.lists++
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var all []domain.Article
	for _, a := range r.items {
		if f.OwnerID != "" && a.OwnerID != f.OwnerID {
			continue
		}
		if f.PublicOnly && a.Visibility != domain.VisibilityPublic {
			continue
		}
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool {
		if q.Sort == domain.SortAsc {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, q), int64(len(all)), nil
}

func (r *stubArticleRepo) Update(_ context.Context, id, ownerID string, p domain.ArticlePatch, at time.Time) (*domain.Article, error) {
	a, ok := r.items[id]
	if !ok || a.OwnerID != ownerID {
		return nil, domain.ErrArticleNotFound
	}
	updated := a.Apply(p, at)
	r.items[id] = &updated
	out := updated
	return &out, nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id, ownerID string) error {
	a, ok := r.items[id]
	if !ok || (ownerID != "" && a.OwnerID != ownerID) {
		return domain.ErrArticleNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubArticleRepo) Count(context.Context) (int64, error) { return int64(len(r.items)), nil }

type stubSummaryRepo struct {
	items map[string]*domain.Summary
	seq   int
	lists int
}

func newStubSummaryRepo() *stubSummaryRepo {
	return &stubSummaryRepo{items: make(map[string]*domain.Summary)}
}

func (r *stubSummaryRepo) Create(_ context.Context, s *domain.Summary) (*domain.Summary, error) {
	r.seq++
	clone := *s
	clone.ID = fmt.Sprintf("summary-%d", r.seq)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSummaryRepo) FindByID(_ context.Context, id string) (*domain.Summary, error) {
	if malformed(id) {
		return nil, domain.ErrInvalidID
	}
	s, ok := r.items[id]
	if !ok {
		return nil, domain.ErrSummaryNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSummaryRepo) List(_ context.Context, ownerID string, q domain.PageQuery) ([]domain.Summary, int64, error) {
	r.lists++
	var all []domain.Summary
	for _, s := range r.items {
		if ownerID != "" && s.OwnerID != ownerID {
			continue
		}
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool {
		if q.Sort == domain.SortAsc {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, q), int64(len(all)), nil
}

func (r *stubSummaryRepo) Delete(_ context.Context, id, ownerID string) error {
	s, ok := r.items[id]
	if !ok || (ownerID != "" && s.OwnerID != ownerID) {
		return domain.ErrSummaryNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubSummaryRepo) Count(context.Context) (int64, error) { return int64(len(r.items)), nil }

func paginate[T any](all []T, q domain.PageQuery) []T {
	start := int(q.Skip())
	if start >= len(all) {
		return []T{}
	}
	end := start + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

// stubCache is a map-backed ports.ReadCache. When err is set every call fails.
type stubCache struct {
	pages   map[string][]byte
	items   map[string][]byte
	err     error
	hits    int
	invalid []string
}

func newStubCache() *stubCache {
	return &stubCache{pages: make(map[string][]byte), items: make(map[string][]byte)}
}

func pageKey(k ports.PageKey) string {
	return fmt.Sprintf("%s:%s:%s:%d:%d:%s", k.OwnerID, k.Kind, k.Scope, k.Query.Page, k.Query.Limit, k.Query.Sort)
}

func (c *stubCache) GetPage(_ context.Context, k ports.PageKey) ([]byte, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	v, ok := c.pages[pageKey(k)]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *stubCache) SetPage(_ context.Context, k ports.PageKey, v []byte) error {
	if c.err != nil {
		return c.err
	}
	c.pages[pageKey(k)] = v
	return nil
}

func (c *stubCache) InvalidateOwner(_ context.Context, owner string, kind domain.ResourceKind) error {
	if c.err != nil {
		return c.err
	}
	prefix := owner + ":" + string(kind) + ":"
	for k := range c.pages {
		if strings.HasPrefix(k, prefix) {
			delete(c.pages, k)
		}
	}
	c.invalid = append(c.invalid, owner+"/"+string(kind))
	return nil
}

func (c *stubCache) GetItem(_ context.Context, kind domain.ResourceKind, id string) ([]byte, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	v, ok := c.items[string(kind)+":"+id]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *stubCache) SetItem(_ context.Context, kind domain.ResourceKind, id string, v []byte) error {
	if c.err != nil {
		return c.err
	}
	c.items[string(kind)+":"+id] = v
	return nil
}

func (c *stubCache) DeleteItem(_ context.Context, kind domain.ResourceKind, id string) error {
	if c.err != nil {
		return c.err
	}
	delete(c.items, string(kind)+":"+id)
	return nil
}

type stubSummarizer struct {
	out   string
	err   error
	calls int
}

func (s *stubSummarizer) Summarize(_ context.Context, text string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if s.out != "" {
		return s.out, nil
	}
	return "short: " + text, nil
}

type stubDenylist struct {
	ids map[string]time.Duration
	err error
}

func newStubDenylist() *stubDenylist { return &stubDenylist{ids: make(map[string]time.Duration)} }

func (d *stubDenylist) Add(_ context.Context, id string, ttl time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.ids[id] = ttl
	return nil
}

func (d *stubDenylist) Contains(_ context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.ids[id]
	return ok, nil
}

// tickingClock returns a clock that advances one second per call.
func tickingClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}
