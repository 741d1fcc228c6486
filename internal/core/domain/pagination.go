package domain

const (
	DefaultOwnerPageLimit = 5
	DefaultAdminPageLimit = 10
	MaxPageLimit          = 100
)

// ResourceKind names an owner-scoped collection. It doubles as the cache key
// segment for that collection's paginated listings.
type ResourceKind string

const (
	KindArticles  ResourceKind = "articles"
	KindSummaries ResourceKind = "summaries"
)

// ListScope narrows an owner listing to what the viewer may see.
type ListScope string

const (
	ScopeAll    ListScope = "all"
	ScopePublic ListScope = "public"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSort returns SortAsc only for the exact string "asc".
func ParseSort(s string) SortDirection {
	if s == string(SortAsc) {
		return SortAsc
	}
	return SortDesc
}

// PageQuery holds 1-based pagination parameters.
type PageQuery struct {
	Page  int
	Limit int
	Sort  SortDirection
}

// Normalize replaces absent or non-positive values with defaults and caps the
// limit at MaxPageLimit.
func (q PageQuery) Normalize(defaultLimit int) PageQuery {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	if q.Sort != SortAsc {
		q.Sort = SortDesc
	}
	return q
}

// Skip is the number of records preceding the requested page.
func (q PageQuery) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}

// Page is one slice of an ordered listing plus the listing's total size.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Stats aggregates collection sizes for the admin dashboard.
type Stats struct {
	UsersCount     int64 `json:"usersCount"`
	ArticlesCount  int64 `json:"articlesCount"`
	SummariesCount int64 `json:"summariesCount"`
}
