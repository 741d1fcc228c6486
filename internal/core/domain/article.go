package domain

import (
	"strings"
	"time"
)

const (
	MaxTitleLen = 140
	MaxBodyLen  = 10000
)

// Visibility controls who can see an article in another user's listing.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Article is an owner-scoped piece of authored content. OwnerID never changes
// after creation.
type Article struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Source     string     `json:"source,omitempty"`
	Visibility Visibility `json:"visibility"`
	OwnerID    string     `json:"ownerId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// ArticleInput carries the fields accepted on creation.
type ArticleInput struct {
	Title      string
	Body       string
	Source     string
	Visibility Visibility
}

// Normalize trims fields, applies the private default and validates limits.
func (in *ArticleInput) Normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Source = strings.TrimSpace(in.Source)
	if in.Title == "" || strings.TrimSpace(in.Body) == "" {
		return Invalid("Title and body are required.")
	}
	if in.Visibility == "" {
		in.Visibility = VisibilityPrivate
	}
	return validateArticleFields(in.Title, in.Body, in.Visibility)
}

// ArticlePatch is a merge-patch: nil fields keep their stored value.
type ArticlePatch struct {
	Title      *string
	Body       *string
	Source     *string
	Visibility *Visibility
}

// Empty reports whether the patch carries no fields at all.
func (p ArticlePatch) Empty() bool {
	return p.Title == nil && p.Body == nil && p.Source == nil && p.Visibility == nil
}

// Normalize trims provided fields and validates them. Required fields may be
// omitted but never blanked.
func (p *ArticlePatch) Normalize() error {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return Invalid("Title cannot be empty.")
		}
		p.Title = &t
	}
	if p.Body != nil && strings.TrimSpace(*p.Body) == "" {
		return Invalid("Body cannot be empty.")
	}
	if p.Source != nil {
		s := strings.TrimSpace(*p.Source)
		p.Source = &s
	}

	title, body, vis := "", "", VisibilityPrivate
	if p.Title != nil {
		title = *p.Title
	}
	if p.Body != nil {
		body = *p.Body
	}
	if p.Visibility != nil {
		vis = *p.Visibility
	}
	return validateArticleFields(title, body, vis)
}

// Apply merges the patch into a copy of a and stamps UpdatedAt.
func (a Article) Apply(p ArticlePatch, now time.Time) Article {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Body != nil {
		a.Body = *p.Body
	}
	if p.Source != nil {
		a.Source = *p.Source
	}
	if p.Visibility != nil {
		a.Visibility = *p.Visibility
	}
	a.UpdatedAt = now
	return a
}

func validateArticleFields(title, body string, vis Visibility) error {
	if len([]rune(title)) > MaxTitleLen {
		return Invalid("Title must be at most %d characters.", MaxTitleLen)
	}
	if len([]rune(body)) > MaxBodyLen {
		return Invalid("Body must be at most %d characters.", MaxBodyLen)
	}
	if !vis.Valid() {
		return Invalid("Visibility must be one of: public, private.")
	}
	return nil
}
