package ports

import (
	"context"
	"time"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

// RegisterInput carries signup fields as submitted.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService covers the identity and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, domain.TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error)
	// Refresh verifies the refresh token, confirms the identity still exists
	// and mints a new access token.
	Refresh(ctx context.Context, refreshToken string) (token string, expiresAt time.Time, err error)
	// Logout revokes whichever of the presented tokens still verify.
	Logout(ctx context.Context, accessToken, refreshToken string)
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error)
}

// ArticleService is the ownership-scoped article use-case layer.
type ArticleService interface {
	Create(ctx context.Context, ownerID string, in domain.ArticleInput) (*domain.Article, error)
	Get(ctx context.Context, id string) (*domain.Article, error)
	// ListByOwner lists ownerID's articles as seen by viewerID: the owner sees
	// everything, anyone else only public articles.
	ListByOwner(ctx context.Context, viewerID, ownerID string, q domain.PageQuery) (*domain.Page[domain.Article], error)
	Update(ctx context.Context, callerID, id string, patch domain.ArticlePatch) (*domain.Article, error)
	Delete(ctx context.Context, callerID, id string) error
}

// SummaryService is the ownership-scoped summary use-case layer.
type SummaryService interface {
	Create(ctx context.Context, ownerID, originalText string) (*domain.Summary, error)
	Get(ctx context.Context, id string) (*domain.Summary, error)
	ListByOwner(ctx context.Context, ownerID string, q domain.PageQuery) (*domain.Page[domain.Summary], error)
	Delete(ctx context.Context, callerID, id string) error
}

// AdminService exposes cross-user moderation operations. Callers must have
// passed the admin gate except for Promote, which checks on its own.
type AdminService interface {
	Stats(ctx context.Context) (*domain.Stats, error)
	ListArticles(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Article], error)
	ListSummaries(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Summary], error)
	DeleteArticle(ctx context.Context, id string) error
	DeleteSummary(ctx context.Context, id string) error
	Promote(ctx context.Context, callerID, userID string) error
}
