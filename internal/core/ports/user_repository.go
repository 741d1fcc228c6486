package ports

import (
	"context"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

// UserRepository persists identities. Lookups return domain.ErrUserNotFound
// when nothing matches; Create and UpdateProfile return domain.ErrUserExists
// on a username or email collision.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// ExistsByUsernameOrEmail reports whether either value is already taken,
	// ignoring the identity excludeID (empty to check all).
	ExistsByUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error)
	UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	Count(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
}
