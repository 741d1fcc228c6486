package ports

import (
	"context"
	"time"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

// TokenService issues and verifies the stateless access/refresh pair.
type TokenService interface {
	Issue(userID string) (domain.TokenPair, error)
	VerifyAccess(ctx context.Context, token string) (domain.TokenClaims, error)
	VerifyRefresh(ctx context.Context, token string) (domain.TokenClaims, error)
	ReissueAccess(userID string) (token string, expiresAt time.Time, err error)
	// Revoke denylists the token until its natural expiry. It is a no-op
	// when no denylist is configured.
	Revoke(ctx context.Context, claims domain.TokenClaims) error
}

// TokenDenylist remembers revoked token ids until they would have expired.
type TokenDenylist interface {
	Add(ctx context.Context, tokenID string, ttl time.Duration) error
	Contains(ctx context.Context, tokenID string) (bool, error)
}
