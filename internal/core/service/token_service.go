package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenConfig holds signing material for the access/refresh pair.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenService signs and verifies HS256 tokens that carry only the identity id.
type TokenService struct {
	cfg      TokenConfig
	denylist ports.TokenDenylist
	now      func() time.Time
	log      zerolog.Logger
}

type TokenOption func(*TokenService)

// WithDenylist enables revocation. Without it tokens stay valid until expiry.
func WithDenylist(d ports.TokenDenylist) TokenOption {
	return func(s *TokenService) { s.denylist = d }
}

// WithClock overrides the time source used for signing and verification.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func WithTokenLogger(log zerolog.Logger) TokenOption {
	return func(s *TokenService) { s.log = log }
}

func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token service: access and refresh secrets are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("token service: access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	s := &TokenService{cfg: cfg, now: time.Now, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TokenService) Issue(userID string) (domain.TokenPair, error) {
	access, accessExp, err := s.sign(userID, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, refreshExp, err := s.sign(userID, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *TokenService) ReissueAccess(userID string) (string, time.Time, error) {
	return s.sign(userID, s.cfg.AccessSecret, s.cfg.AccessTTL)
}

func (s *TokenService) VerifyAccess(ctx context.Context, token string) (domain.TokenClaims, error) {
	return s.verify(ctx, token, s.cfg.AccessSecret)
}

func (s *TokenService) VerifyRefresh(ctx context.Context, token string) (domain.TokenClaims, error) {
	return s.verify(ctx, token, s.cfg.RefreshSecret)
}

func (s *TokenService) Revoke(ctx context.Context, claims domain.TokenClaims) error {
	if s.denylist == nil || claims.TokenID == "" {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Add(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *TokenService) sign(userID, secret string, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	// jwt NumericDate truncates to seconds; report what was actually signed.
	return signed, claims.ExpiresAt.Time, nil
}

func (s *TokenService) verify(ctx context.Context, token, secret string) (domain.TokenClaims, error) {
	if token == "" {
		return domain.TokenClaims{}, domain.ErrTokenInvalid
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.TokenClaims{}, domain.ErrTokenExpired
		}
		return domain.TokenClaims{}, domain.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return domain.TokenClaims{}, domain.ErrTokenInvalid
	}

	out := domain.TokenClaims{
		UserID:    claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	if s.denylist != nil && out.TokenID != "" {
		revoked, err := s.denylist.Contains(ctx, out.TokenID)
		if err != nil {
			s.log.Warn().Err(err).Msg("token denylist lookup failed, accepting token")
		} else if revoked {
			return domain.TokenClaims{}, domain.ErrTokenRevoked
		}
	}
	return out, nil
}
