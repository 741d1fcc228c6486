package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
	"github.com/newsgpt/newsgpt-api/internal/pkg/metrics"
)

// AuthService implements registration, login and the session lifecycle.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, domain.TokenPair, error) {
	user, pair, err := s.register(ctx, in)
	recordAuth("signup", err)
	return user, pair, err
}

func (s *AuthService) register(ctx context.Context, in ports.RegisterInput) (*domain.User, domain.TokenPair, error) {
	username := strings.TrimSpace(in.Username)
	email := domain.NormalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.TokenPair{}, domain.Invalid("All fields are required!")
	}
	if err := validateProfile(username, email); err != nil {
		return nil, domain.TokenPair{}, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, domain.TokenPair{}, err
	}

	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email, "")
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	if taken {
		return nil, domain.TokenPair{}, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	pair, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	user, pair, err := s.login(ctx, email, password)
	recordAuth("login", err)
	return user, pair, err
}

func (s *AuthService) login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.TokenPair{}, domain.Invalid("Email and password are required.")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	return user, pair, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	token, exp, err := s.refresh(ctx, refreshToken)
	recordAuth("refresh", err)
	return token, exp, err
}

func (s *AuthService) refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	if refreshToken == "" {
		return "", time.Time{}, domain.ErrUnauthenticated
	}
	claims, err := s.tokens.VerifyRefresh(ctx, refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}
	if _, err := s.repo.FindByID(ctx, claims.UserID); err != nil {
		return "", time.Time{}, err
	}
	return s.tokens.ReissueAccess(claims.UserID)
}

// Logout revokes the presented tokens. Revocation is best-effort; logout
// itself never fails.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) {
	if accessToken != "" {
		if claims, err := s.tokens.VerifyAccess(ctx, accessToken); err == nil {
			s.revoke(ctx, claims)
		}
	}
	if refreshToken != "" {
		if claims, err := s.tokens.VerifyRefresh(ctx, refreshToken); err == nil {
			s.revoke(ctx, claims)
		}
	}
	recordAuth("logout", nil)
}

func (s *AuthService) revoke(ctx context.Context, claims domain.TokenClaims) {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		s.log.Warn().Err(err).Str("user_id", claims.UserID).Msg("token revocation failed")
	}
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies a username/email merge-patch with the same rules as
// signup.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return current, nil
	}

	username, email := current.Username, current.Email
	if patch.Username != nil {
		username = strings.TrimSpace(*patch.Username)
		patch.Username = &username
	}
	if patch.Email != nil {
		email = domain.NormalizeEmail(*patch.Email)
		patch.Email = &email
	}
	if err := validateProfile(username, email); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	updated, err := s.repo.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}

func validateProfile(username, email string) error {
	if err := domain.ValidateUsername(username); err != nil {
		return err
	}
	return domain.ValidateEmail(email)
}

func recordAuth(op string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.AuthAttemptsTotal.WithLabelValues(op, result).Inc()
}
