package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsgpt/newsgpt-api/internal/api/cookies"
	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
	"github.com/newsgpt/newsgpt-api/internal/pkg/metrics"
)

const userIDKey = "user_id"

// UserLookup is the slice of the user repository the middleware needs.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// SessionConfig wires the session middleware.
type SessionConfig struct {
	Tokens  ports.TokenService
	Users   UserLookup
	Cookies cookies.Policy
	Log     zerolog.Logger
}

// SetUserID attaches the authenticated identity to the request.
func SetUserID(c echo.Context, id string) {
	c.Set(userIDKey, id)
}

// UserID returns the identity attached by Session or AccessOnly, or "".
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// Session authenticates the request from the session cookies. A valid access
// token is accepted as is. Otherwise a valid refresh token for an identity
// that still exists mints a new access token, which is set on the response
// before the handler runs.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			access := cookies.Read(c, cookies.AccessCookie)
			refresh := cookies.Read(c, cookies.RefreshCookie)

			if access == "" && refresh == "" {
				return domain.ErrUnauthenticated
			}

			if access != "" {
				claims, err := cfg.Tokens.VerifyAccess(ctx, access)
				if err == nil {
					SetUserID(c, claims.UserID)
					return next(c)
				}
				if !errors.Is(err, domain.ErrUnauthenticated) {
					return err
				}
			}

			if refresh == "" {
				metrics.SessionRefreshesTotal.WithLabelValues("rejected").Inc()
				return domain.ErrUnauthenticated
			}

			claims, err := cfg.Tokens.VerifyRefresh(ctx, refresh)
			if err != nil {
				metrics.SessionRefreshesTotal.WithLabelValues("rejected").Inc()
				return err
			}

			user, err := cfg.Users.FindByID(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					metrics.SessionRefreshesTotal.WithLabelValues("user_missing").Inc()
				}
				return err
			}

			token, expiresAt, err := cfg.Tokens.ReissueAccess(user.ID)
			if err != nil {
				return err
			}
			cfg.Cookies.SetAccess(c, token, expiresAt)
			metrics.SessionRefreshesTotal.WithLabelValues("refreshed").Inc()

			cfg.Log.Debug().
				Str("user_id", user.ID).
				Str("path", c.Path()).
				Msg("access token refreshed in-flight")

			SetUserID(c, user.ID)
			return next(c)
		}
	}
}

// AccessOnly authenticates from the access cookie alone and never refreshes.
func AccessOnly(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			access := cookies.Read(c, cookies.AccessCookie)
			if access == "" {
				return domain.ErrUnauthenticated
			}
			claims, err := tokens.VerifyAccess(c.Request().Context(), access)
			if err != nil {
				return err
			}
			SetUserID(c, claims.UserID)
			return next(c)
		}
	}
}
