package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

// RequireAdmin lets the request through only when the identity attached by
// Session still exists and holds the admin flag. It must run after Session.
func RequireAdmin(users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := UserID(c)
			if id == "" {
				return domain.ErrUnauthenticated
			}

			user, err := users.FindByID(c.Request().Context(), id)
			if err != nil {
				return err
			}
			if !user.IsAdmin {
				return domain.ErrNotAdmin
			}
			return next(c)
		}
	}
}
