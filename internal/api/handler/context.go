package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/newsgpt/newsgpt-api/internal/api/middleware"
	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

// callerID returns the identity attached by the session middleware. An empty
// identity means the route was mounted without it, which is treated as
// unauthenticated rather than trusted.
func callerID(c echo.Context) (string, error) {
	id := middleware.UserID(c)
	if id == "" {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}

// pageQuery reads page, limit and sort. Non-numeric values are treated as
// absent and fall back to the defaults applied by PageQuery.Normalize.
func pageQuery(c echo.Context, defaultLimit int) domain.PageQuery {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return domain.PageQuery{
		Page:  page,
		Limit: limit,
		Sort:  domain.ParseSort(c.QueryParam("sort")),
	}.Normalize(defaultLimit)
}

// bind decodes the request body and runs struct validation.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("Invalid request body.")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
