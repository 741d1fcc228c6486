package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/pkg/logger"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// knownErrors maps sentinels to their status and client-facing text. Order
// matters: the first match wins, so specific sentinels precede their class.
var knownErrors = []struct {
	err    error
	status int
	msg    string
}{
	{domain.ErrInvalidUserID, http.StatusBadRequest, "Invalid user id"},
	{domain.ErrInvalidID, http.StatusBadRequest, "Invalid id"},
	{domain.ErrUserExists, http.StatusBadRequest, "User already exists!"},

	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password."},
	{domain.ErrTokenExpired, http.StatusUnauthorized, "Invalid or expired token."},
	{domain.ErrTokenInvalid, http.StatusUnauthorized, "Invalid or expired token."},
	{domain.ErrTokenRevoked, http.StatusUnauthorized, "Invalid or expired token."},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "No access token."},

	{domain.ErrNotArticleOwner, http.StatusForbidden, "Unauthorized: Not your article."},
	{domain.ErrNotSummaryOwner, http.StatusForbidden, "Unauthorized: Not your summary."},
	{domain.ErrNotAdmin, http.StatusForbidden, "Access Denied!"},
	{domain.ErrForbidden, http.StatusForbidden, "Access Denied!"},

	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrArticleNotFound, http.StatusNotFound, "Article not found"},
	{domain.ErrSummaryNotFound, http.StatusNotFound, "Summary not found"},
	{domain.ErrNotFound, http.StatusNotFound, "Not found"},

	{domain.ErrSummarizer, http.StatusBadGateway, "Failed to generate summary"},
	{domain.ErrUpstream, http.StatusBadGateway, "Upstream service failed"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain errors
// to deterministic status codes and renders {"error", "message"?}. Unexpected
// errors are logged; their cause is only echoed in "message" when
// exposeDetails is set.
func NewHTTPErrorHandler(log zerolog.Logger, exposeDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, logger.FromContext(c.Request().Context(), log), c, exposeDetails)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, exposeDetails bool) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, 429 from the limiter).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: ve.Msg}
	}

	for _, k := range knownErrors {
		if !errors.Is(err, k.err) {
			continue
		}
		resp := errorResponse{Error: k.msg}
		if k.status == http.StatusBadGateway {
			log.Warn().Err(err).Str("path", c.Path()).Msg("upstream failure")
			if exposeDetails {
				resp.Message = err.Error()
			}
		}
		return k.status, resp
	}

	if errors.Is(err, domain.ErrValidation) {
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	resp := errorResponse{Error: "internal server error"}
	if exposeDetails {
		resp.Message = err.Error()
	}
	return http.StatusInternalServerError, resp
}
