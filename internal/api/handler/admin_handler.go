package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
)

// AdminHandler serves the cross-user moderation endpoints.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Stats handles GET /admin/stats.
//
// @Summary      Collection counts
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.Stats
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ListArticles handles GET /admin/articles.
//
// @Summary      List all articles
// @Tags         admin
// @Produce      json
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Param        sort   query     string  false  "asc or desc"
// @Success      200    {object}  articleListResponse
// @Failure      403    {object}  errorResponse
// @Router       /admin/articles [get]
func (h *AdminHandler) ListArticles(c echo.Context) error {
	page, err := h.service.ListArticles(c.Request().Context(), pageQuery(c, domain.DefaultAdminPageLimit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleList(page))
}

// ListSummaries handles GET /admin/summaries.
//
// @Summary      List all summaries
// @Tags         admin
// @Produce      json
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Param        sort   query     string  false  "asc or desc"
// @Success      200    {object}  summaryListResponse
// @Failure      403    {object}  errorResponse
// @Router       /admin/summaries [get]
func (h *AdminHandler) ListSummaries(c echo.Context) error {
	page, err := h.service.ListSummaries(c.Request().Context(), pageQuery(c, domain.DefaultAdminPageLimit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryList(page))
}

// DeleteArticle handles DELETE /admin/article/:id.
//
// @Summary      Delete any article
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/article/{id} [delete]
func (h *AdminHandler) DeleteArticle(c echo.Context) error {
	if err := h.service.DeleteArticle(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Article deleted successfully"})
}

// DeleteSummary handles DELETE /admin/summary/:id.
//
// @Summary      Delete any summary
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Summary id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/summary/{id} [delete]
func (h *AdminHandler) DeleteSummary(c echo.Context) error {
	if err := h.service.DeleteSummary(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Summary deleted successfully"})
}

// Promote handles POST /admin/make-admin/:userId. Any authenticated caller
// may promote while no admin exists; afterwards only admins can.
//
// @Summary      Grant admin
// @Tags         admin
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  messageResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /admin/make-admin/{userId} [post]
func (h *AdminHandler) Promote(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.service.Promote(c.Request().Context(), id, c.Param("userId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User promoted to admin successfully"})
}
