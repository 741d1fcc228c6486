package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// Create handles POST /article.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body      articleRequest  true  "Article"
// @Success      201   {object}  articleEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /article [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req articleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	article, err := h.service.Create(c.Request().Context(), ownerID, toArticleInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, articleEnvelope{
		Message: "Article created successfully",
		Article: toArticleResponse(*article),
	})
}

// ListMine handles GET /article: the caller's own articles, newest first.
//
// @Summary      List my articles
// @Tags         articles
// @Produce      json
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Param        sort   query     string  false  "asc or desc"
// @Success      200    {object}  articleListResponse
// @Failure      401    {object}  errorResponse
// @Router       /article [get]
func (h *ArticleHandler) ListMine(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	return h.list(c, id, id)
}

// ListByUser handles GET /article/user/:userId. Only public articles are
// returned unless the caller is the owner.
//
// @Summary      List a user's articles
// @Tags         articles
// @Produce      json
// @Param        userId  path      string  true   "Owner id"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Param        sort    query     string  false  "asc or desc"
// @Success      200     {object}  articleListResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /article/user/{userId} [get]
func (h *ArticleHandler) ListByUser(c echo.Context) error {
	viewerID, err := callerID(c)
	if err != nil {
		return err
	}
	return h.list(c, viewerID, c.Param("userId"))
}

func (h *ArticleHandler) list(c echo.Context, viewerID, ownerID string) error {
	page, err := h.service.ListByOwner(c.Request().Context(), viewerID, ownerID, pageQuery(c, domain.DefaultOwnerPageLimit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleList(page))
}

// Get handles GET /article/:id.
//
// @Summary      Get an article
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  articleEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /article/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articleEnvelope{Article: toArticleResponse(*article)})
}

// Update handles PUT /article/:id as a merge-patch.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Article id"
// @Param        body  body      articlePatchRequest  true  "Fields to change"
// @Success      200   {object}  articleEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /article/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	var req articlePatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	article, err := h.service.Update(c.Request().Context(), id, c.Param("id"), toArticlePatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articleEnvelope{
		Message: "Article updated",
		Article: toArticleResponse(*article),
	})
}

// Delete handles DELETE /article/:id.
//
// @Summary      Delete an article
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /article/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Article deleted"})
}
