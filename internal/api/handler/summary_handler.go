package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
)

// SummaryHandler handles HTTP requests for summary operations.
type SummaryHandler struct {
	service ports.SummaryService
}

func NewSummaryHandler(service ports.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Create handles POST /summary. The text is sent to the summarizer before
// anything is stored.
//
// @Summary      Summarize text
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Param        body  body      summaryRequest  true  "Text to summarize"
// @Success      201   {object}  summaryEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /summary [post]
func (h *SummaryHandler) Create(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req summaryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	summary, err := h.service.Create(c.Request().Context(), ownerID, req.OriginalText)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, summaryEnvelope{
		Message: "Summary created successfully",
		Summary: toSummaryResponse(*summary),
	})
}

// ListByUser handles GET /summary/user/:userId.
//
// @Summary      List a user's summaries
// @Tags         summaries
// @Produce      json
// @Param        userId  path      string  true   "Owner id"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Param        sort    query     string  false  "asc or desc"
// @Success      200     {object}  summaryListResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /summary/user/{userId} [get]
func (h *SummaryHandler) ListByUser(c echo.Context) error {
	page, err := h.service.ListByOwner(c.Request().Context(), c.Param("userId"), pageQuery(c, domain.DefaultOwnerPageLimit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryList(page))
}

// Get handles GET /summary/:id.
//
// @Summary      Get a summary
// @Tags         summaries
// @Produce      json
// @Param        id   path      string  true  "Summary id"
// @Success      200  {object}  summaryEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /summary/{id} [get]
func (h *SummaryHandler) Get(c echo.Context) error {
	summary, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryEnvelope{Summary: toSummaryResponse(*summary)})
}

// Delete handles DELETE /summary/:id.
//
// @Summary      Delete a summary
// @Tags         summaries
// @Produce      json
// @Param        id   path      string  true  "Summary id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /summary/{id} [delete]
func (h *SummaryHandler) Delete(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Summary deleted"})
}
