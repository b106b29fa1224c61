package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/gateway"
	"feedbackhub/internal/guard"
	"feedbackhub/internal/model"
	"feedbackhub/internal/service"
	"feedbackhub/internal/workflow"
)

// AdminHandler serves the moderation board.
type AdminHandler struct {
	*Base
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(base *Base) *AdminHandler {
	return &AdminHandler{Base: base}
}

// AdminView is one page of the board as shown to an admin. Items are narrowed
// by the local q search; the chart and totals describe the whole page.
type AdminView struct {
	*service.AdminPage
	Query    string                 `json:"q,omitempty"`
	Visible  []model.Feedback       `json:"visible"`
	Statuses []model.FeedbackStatus `json:"statuses"`
	Nav      []guard.NavLink        `json:"nav"`
}

// StatusChangeResponse reports an approve or reject.
type StatusChangeResponse struct {
	*service.StatusChange
	Message string `json:"message"`
}

// Board godoc
// @Summary Admin feedback board
// @Tags admin
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Param sortBy query string false "Sort field" default(createdAt)
// @Param sortOrder query string false "asc or desc" default(desc)
// @Param name query string false "Submitter name"
// @Param email query string false "Submitter email"
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param rating query int false "Rating"
// @Param categoryId query int false "Category id"
// @Param q query string false "Search within the page by name or email"
// @Success 200 {object} AdminView
// @Failure 302
// @Failure 403 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /admin [get]
func (h *AdminHandler) Board(c echo.Context) error {
	filter := gateway.AdminFilter{
		Page:      queryInt(c, "page", 0),
		Size:      queryInt(c, "size", 10),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Name:      strings.TrimSpace(c.QueryParam("name")),
		Email:     strings.TrimSpace(c.QueryParam("email")),
		Status:    model.FeedbackStatus(strings.ToUpper(c.QueryParam("status"))),
		Rating:    queryInt(c, "rating", 0),
	}
	if cid, err := strconv.ParseInt(c.QueryParam("categoryId"), 10, 64); err == nil {
		filter.CategoryID = cid
	}

	svc := h.feedback(c)
	page, err := svc.Load(c.Request().Context(), filter)
	if err != nil {
		return h.fail(c, err)
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	return c.JSON(http.StatusOK, AdminView{
		AdminPage: page,
		Query:     q,
		Visible:   svc.Board().Filter(workflow.Criteria{Query: q}),
		Statuses:  model.Statuses,
		Nav:       h.nav(c),
	})
}

// Approve godoc
// @Summary Approve a feedback item
// @Description The board shows the new status before the feedback service confirms it.
// @Tags admin
// @Produce json
// @Param id path int true "Feedback id"
// @Success 200 {object} StatusChangeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /admin/feedback/{id}/approve [post]
func (h *AdminHandler) Approve(c echo.Context) error {
	return h.changeStatus(c, model.StatusApproved)
}

// Reject godoc
// @Summary Reject a feedback item
// @Tags admin
// @Produce json
// @Param id path int true "Feedback id"
// @Success 200 {object} StatusChangeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /admin/feedback/{id}/reject [post]
func (h *AdminHandler) Reject(c echo.Context) error {
	return h.changeStatus(c, model.StatusRejected)
}

func (h *AdminHandler) changeStatus(c echo.Context, status model.FeedbackStatus) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	change, err := h.feedback(c).ChangeStatus(c.Request().Context(), id, status)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, StatusChangeResponse{
		StatusChange: change,
		Message:      "Feedback " + strings.ToLower(string(status)),
	})
}

// Recategorize godoc
// @Summary Move a feedback item to another category
// @Tags admin
// @Produce json
// @Param id path int true "Feedback id"
// @Param categoryId path int true "Category id"
// @Success 200 {object} model.Feedback
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/feedback/{id}/category/{categoryId} [put]
func (h *AdminHandler) Recategorize(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return err
	}

	updated, err := h.feedback(c).Recategorize(c.Request().Context(), id, categoryID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a feedback item
// @Tags admin
// @Param id path int true "Feedback id"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/feedback/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.feedback(c).Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
