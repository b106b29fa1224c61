package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/guard"
	"feedbackhub/internal/service"
	"feedbackhub/internal/workflow"
)

// DashboardHandler serves the admin and user dashboards.
type DashboardHandler struct {
	*Base
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(base *Base) *DashboardHandler {
	return &DashboardHandler{Base: base}
}

// AdminDashboardView is the admin dashboard.
type AdminDashboardView struct {
	*workflow.Stats
	Nav []guard.NavLink `json:"nav"`
}

// UserDashboardView is the user dashboard.
type UserDashboardView struct {
	*service.UserDashboard
	Nav []guard.NavLink `json:"nav"`
}

// Admin godoc
// @Summary Admin dashboard
// @Description Status counts, category chart, rating distribution, recent activity, average rating and monthly trend over every item.
// @Tags dashboard
// @Produce json
// @Success 200 {object} AdminDashboardView
// @Failure 403 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	stats, err := h.dashboard(c).Admin(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, AdminDashboardView{Stats: stats, Nav: h.nav(c)})
}

// User godoc
// @Summary User dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} UserDashboardView
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /user-dashboard [get]
func (h *DashboardHandler) User(c echo.Context) error {
	dash, err := h.dashboard(c).User(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, UserDashboardView{UserDashboard: dash, Nav: h.nav(c)})
}
