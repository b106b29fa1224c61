package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/errors"
	"feedbackhub/internal/model"
)

// ModerationHandler exposes the moderation log.
type ModerationHandler struct {
	*Base
}

// NewModerationHandler creates a new moderation handler.
func NewModerationHandler(base *Base) *ModerationHandler {
	return &ModerationHandler{Base: base}
}

// ModerationView lists moderation events, newest first unless filtered by item.
type ModerationView struct {
	FeedbackID int64                   `json:"feedbackId,omitempty"`
	Events     []model.ModerationEvent `json:"events"`
}

// List godoc
// @Summary Moderation log
// @Description Recent admin actions, or the history of one item in order.
// @Tags admin
// @Produce json
// @Param limit query int false "Maximum events" default(50)
// @Param feedbackId query int false "Only events of this item"
// @Success 200 {object} ModerationView
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/moderation [get]
func (h *ModerationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	moderation := h.services.Moderation

	if raw := c.QueryParam("feedbackId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid feedbackId",
				Code:  "INVALID_ID",
			})
		}
		events, err := moderation.History(ctx, id)
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(http.StatusOK, ModerationView{FeedbackID: id, Events: nonNil(events)})
	}

	events, err := moderation.Recent(ctx, queryInt(c, "limit", 50))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ModerationView{Events: nonNil(events)})
}

func nonNil(events []model.ModerationEvent) []model.ModerationEvent {
	if events == nil {
		return []model.ModerationEvent{}
	}
	return events
}
