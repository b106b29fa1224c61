package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/errors"
	"feedbackhub/internal/guard"
	"feedbackhub/internal/model"
)

// FeedbackHandler handles the public submit form and the user lookup.
type FeedbackHandler struct {
	*Base
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(base *Base) *FeedbackHandler {
	return &FeedbackHandler{Base: base}
}

// SubmitRequest represents a feedback submission.
type SubmitRequest struct {
	UserID         string `json:"userId" form:"userId"`
	ProductID      string `json:"productId" form:"productId"`
	Rating         int    `json:"rating" form:"rating"`
	Comment        string `json:"comment" form:"comment"`
	SubmitterName  string `json:"submitterName" form:"submitterName"`
	SubmitterEmail string `json:"submitterEmail" form:"submitterEmail"`
	CategoryID     int64  `json:"categoryId" form:"categoryId"`
}

// SubmitForm is the model of the submit page.
type SubmitForm struct {
	UserID     string           `json:"userId"`
	Email      string           `json:"submitterEmail"`
	Categories []model.Category `json:"categories"`
	Nav        []guard.NavLink  `json:"nav"`
}

// SubmitResponse is returned after a successful submission.
type SubmitResponse struct {
	Feedback *model.Feedback `json:"feedback"`
	Message  string          `json:"message"`
	Redirect guard.Route     `json:"redirect"`
}

// LookupResponse lists the items of one user.
type LookupResponse struct {
	UserID  string           `json:"userId"`
	Items   []model.Feedback `json:"items"`
	Message string           `json:"message,omitempty"`
}

// SubmitFormView godoc
// @Summary Submit form
// @Description Categories are best effort; the list is empty when they cannot be loaded.
// @Tags feedback
// @Produce json
// @Success 200 {object} SubmitForm
// @Router / [get]
func (h *FeedbackHandler) SubmitFormView(c echo.Context) error {
	snap := h.snapshot(c)
	categories, err := h.client(c).ListAllCategories(c.Request().Context())
	if err != nil {
		h.logger.Warn("categories unavailable for submit form", slog.Any("error", err))
		categories = []model.Category{}
	}
	return c.JSON(http.StatusOK, SubmitForm{
		UserID:     snap.Identifier(),
		Email:      snap.UserEmail,
		Categories: categories,
		Nav:        guard.NavLinks(snap),
	})
}

// Submit godoc
// @Summary Submit feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Feedback"
// @Success 201 {object} SubmitResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router / [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	snap := h.snapshot(c)
	sub := model.Submission{
		UserID:         strings.TrimSpace(req.UserID),
		ProductID:      req.ProductID,
		Rating:         req.Rating,
		Comment:        req.Comment,
		SubmitterName:  req.SubmitterName,
		SubmitterEmail: req.SubmitterEmail,
	}
	if sub.UserID == "" {
		sub.UserID = snap.Identifier()
	}
	if sub.SubmitterEmail == "" {
		sub.SubmitterEmail = snap.UserEmail
	}
	if req.CategoryID > 0 {
		sub.Category = &model.CategoryRef{ID: req.CategoryID}
	}

	created, err := h.feedback(c).Submit(c.Request().Context(), sub)
	if err != nil {
		return h.fail(c, err)
	}

	redirect := guard.UserHome
	if snap.Role == model.RoleAdmin {
		redirect = guard.AdminHome
	}
	return c.JSON(http.StatusCreated, SubmitResponse{
		Feedback: created,
		Message:  "Feedback submitted successfully! Redirecting to dashboard...",
		Redirect: redirect,
	})
}

// Lookup godoc
// @Summary Feedback of one user
// @Description Defaults to the session user when userId is omitted.
// @Tags feedback
// @Produce json
// @Param userId query string false "User identifier"
// @Success 200 {object} LookupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /feedback [get]
func (h *FeedbackHandler) Lookup(c echo.Context) error {
	userID := strings.TrimSpace(c.QueryParam("userId"))
	if userID == "" {
		userID = h.snapshot(c).Identifier()
	}
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Please enter a user ID",
			Code:  "USER_ID_REQUIRED",
		})
	}

	items, err := h.feedback(c).ForUser(c.Request().Context(), userID)
	if errors.IsKind(err, errors.KindAuth) {
		return c.JSON(http.StatusOK, LookupResponse{
			UserID:  userID,
			Items:   []model.Feedback{},
			Message: "User ID is not authorized or no feedback found",
		})
	}
	if err != nil {
		return h.fail(c, err)
	}

	resp := LookupResponse{UserID: userID, Items: items}
	if len(items) == 0 {
		resp.Message = "No feedback found for this user ID"
	}
	return c.JSON(http.StatusOK, resp)
}
