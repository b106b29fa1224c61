package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/gateway"
	"feedbackhub/internal/model"
)

// CategoryHandler handles category administration.
type CategoryHandler struct {
	*Base
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(base *Base) *CategoryHandler {
	return &CategoryHandler{Base: base}
}

// CategoryRequest is the body of create and update.
type CategoryRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=100"`
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(50)
// @Param name query string false "Name filter"
// @Success 200 {object} model.Page[model.Category]
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	page, err := h.client(c).ListCategories(c.Request().Context(), gateway.CategoryFilter{
		Page: queryInt(c, "page", 0),
		Size: queryInt(c, "size", 50),
		Name: strings.TrimSpace(c.QueryParam("name")),
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} model.Category
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.client(c).GetCategory(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate(c, &req); err != nil {
		return err
	}

	created, err := h.client(c).CreateCategory(c.Request().Context(), model.Category{Name: req.Name})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Rename a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category id"
// @Param request body CategoryRequest true "Category"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate(c, &req); err != nil {
		return err
	}

	updated, err := h.client(c).UpdateCategory(c.Request().Context(), id, model.Category{ID: id, Name: req.Name})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Param id path int true "Category id"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.client(c).DeleteCategory(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
