package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"feedbackhub/internal/model"
)

// CategoryFilter pages through categories, optionally filtered by name.
type CategoryFilter struct {
	Page int
	Size int
	Name string
}

func (f CategoryFilter) values() url.Values {
	page, size := f.Page, f.Size
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 50
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	return q
}

// ListCategories returns one page of categories.
func (c *Client) ListCategories(ctx context.Context, filter CategoryFilter) (*model.Page[model.Category], error) {
	const op = "listCategories"
	if err := c.requireAdmin(ctx, op); err != nil {
		return nil, err
	}
	var page model.Page[model.Category]
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		path:   "/api/v1/admin/categories",
		query:  filter.values(),
	}, &page)
	if err != nil {
		return nil, err
	}
	if page.Content == nil {
		page.Content = []model.Category{}
	}
	return &page, nil
}

// ListAllCategories returns every category. The public submit form uses it, so
// there is no local role check; the form ignores a failure.
func (c *Client) ListAllCategories(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	err := c.do(ctx, request{
		op:     "listAllCategories",
		method: http.MethodGet,
		path:   "/api/v1/admin/categories/all",
	}, &categories)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// GetCategory fetches one category.
func (c *Client) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	const op = "getCategory"
	if err := c.requireAdmin(ctx, op); err != nil {
		return nil, err
	}
	var category model.Category
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/v1/admin/categories/%d", id),
	}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a category. The remote rejects duplicate names.
func (c *Client) CreateCategory(ctx context.Context, category model.Category) (*model.Category, error) {
	const op = "createCategory"
	if err := c.requireAdmin(ctx, op); err != nil {
		return nil, err
	}
	var created model.Category
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   "/api/v1/admin/categories",
		body:   model.Category{Name: category.Name},
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, category model.Category) (*model.Category, error) {
	const op = "updateCategory"
	if err := c.requireAdmin(ctx, op); err != nil {
		return nil, err
	}
	var updated model.Category
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodPut,
		path:   fmt.Sprintf("/api/v1/admin/categories/%d", id),
		body:   model.Category{Name: category.Name},
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	const op = "deleteCategory"
	if err := c.requireAdmin(ctx, op); err != nil {
		return err
	}
	return c.do(ctx, request{
		op:     op,
		method: http.MethodDelete,
		path:   fmt.Sprintf("/api/v1/admin/categories/%d", id),
	}, nil)
}
