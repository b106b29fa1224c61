package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
)

// AdminFilter holds the query of the paginated admin feedback search.
// Zero values mean "no filter" except for paging and sorting, which default to
// page 0, size 10, createdAt descending.
type AdminFilter struct {
	Page       int
	Size       int
	SortBy     string
	SortOrder  string
	Name       string
	Email      string
	Status     model.FeedbackStatus
	Rating     int
	CategoryID int64
}

func (f AdminFilter) values() url.Values {
	page, size := f.Page, f.Size
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	sortBy, sortOrder := f.SortBy, f.SortOrder
	if sortBy == "" {
		sortBy = "createdAt"
	}
	if sortOrder == "" {
		sortOrder = "desc"
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	q.Set("sortBy", sortBy)
	q.Set("sortOrder", sortOrder)
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.Email != "" {
		q.Set("email", f.Email)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Rating != 0 {
		q.Set("rating", strconv.Itoa(f.Rating))
	}
	if f.CategoryID != 0 {
		q.Set("category", strconv.FormatInt(f.CategoryID, 10))
	}
	return q
}

// SubmitFeedback posts a new item. The remote assigns id, createdAt and PENDING.
func (c *Client) SubmitFeedback(ctx context.Context, sub model.Submission) (*model.Feedback, error) {
	var created model.Feedback
	err := c.do(ctx, request{
		op:     "submitFeedback",
		method: http.MethodPost,
		path:   "/api/feedback",
		body:   sub,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetUserFeedback lists the items submitted under userID. No items, including
// a 404, is an empty list rather than an error.
func (c *Client) GetUserFeedback(ctx context.Context, userID string) ([]model.Feedback, error) {
	items := []model.Feedback{}
	err := c.do(ctx, request{
		op:     "getUserFeedback",
		method: http.MethodGet,
		path:   "/api/feedback/user/" + url.PathEscape(userID),
	}, &items)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return []model.Feedback{}, nil
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Feedback{}
	}
	return items, nil
}

// SearchAdminFeedback runs the paginated, filtered admin search.
func (c *Client) SearchAdminFeedback(ctx context.Context, filter AdminFilter) (*model.Page[model.Feedback], error) {
	const op = "searchAdminFeedback"
	if err := c.requireAdmin(ctx, op); err != nil {
		return nil, err
	}
	var page model.Page[model.Feedback]
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		path:   "/api/v1/admin/feedback",
		query:  filter.values(),
	}, &page)
	if err != nil {
		return nil, err
	}
	if page.Content == nil {
		page.Content = []model.Feedback{}
	}
	return &page, nil
}

// GetAllFeedback lists every item without paging.
func (c *Client) GetAllFeedback(ctx context.Context) ([]model.Feedback, error) {
	const op = "getAllFeedback"
	if err := c.requireAdmin(ctx, op); err != nil {
		return nil, err
	}
	items := []model.Feedback{}
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodGet,
		path:   "/api/v1/admin/feedback/all",
	}, &items)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Feedback{}
	}
	return items, nil
}

// UpdateFeedbackStatus moves an item to status.
func (c *Client) UpdateFeedbackStatus(ctx context.Context, id int64, status model.FeedbackStatus) (*model.StatusUpdate, error) {
	const op = "updateFeedbackStatus"
	if err := c.requireAdmin(ctx, op); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, &apperrors.APIError{
			Kind:     apperrors.KindValidation,
			Messages: []string{fmt.Sprintf("invalid feedback status: %q", status)},
			Err:      apperrors.ErrInvalidStatus,
		}
	}
	var updated model.StatusUpdate
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodPut,
		path:   fmt.Sprintf("/api/v1/admin/feedback/%d/status", id),
		body:   model.StatusUpdate{Status: status},
	}, &updated)
	if err != nil {
		return nil, err
	}
	if updated.ID == 0 {
		updated.ID = id
	}
	if updated.Status == "" {
		updated.Status = status
	}
	return &updated, nil
}

// UpdateFeedbackCategory assigns an existing category to an item.
func (c *Client) UpdateFeedbackCategory(ctx context.Context, id, categoryID int64) (*model.Feedback, error) {
	const op = "updateFeedbackCategory"
	if err := c.requireAdmin(ctx, op); err != nil {
		return nil, err
	}
	var updated model.Feedback
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodPut,
		path:   fmt.Sprintf("/api/v1/admin/feedback/%d/category/%d", id, categoryID),
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteFeedback removes an item.
func (c *Client) DeleteFeedback(ctx context.Context, id int64) error {
	const op = "deleteFeedback"
	if err := c.requireAdmin(ctx, op); err != nil {
		return err
	}
	return c.do(ctx, request{
		op:     op,
		method: http.MethodDelete,
		path:   fmt.Sprintf("/api/v1/admin/feedback/%d", id),
	}, nil)
}
