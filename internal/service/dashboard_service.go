package service

import (
	"context"
	"fmt"

	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/session"
	"feedbackhub/internal/workflow"
)

// DashboardService builds the admin and user dashboards.
type DashboardService interface {
	Admin(ctx context.Context) (*workflow.Stats, error)
	User(ctx context.Context) (*UserDashboard, error)
}

// UserDashboard is what a USER sees about their own submissions.
type UserDashboard struct {
	UserID   string                       `json:"userId"`
	Total    int                          `json:"total"`
	ByStatus map[model.FeedbackStatus]int `json:"byStatus"`
	Items    []model.Feedback             `json:"items"`
}

type dashboardService struct {
	api     FeedbackAPI
	session *session.Store
}

// NewDashboardService creates a dashboard service reading identity from store.
func NewDashboardService(api FeedbackAPI, store *session.Store) DashboardService {
	return &dashboardService{api: api, session: store}
}

// Admin aggregates every feedback item.
func (s *dashboardService) Admin(ctx context.Context) (*workflow.Stats, error) {
	items, err := s.api.GetAllFeedback(ctx)
	if err != nil {
		return nil, err
	}
	stats := workflow.ComputeStats(items)
	return &stats, nil
}

// User lists the session user's items. A session holding only the email (set
// by an older login) has it promoted to the user identifier first.
func (s *dashboardService) User(ctx context.Context) (*UserDashboard, error) {
	userID, err := s.resolveUserID(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.api.GetUserFeedback(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserDashboard{
		UserID:   userID,
		Total:    len(items),
		ByStatus: workflow.StatusCounts(items),
		Items:    items,
	}, nil
}

func (s *dashboardService) resolveUserID(ctx context.Context) (string, error) {
	if userID, ok := s.session.UserIdentifier(ctx); ok {
		return userID, nil
	}
	email, ok := s.session.UserEmail(ctx)
	if !ok {
		return "", apperrors.ErrUserIdentifierMissing
	}
	if err := s.session.SetUserID(ctx, email); err != nil {
		return "", fmt.Errorf("store user id: %w", err)
	}
	return email, nil
}
