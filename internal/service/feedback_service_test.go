package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/gateway"
	"feedbackhub/internal/model"
)

const sessionID = "sess-1"

func pendingPage() *model.Page[model.Feedback] {
	return &model.Page[model.Feedback]{
		Content: []model.Feedback{
			{ID: 1, ProductID: "P-1", Rating: 5, Comment: "Great product overall", Status: model.StatusPending,
				Category: &model.CategoryRef{ID: 1, Name: "Bug Report"}},
			{ID: 2, ProductID: "P-2", Rating: 2, Comment: "Arrived broken, sadly", Status: model.StatusRejected},
		},
		TotalElements: 2,
		TotalPages:    1,
		Size:          10,
	}
}

// withStatus returns pendingPage with item id moved to status, as the remote
// reports it after confirming a change.
func withStatus(id int64, status model.FeedbackStatus) *model.Page[model.Feedback] {
	page := pendingPage()
	for i := range page.Content {
		if page.Content[i].ID == id {
			page.Content[i].Status = status
		}
	}
	return page
}

func newTestFeedbackService(api *MockFeedbackAPI) (FeedbackService, *memoryBoards, *recordedEvents) {
	boards := newMemoryBoards()
	events := &recordedEvents{}
	svc := NewFeedbackService(api, Deps{Boards: boards, Moderation: events}, Scope{SessionID: sessionID, Actor: "admin@admin.com"})
	return svc, boards, events
}

func TestFeedbackService_Submit(t *testing.T) {
	t.Run("valid submission starts pending", func(t *testing.T) {
		api := new(MockFeedbackAPI)
		svc, _, _ := newTestFeedbackService(api)
		sub := model.Submission{ProductID: "P-1", Rating: 5, Comment: "Great product overall"}

		api.On("SubmitFeedback", mock.Anything, sub).
			Return(&model.Feedback{ID: 10, ProductID: "P-1", Rating: 5, Comment: "Great product overall"}, nil)

		created, err := svc.Submit(context.Background(), sub)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, created.Status)
		api.AssertExpectations(t)
	})

	t.Run("invalid submission never reaches the remote", func(t *testing.T) {
		api := new(MockFeedbackAPI)
		svc, _, _ := newTestFeedbackService(api)

		_, err := svc.Submit(context.Background(), model.Submission{ProductID: "P-1", Rating: 6, Comment: "Great product overall"})
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		api.AssertNotCalled(t, "SubmitFeedback", mock.Anything, mock.Anything)
	})

	t.Run("remote error is returned", func(t *testing.T) {
		api := new(MockFeedbackAPI)
		svc, _, _ := newTestFeedbackService(api)
		remoteErr := &apperrors.APIError{Kind: apperrors.KindServer, StatusCode: 500}
		api.On("SubmitFeedback", mock.Anything, mock.Anything).Return(nil, remoteErr)

		_, err := svc.Submit(context.Background(), model.Submission{ProductID: "P-1", Rating: 3, Comment: "Middle of the road"})
		assert.ErrorIs(t, err, remoteErr)
	})
}

func TestFeedbackService_LoadCachesPage(t *testing.T) {
	api := new(MockFeedbackAPI)
	svc, boards, _ := newTestFeedbackService(api)
	filter := gateway.AdminFilter{Status: model.StatusPending}
	api.On("SearchAdminFeedback", mock.Anything, filter).Return(pendingPage(), nil)

	page, err := svc.Load(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.TotalElements)
	assert.Len(t, page.Categories, 2)

	cached, ok := boards.Get(context.Background(), sessionID)
	require.True(t, ok)
	assert.Equal(t, filter, cached.Filter)
	assert.Len(t, cached.Items, 2)
}

func TestFeedbackService_ApproveIsVisibleBeforeConfirmation(t *testing.T) {
	api := new(MockFeedbackAPI)
	svc, boards, events := newTestFeedbackService(api)
	ctx := context.Background()
	api.On("SearchAdminFeedback", mock.Anything, gateway.AdminFilter{}).Return(pendingPage(), nil).Once()
	_, err := svc.Load(ctx, gateway.AdminFilter{})
	require.NoError(t, err)

	api.On("UpdateFeedbackStatus", mock.Anything, int64(1), model.StatusApproved).
		Run(func(args mock.Arguments) {
			item, ok := svc.Board().Get(1)
			require.True(t, ok)
			assert.Equal(t, model.StatusApproved, item.Status)

			cached, ok := boards.Get(ctx, sessionID)
			require.True(t, ok)
			assert.Equal(t, model.StatusApproved, cached.Items[0].Status)
		}).
		Return(&model.StatusUpdate{ID: 1, Status: model.StatusApproved}, nil)
	api.On("SearchAdminFeedback", mock.Anything, gateway.AdminFilter{}).Return(withStatus(1, model.StatusApproved), nil).Once()

	change, err := svc.Approve(ctx, 1)
	require.NoError(t, err)
	assert.True(t, change.Confirmed)
	assert.Equal(t, model.StatusPending, change.From)
	assert.Equal(t, model.StatusApproved, change.Feedback.Status)

	cached, ok := boards.Get(ctx, sessionID)
	require.True(t, ok, "refetched page is cached once the call settles")
	assert.Equal(t, model.StatusApproved, cached.Items[0].Status)
	assert.Equal(t, 1, boards.invalidations)
	require.Len(t, events.events, 1)
	assert.Equal(t, model.OutcomeConfirmed, events.events[0].Outcome)
	assert.Equal(t, "admin@admin.com", events.events[0].Actor)
	api.AssertExpectations(t)
}

func TestFeedbackService_ReapproveRejected(t *testing.T) {
	api := new(MockFeedbackAPI)
	svc, _, _ := newTestFeedbackService(api)
	ctx := context.Background()
	api.On("SearchAdminFeedback", mock.Anything, mock.Anything).Return(pendingPage(), nil)
	_, err := svc.Load(ctx, gateway.AdminFilter{})
	require.NoError(t, err)

	api.On("UpdateFeedbackStatus", mock.Anything, int64(2), model.StatusApproved).
		Return(&model.StatusUpdate{ID: 2, Status: model.StatusApproved}, nil)

	change, err := svc.Approve(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, change.From)
	assert.Equal(t, model.StatusApproved, change.To)
}

func TestFeedbackService_FailedConfirmationRefetches(t *testing.T) {
	api := new(MockFeedbackAPI)
	svc, boards, events := newTestFeedbackService(api)
	ctx := context.Background()
	api.On("SearchAdminFeedback", mock.Anything, gateway.AdminFilter{}).Return(pendingPage(), nil)
	_, err := svc.Load(ctx, gateway.AdminFilter{})
	require.NoError(t, err)

	remoteErr := &apperrors.APIError{Kind: apperrors.KindServer, StatusCode: 500, Body: "boom"}
	api.On("UpdateFeedbackStatus", mock.Anything, int64(1), model.StatusRejected).Return(nil, remoteErr)

	change, err := svc.Reject(ctx, 1)
	assert.ErrorIs(t, err, remoteErr)
	require.NotNil(t, change)
	assert.False(t, change.Confirmed)
	assert.Equal(t, model.StatusPending, change.Feedback.Status)

	item, _ := svc.Board().Get(1)
	assert.Equal(t, model.StatusPending, item.Status)
	assert.Equal(t, 1, boards.invalidations)
	require.Len(t, events.events, 1)
	assert.Equal(t, model.OutcomeFailed, events.events[0].Outcome)
	assert.Equal(t, "boom", events.events[0].ErrorMessage)
	api.AssertNumberOfCalls(t, "SearchAdminFeedback", 2)
}

func TestFeedbackService_FailedRefetchRestoresStatus(t *testing.T) {
	api := new(MockFeedbackAPI)
	svc, _, _ := newTestFeedbackService(api)
	ctx := context.Background()
	api.On("SearchAdminFeedback", mock.Anything, gateway.AdminFilter{}).Return(pendingPage(), nil).Once()
	_, err := svc.Load(ctx, gateway.AdminFilter{})
	require.NoError(t, err)

	netErr := &apperrors.APIError{Kind: apperrors.KindNetwork, Err: errors.New("connection refused")}
	api.On("UpdateFeedbackStatus", mock.Anything, int64(1), model.StatusApproved).Return(nil, netErr)
	api.On("SearchAdminFeedback", mock.Anything, gateway.AdminFilter{}).Return(nil, netErr).Once()

	_, err = svc.Approve(ctx, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNetwork))
	item, _ := svc.Board().Get(1)
	assert.Equal(t, model.StatusPending, item.Status)
}

func TestFeedbackService_ApproveUsesCachedPage(t *testing.T) {
	api := new(MockFeedbackAPI)
	boards := newMemoryBoards()
	filter := gateway.AdminFilter{Status: model.StatusPending}
	boards.Set(context.Background(), sessionID, CachedBoard{Filter: filter, Items: pendingPage().Content})
	svc := NewFeedbackService(api, Deps{Boards: boards}, Scope{SessionID: sessionID})

	api.On("UpdateFeedbackStatus", mock.Anything, int64(1), model.StatusApproved).
		Return(&model.StatusUpdate{ID: 1, Status: model.StatusApproved}, nil)
	api.On("SearchAdminFeedback", mock.Anything, filter).Return(withStatus(1, model.StatusApproved), nil)

	change, err := svc.Approve(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, change.From)
	api.AssertNumberOfCalls(t, "SearchAdminFeedback", 1)
}

func TestFeedbackService_ConsecutiveChangesAcrossRequests(t *testing.T) {
	api := new(MockFeedbackAPI)
	boards := newMemoryBoards()
	deps := Deps{Boards: boards, Moderation: &recordedEvents{}}
	scope := Scope{SessionID: sessionID, Actor: "admin@admin.com"}
	ctx := context.Background()

	approved := withStatus(1, model.StatusApproved)
	api.On("SearchAdminFeedback", mock.Anything, gateway.AdminFilter{}).Return(pendingPage(), nil).Once()
	api.On("SearchAdminFeedback", mock.Anything, gateway.AdminFilter{}).Return(approved, nil).Once()
	api.On("UpdateFeedbackStatus", mock.Anything, int64(1), model.StatusApproved).
		Return(&model.StatusUpdate{ID: 1, Status: model.StatusApproved}, nil)

	_, err := NewFeedbackService(api, deps, scope).Load(ctx, gateway.AdminFilter{})
	require.NoError(t, err)

	first, err := NewFeedbackService(api, deps, scope).Approve(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, first.From)
	require.NotNil(t, first.Feedback)

	second := NewFeedbackService(api, deps, scope)
	api.On("UpdateFeedbackStatus", mock.Anything, int64(2), model.StatusPending).
		Run(func(args mock.Arguments) {
			item, ok := second.Board().Get(2)
			require.True(t, ok)
			assert.Equal(t, model.StatusPending, item.Status)
		}).
		Return(&model.StatusUpdate{ID: 2, Status: model.StatusPending}, nil)
	api.On("SearchAdminFeedback", mock.Anything, gateway.AdminFilter{}).Return(approved, nil).Once()

	change, err := second.ChangeStatus(ctx, 2, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, change.From)
	require.NotNil(t, change.Feedback)

	item, ok := second.Board().Get(1)
	require.True(t, ok)
	assert.Equal(t, model.StatusApproved, item.Status)
	api.AssertExpectations(t)
}

func TestFeedbackService_RefetchFailureKeepsConfirmedChange(t *testing.T) {
	api := new(MockFeedbackAPI)
	svc, boards, _ := newTestFeedbackService(api)
	ctx := context.Background()
	api.On("SearchAdminFeedback", mock.Anything, gateway.AdminFilter{}).Return(pendingPage(), nil).Once()
	_, err := svc.Load(ctx, gateway.AdminFilter{})
	require.NoError(t, err)

	api.On("UpdateFeedbackStatus", mock.Anything, int64(1), model.StatusApproved).
		Return(&model.StatusUpdate{ID: 1, Status: model.StatusApproved}, nil)
	api.On("SearchAdminFeedback", mock.Anything, gateway.AdminFilter{}).
		Return(nil, &apperrors.APIError{Kind: apperrors.KindServer, StatusCode: 503}).Once()

	change, err := svc.Approve(ctx, 1)
	require.NoError(t, err)
	assert.True(t, change.Confirmed)

	cached, ok := boards.Get(ctx, sessionID)
	require.True(t, ok)
	assert.Equal(t, model.StatusApproved, cached.Items[0].Status)
}

func TestFeedbackService_InvalidStatus(t *testing.T) {
	api := new(MockFeedbackAPI)
	svc, _, _ := newTestFeedbackService(api)

	_, err := svc.ChangeStatus(context.Background(), 1, "ARCHIVED")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	api.AssertNotCalled(t, "UpdateFeedbackStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestFeedbackService_Delete(t *testing.T) {
	api := new(MockFeedbackAPI)
	svc, boards, events := newTestFeedbackService(api)
	ctx := context.Background()
	api.On("SearchAdminFeedback", mock.Anything, mock.Anything).Return(pendingPage(), nil).Once()
	_, err := svc.Load(ctx, gateway.AdminFilter{})
	require.NoError(t, err)

	remaining := pendingPage()
	remaining.Content = remaining.Content[:1]
	remaining.TotalElements = 1
	api.On("DeleteFeedback", mock.Anything, int64(2)).Return(nil)
	api.On("SearchAdminFeedback", mock.Anything, mock.Anything).Return(remaining, nil).Once()
	require.NoError(t, svc.Delete(ctx, 2))

	_, held := svc.Board().Get(2)
	assert.False(t, held)
	assert.Equal(t, 1, boards.invalidations)
	cached, ok := boards.Get(ctx, sessionID)
	require.True(t, ok)
	assert.Len(t, cached.Items, 1)
	require.Len(t, events.events, 1)
	assert.Equal(t, model.ActionDelete, events.events[0].Action)
	assert.Equal(t, model.StatusRejected, events.events[0].FromStatus)
}

func TestFeedbackService_DeleteFailureKeepsItem(t *testing.T) {
	api := new(MockFeedbackAPI)
	svc, _, events := newTestFeedbackService(api)
	ctx := context.Background()
	api.On("SearchAdminFeedback", mock.Anything, mock.Anything).Return(pendingPage(), nil)
	_, err := svc.Load(ctx, gateway.AdminFilter{})
	require.NoError(t, err)

	api.On("DeleteFeedback", mock.Anything, int64(1)).Return(&apperrors.APIError{Kind: apperrors.KindNotFound, StatusCode: 404})
	err = svc.Delete(ctx, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, held := svc.Board().Get(1)
	assert.True(t, held)
	assert.Equal(t, model.OutcomeFailed, events.events[0].Outcome)
}

func TestFeedbackService_Recategorize(t *testing.T) {
	api := new(MockFeedbackAPI)
	svc, _, events := newTestFeedbackService(api)
	ctx := context.Background()
	api.On("SearchAdminFeedback", mock.Anything, mock.Anything).Return(pendingPage(), nil).Once()
	_, err := svc.Load(ctx, gateway.AdminFilter{})
	require.NoError(t, err)

	moved := pendingPage()
	moved.Content[1].Category = &model.CategoryRef{ID: 4, Name: "Usability"}
	api.On("UpdateFeedbackCategory", mock.Anything, int64(2), int64(4)).
		Return(&model.Feedback{ID: 2, Category: &model.CategoryRef{ID: 4, Name: "Usability"}}, nil)
	api.On("SearchAdminFeedback", mock.Anything, mock.Anything).Return(moved, nil).Once()

	updated, err := svc.Recategorize(ctx, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "Usability", updated.CategoryName())

	item, _ := svc.Board().Get(2)
	assert.Equal(t, "Usability", item.CategoryName())
	assert.Equal(t, int64(4), events.events[0].CategoryID)
}
