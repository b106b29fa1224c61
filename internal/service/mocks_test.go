package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"feedbackhub/internal/gateway"
	"feedbackhub/internal/model"
)

// MockFeedbackAPI is a mock implementation of FeedbackAPI.
type MockFeedbackAPI struct {
	mock.Mock
}

func (m *MockFeedbackAPI) SubmitFeedback(ctx context.Context, sub model.Submission) (*model.Feedback, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feedback), args.Error(1)
}

func (m *MockFeedbackAPI) GetUserFeedback(ctx context.Context, userID string) ([]model.Feedback, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feedback), args.Error(1)
}

func (m *MockFeedbackAPI) SearchAdminFeedback(ctx context.Context, filter gateway.AdminFilter) (*model.Page[model.Feedback], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Feedback]), args.Error(1)
}

func (m *MockFeedbackAPI) GetAllFeedback(ctx context.Context) ([]model.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feedback), args.Error(1)
}

func (m *MockFeedbackAPI) UpdateFeedbackStatus(ctx context.Context, id int64, status model.FeedbackStatus) (*model.StatusUpdate, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StatusUpdate), args.Error(1)
}

func (m *MockFeedbackAPI) UpdateFeedbackCategory(ctx context.Context, id, categoryID int64) (*model.Feedback, error) {
	args := m.Called(ctx, id, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feedback), args.Error(1)
}

func (m *MockFeedbackAPI) DeleteFeedback(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockModerationEventRepository is a mock implementation of ModerationEventRepository.
type MockModerationEventRepository struct {
	mock.Mock
}

func (m *MockModerationEventRepository) Create(ctx context.Context, event *model.ModerationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockModerationEventRepository) CreateBatch(ctx context.Context, events []model.ModerationEvent) error {
	cp := make([]model.ModerationEvent, len(events))
	copy(cp, events)
	args := m.Called(ctx, cp)
	return args.Error(0)
}

func (m *MockModerationEventRepository) ListRecent(ctx context.Context, limit int) ([]model.ModerationEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ModerationEvent), args.Error(1)
}

func (m *MockModerationEventRepository) ListByFeedback(ctx context.Context, feedbackID int64) ([]model.ModerationEvent, error) {
	args := m.Called(ctx, feedbackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ModerationEvent), args.Error(1)
}

// memoryBoards is an in-memory BoardStore that counts invalidations.
type memoryBoards struct {
	mu            sync.Mutex
	boards        map[string]CachedBoard
	invalidations int
}

func newMemoryBoards() *memoryBoards {
	return &memoryBoards{boards: map[string]CachedBoard{}}
}

func (b *memoryBoards) Get(_ context.Context, sessionID string) (*CachedBoard, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	board, ok := b.boards[sessionID]
	if !ok {
		return nil, false
	}
	return &board, true
}

func (b *memoryBoards) Set(_ context.Context, sessionID string, board CachedBoard) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boards[sessionID] = board
}

func (b *memoryBoards) Invalidate(_ context.Context, sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.boards, sessionID)
	b.invalidations++
}

// recordedEvents collects moderation events synchronously.
type recordedEvents struct {
	mu     sync.Mutex
	events []model.ModerationEvent
}

func (r *recordedEvents) Record(_ context.Context, event model.ModerationEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordedEvents) Recent(context.Context, int) ([]model.ModerationEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.ModerationEvent(nil), r.events...), nil
}

func (r *recordedEvents) History(context.Context, int64) ([]model.ModerationEvent, error) {
	return nil, nil
}

func (r *recordedEvents) Close() {}
