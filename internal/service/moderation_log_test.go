package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"feedbackhub/internal/cache"
	"feedbackhub/internal/logger"
	"feedbackhub/internal/model"
)

func TestModerationLog_FlushesFullBatch(t *testing.T) {
	repo := new(MockModerationEventRepository)
	flushed := make(chan []model.ModerationEvent, moderationBatchSize)
	repo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { flushed <- args.Get(1).([]model.ModerationEvent) }).
		Return(nil)

	l := NewModerationLog(repo, logger.Discard())
	defer l.Close()

	for i := 0; i < moderationBatchSize; i++ {
		l.Record(context.Background(), model.ModerationEvent{FeedbackID: int64(i), Action: model.ActionDelete})
	}

	written := 0
	timeout := time.After(500 * time.Millisecond)
	for written < moderationBatchSize {
		select {
		case batch := <-flushed:
			assert.False(t, batch[0].CreatedAt.IsZero())
			written += len(batch)
		case <-timeout:
			t.Fatalf("only %d events flushed", written)
		}
	}
	assert.Equal(t, moderationBatchSize, written)
}

func TestModerationLog_CloseFlushesRemainder(t *testing.T) {
	repo := new(MockModerationEventRepository)
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(events []model.ModerationEvent) bool {
		return len(events) == 3
	})).Return(nil).Once()

	l := NewModerationLog(repo, logger.Discard())
	for i := 0; i < 3; i++ {
		l.Record(context.Background(), model.ModerationEvent{FeedbackID: int64(i)})
	}
	l.Close()
	l.Close()

	repo.AssertExpectations(t)
	l.Record(context.Background(), model.ModerationEvent{FeedbackID: 99})
}

func TestModerationLog_FlushErrorIsNotFatal(t *testing.T) {
	repo := new(MockModerationEventRepository)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("db down"))

	l := NewModerationLog(repo, logger.Discard())
	l.Record(context.Background(), model.ModerationEvent{FeedbackID: 1})
	l.Close()
	repo.AssertNumberOfCalls(t, "CreateBatch", 1)
}

func TestModerationLog_Recent(t *testing.T) {
	repo := new(MockModerationEventRepository)
	repo.On("ListRecent", mock.Anything, 50).Return([]model.ModerationEvent{{FeedbackID: 3}}, nil)
	repo.On("ListByFeedback", mock.Anything, int64(3)).Return([]model.ModerationEvent{{FeedbackID: 3}}, nil)

	l := NewModerationLog(repo, logger.Discard())
	defer l.Close()

	events, err := l.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	history, err := l.History(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestNopModerationLog(t *testing.T) {
	l := NopModerationLog()
	l.Record(context.Background(), model.ModerationEvent{FeedbackID: 1})
	events, err := l.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
	l.Close()
}

func TestBoardCache_WithoutRedisMisses(t *testing.T) {
	ctx := context.Background()
	boards := NewBoardCache(nil, time.Minute)
	boards.Set(ctx, "s", CachedBoard{Items: []model.Feedback{{ID: 1}}})

	_, ok := boards.Get(ctx, "s")
	assert.False(t, ok)
	boards.Invalidate(ctx, "s")

	unreachable := NewBoardCache(cache.New("127.0.0.1:1", "", 0), time.Minute)
	unreachable.Set(ctx, "s", CachedBoard{})
	_, ok = unreachable.Get(ctx, "s")
	assert.False(t, ok)
}
