package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

const (
	moderationBuffer     = 100
	moderationBatchSize  = 10
	moderationFlushEvery = time.Second
)

// ModerationRecorder keeps the log of admin mutations.
type ModerationRecorder interface {
	Record(ctx context.Context, event model.ModerationEvent)
	Recent(ctx context.Context, limit int) ([]model.ModerationEvent, error)
	History(ctx context.Context, feedbackID int64) ([]model.ModerationEvent, error)
	Close()
}

type moderationLog struct {
	repo   repository.ModerationEventRepository
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	events chan model.ModerationEvent
	done   chan struct{}
}

// NewModerationLog creates a recorder that writes events in batches from a
// background worker. Close flushes what is still buffered.
func NewModerationLog(repo repository.ModerationEventRepository, logger *slog.Logger) ModerationRecorder {
	l := &moderationLog{
		repo:   repo,
		logger: logger,
		events: make(chan model.ModerationEvent, moderationBuffer),
		done:   make(chan struct{}),
	}
	go l.worker(context.Background())
	return l
}

// worker writes buffered events every moderationBatchSize events or every tick.
func (l *moderationLog) worker(ctx context.Context) {
	defer close(l.done)

	batch := make([]model.ModerationEvent, 0, moderationBatchSize)
	ticker := time.NewTicker(moderationFlushEvery)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := l.repo.CreateBatch(ctx, batch); err != nil {
			l.logger.Warn("moderation log flush failed", slog.Int("events", len(batch)), slog.Any("error", err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case event, ok := <-l.events:
			if !ok {
				flush()
				return
			}
			batch = append(batch, event)
			if len(batch) >= moderationBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// Record queues event. When the buffer is full the event is written synchronously.
func (l *moderationLog) Record(ctx context.Context, event model.ModerationEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}

	select {
	case l.events <- event:
	default:
		if err := l.repo.Create(ctx, &event); err != nil {
			l.logger.Warn("moderation log write failed", slog.Int64("feedback_id", event.FeedbackID), slog.Any("error", err))
		}
	}
}

func (l *moderationLog) Recent(ctx context.Context, limit int) ([]model.ModerationEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	return l.repo.ListRecent(ctx, limit)
}

func (l *moderationLog) History(ctx context.Context, feedbackID int64) ([]model.ModerationEvent, error) {
	return l.repo.ListByFeedback(ctx, feedbackID)
}

// Close stops accepting events and waits for the worker to flush.
func (l *moderationLog) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.events)
	l.mu.Unlock()

	<-l.done
}

type nopModerationLog struct{}

// NopModerationLog discards events. Used when no database is configured.
func NopModerationLog() ModerationRecorder {
	return nopModerationLog{}
}

func (nopModerationLog) Record(context.Context, model.ModerationEvent) {}

func (nopModerationLog) Recent(context.Context, int) ([]model.ModerationEvent, error) {
	return []model.ModerationEvent{}, nil
}

func (nopModerationLog) History(context.Context, int64) ([]model.ModerationEvent, error) {
	return []model.ModerationEvent{}, nil
}

func (nopModerationLog) Close() {}
