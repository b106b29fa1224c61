package repository

import (
	"context"

	"gorm.io/gorm"

	"feedbackhub/internal/model"
)

// ModerationEventRepository defines moderation log persistence operations.
type ModerationEventRepository interface {
	Create(ctx context.Context, event *model.ModerationEvent) error
	CreateBatch(ctx context.Context, events []model.ModerationEvent) error
	ListRecent(ctx context.Context, limit int) ([]model.ModerationEvent, error)
	ListByFeedback(ctx context.Context, feedbackID int64) ([]model.ModerationEvent, error)
}

type moderationEventRepository struct {
	db *gorm.DB
}

// NewModerationEventRepository creates a new moderation event repository.
func NewModerationEventRepository(db *gorm.DB) ModerationEventRepository {
	return &moderationEventRepository{db: db}
}

// Create creates a single moderation event.
func (r *moderationEventRepository) Create(ctx context.Context, event *model.ModerationEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// CreateBatch creates multiple moderation events in a single transaction.
func (r *moderationEventRepository) CreateBatch(ctx context.Context, events []model.ModerationEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(events, 100).Error
}

// ListRecent returns the latest events, newest first.
func (r *moderationEventRepository) ListRecent(ctx context.Context, limit int) ([]model.ModerationEvent, error) {
	var events []model.ModerationEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// ListByFeedback returns the history of one feedback item, oldest first.
func (r *moderationEventRepository) ListByFeedback(ctx context.Context, feedbackID int64) ([]model.ModerationEvent, error) {
	var events []model.ModerationEvent
	err := r.db.WithContext(ctx).
		Where("feedback_id = ?", feedbackID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}
