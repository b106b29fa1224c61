package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModerationAction names an admin mutation of a feedback item.
type ModerationAction string

const (
	ActionStatusChange ModerationAction = "status_change"
	ActionDelete       ModerationAction = "delete"
	ActionRecategorize ModerationAction = "recategorize"
)

// ModerationOutcome records whether the remote confirmed the mutation.
type ModerationOutcome string

const (
	OutcomeConfirmed ModerationOutcome = "confirmed"
	OutcomeFailed    ModerationOutcome = "failed"
)

// ModerationEvent is a log entry for an admin action on a feedback item.
// Failed events mark optimistic updates the remote never confirmed.
type ModerationEvent struct {
	ID           uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	FeedbackID   int64             `json:"feedbackId" gorm:"not null;index"`
	Action       ModerationAction  `json:"action" gorm:"type:varchar(30);not null;index"`
	FromStatus   FeedbackStatus    `json:"fromStatus,omitempty" gorm:"type:varchar(20)"`
	ToStatus     FeedbackStatus    `json:"toStatus,omitempty" gorm:"type:varchar(20)"`
	CategoryID   int64             `json:"categoryId,omitempty"`
	Actor        string            `json:"actor" gorm:"size:255;not null;index"`
	Outcome      ModerationOutcome `json:"outcome" gorm:"type:varchar(20);not null;index"`
	ErrorMessage string            `json:"errorMessage,omitempty" gorm:"type:text"`
	CreatedAt    time.Time         `json:"createdAt" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (e *ModerationEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
