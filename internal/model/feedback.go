package model

// FeedbackStatus is the review state of a feedback item.
type FeedbackStatus string

const (
	StatusPending  FeedbackStatus = "PENDING"
	StatusApproved FeedbackStatus = "APPROVED"
	StatusRejected FeedbackStatus = "REJECTED"
)

// Statuses lists every status in display order.
var Statuses = []FeedbackStatus{StatusPending, StatusApproved, StatusRejected}

// Valid reports whether s is one of the three review states.
func (s FeedbackStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Feedback is a user-submitted rating/comment record. The remote service owns it;
// the client only holds copies.
type Feedback struct {
	ID             int64          `json:"id,omitempty"`
	UserID         string         `json:"userId,omitempty"`
	SubmitterName  string         `json:"submitterName,omitempty"`
	SubmitterEmail string         `json:"submitterEmail,omitempty"`
	ProductID      string         `json:"productId"`
	Rating         int            `json:"rating"`
	Comment        string         `json:"comment"`
	Status         FeedbackStatus `json:"status,omitempty"`
	Category       *CategoryRef   `json:"category,omitempty"`
	CreatedAt      Timestamp      `json:"createdAt,omitempty"`
}

// CategoryName returns the category label used for grouping.
func (f Feedback) CategoryName() string {
	if f.Category == nil || f.Category.Name == "" {
		return "Uncategorized"
	}
	return f.Category.Name
}

// Submission is the payload of a new feedback item. Status is never sent; the
// remote forces PENDING.
type Submission struct {
	UserID         string       `json:"userId,omitempty"`
	SubmitterName  string       `json:"submitterName,omitempty" validate:"max=255"`
	SubmitterEmail string       `json:"submitterEmail,omitempty" validate:"omitempty,email"`
	ProductID      string       `json:"productId" validate:"required,max=100"`
	Rating         int          `json:"rating" validate:"required,min=1,max=5"`
	Comment        string       `json:"comment" validate:"required,min=10,max=500"`
	Category       *CategoryRef `json:"category,omitempty"`
}

// StatusUpdate is the body and response of a status change.
type StatusUpdate struct {
	ID     int64          `json:"id,omitempty"`
	Status FeedbackStatus `json:"status"`
}
