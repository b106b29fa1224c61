package model

// Category groups feedback items. Its lifecycle is owned by admin CRUD calls
// against the remote service.
type Category struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryRef is how a feedback item references its category.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// DefaultCategories are created by the seed command when missing.
var DefaultCategories = []string{"Bug Report", "Feature Request", "General Feedback", "Usability"}
