// Package workflow holds the feedback status state machine and the locally held
// item set the admin and dashboard views operate on.
package workflow

import (
	"feedbackhub/internal/errors"
	"feedbackhub/internal/model"
)

// CanTransition reports whether an admin may move an item from one status to
// another. Admins may override in any direction among the three states,
// including re-approving a rejected item.
func CanTransition(from, to model.FeedbackStatus) error {
	if !from.Valid() || !to.Valid() {
		return errors.ErrInvalidStatus
	}
	return nil
}
