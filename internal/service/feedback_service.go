package service

import (
	"context"
	"log/slog"

	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/gateway"
	"feedbackhub/internal/logger"
	"feedbackhub/internal/model"
	"feedbackhub/internal/workflow"
)

// FeedbackAPI is the part of the gateway the feedback workflow calls.
type FeedbackAPI interface {
	SubmitFeedback(ctx context.Context, sub model.Submission) (*model.Feedback, error)
	GetUserFeedback(ctx context.Context, userID string) ([]model.Feedback, error)
	SearchAdminFeedback(ctx context.Context, filter gateway.AdminFilter) (*model.Page[model.Feedback], error)
	GetAllFeedback(ctx context.Context) ([]model.Feedback, error)
	UpdateFeedbackStatus(ctx context.Context, id int64, status model.FeedbackStatus) (*model.StatusUpdate, error)
	UpdateFeedbackCategory(ctx context.Context, id, categoryID int64) (*model.Feedback, error)
	DeleteFeedback(ctx context.Context, id int64) error
}

// FeedbackService runs the submission and moderation workflow for one session.
type FeedbackService interface {
	Submit(ctx context.Context, sub model.Submission) (*model.Feedback, error)
	ForUser(ctx context.Context, userID string) ([]model.Feedback, error)
	Load(ctx context.Context, filter gateway.AdminFilter) (*AdminPage, error)
	Approve(ctx context.Context, id int64) (*StatusChange, error)
	Reject(ctx context.Context, id int64) (*StatusChange, error)
	ChangeStatus(ctx context.Context, id int64, status model.FeedbackStatus) (*StatusChange, error)
	Recategorize(ctx context.Context, id, categoryID int64) (*model.Feedback, error)
	Delete(ctx context.Context, id int64) error
	Board() *workflow.Board
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Validator  *workflow.Validator
	Boards     BoardStore
	Moderation ModerationRecorder
	Logger     *slog.Logger
}

// Scope identifies the session a service acts for.
type Scope struct {
	SessionID string
	Actor     string
}

// AdminPage is one page of the admin list plus its category chart.
type AdminPage struct {
	Items         []model.Feedback         `json:"items"`
	Categories    []workflow.CategoryCount `json:"categories"`
	TotalElements int64                    `json:"totalElements"`
	TotalPages    int                      `json:"totalPages"`
	Number        int                      `json:"number"`
	Size          int                      `json:"size"`
}

// StatusChange reports an approve or reject. Feedback is the locally held copy
// after the change (or after the refetch when Confirmed is false).
type StatusChange struct {
	ID        int64                `json:"id"`
	From      model.FeedbackStatus `json:"from,omitempty"`
	To        model.FeedbackStatus `json:"to"`
	Confirmed bool                 `json:"confirmed"`
	Feedback  *model.Feedback      `json:"feedback,omitempty"`
}

type feedbackService struct {
	api        FeedbackAPI
	validator  *workflow.Validator
	boards     BoardStore
	moderation ModerationRecorder
	logger     *slog.Logger
	scope      Scope

	board  *workflow.Board
	page   CachedBoard
	loaded bool
}

// NewFeedbackService creates the workflow for the session described by scope.
func NewFeedbackService(api FeedbackAPI, deps Deps, scope Scope) FeedbackService {
	s := &feedbackService{
		api:        api,
		validator:  deps.Validator,
		boards:     deps.Boards,
		moderation: deps.Moderation,
		logger:     deps.Logger,
		scope:      scope,
		board:      workflow.NewBoard(nil),
	}
	if s.validator == nil {
		s.validator = workflow.NewValidator()
	}
	if s.boards == nil {
		s.boards = nopBoards{}
	}
	if s.moderation == nil {
		s.moderation = NopModerationLog()
	}
	if s.logger == nil {
		s.logger = logger.Discard()
	}
	return s
}

// Board returns the items this service currently holds.
func (s *feedbackService) Board() *workflow.Board {
	return s.board
}

// Submit validates sub and posts it. Items always start PENDING.
func (s *feedbackService) Submit(ctx context.Context, sub model.Submission) (*model.Feedback, error) {
	clean, err := s.validator.Submission(sub)
	if err != nil {
		return nil, err
	}
	created, err := s.api.SubmitFeedback(ctx, clean)
	if err != nil {
		return nil, err
	}
	if created.Status == "" {
		created.Status = model.StatusPending
	}
	return created, nil
}

// ForUser lists the items submitted under userID.
func (s *feedbackService) ForUser(ctx context.Context, userID string) ([]model.Feedback, error) {
	return s.api.GetUserFeedback(ctx, userID)
}

// Load fetches one admin page, holds it and caches it for the session.
func (s *feedbackService) Load(ctx context.Context, filter gateway.AdminFilter) (*AdminPage, error) {
	page, err := s.api.SearchAdminFeedback(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.hold(filter, page)
	s.boards.Set(ctx, s.scope.SessionID, s.page)
	return adminPage(s.page), nil
}

func (s *feedbackService) hold(filter gateway.AdminFilter, page *model.Page[model.Feedback]) {
	s.board.Replace(page.Content)
	s.page = CachedBoard{
		Filter:        filter,
		Items:         page.Content,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Number:        page.Number,
		Size:          page.Size,
	}
	s.loaded = true
}

func adminPage(b CachedBoard) *AdminPage {
	return &AdminPage{
		Items:         b.Items,
		Categories:    workflow.GroupByCategory(b.Items),
		TotalElements: b.TotalElements,
		TotalPages:    b.TotalPages,
		Number:        b.Number,
		Size:          b.Size,
	}
}

// hydrate picks up the page the session last loaded, if it is still cached.
func (s *feedbackService) hydrate(ctx context.Context) {
	if s.loaded {
		return
	}
	if cached, ok := s.boards.Get(ctx, s.scope.SessionID); ok {
		s.board.Replace(cached.Items)
		s.page = *cached
		s.loaded = true
	}
}

func (s *feedbackService) Approve(ctx context.Context, id int64) (*StatusChange, error) {
	return s.ChangeStatus(ctx, id, model.StatusApproved)
}

func (s *feedbackService) Reject(ctx context.Context, id int64) (*StatusChange, error) {
	return s.ChangeStatus(ctx, id, model.StatusRejected)
}

// ChangeStatus applies status to the held item right away, then asks the remote
// to confirm. Once the call settles the held page is refetched and cached again.
// When the confirmation and the refetch both fail the old status is restored.
func (s *feedbackService) ChangeStatus(ctx context.Context, id int64, status model.FeedbackStatus) (*StatusChange, error) {
	s.hydrate(ctx)

	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	if current, ok := s.board.Get(id); ok && current.Status != "" {
		if err := workflow.CanTransition(current.Status, status); err != nil {
			return nil, err
		}
	}

	prev, held := s.board.SetStatus(id, status)
	if held {
		s.publish(ctx)
	}
	change := &StatusChange{ID: id, From: prev, To: status}

	_, err := s.api.UpdateFeedbackStatus(ctx, id, status)
	s.record(ctx, model.ModerationEvent{
		FeedbackID: id,
		Action:     model.ActionStatusChange,
		FromStatus: prev,
		ToStatus:   status,
	}, err)

	if err != nil {
		s.settle(ctx, id, func() {
			if held {
				s.board.SetStatus(id, prev)
			}
		})
		change.Feedback = s.held(id)
		return change, err
	}

	s.settle(ctx, id, nil)
	change.Confirmed = true
	change.Feedback = s.held(id)
	return change, nil
}

// publish makes the held page visible to the session's other requests.
func (s *feedbackService) publish(ctx context.Context) {
	cached := s.page
	cached.Items = s.board.Items()
	s.boards.Set(ctx, s.scope.SessionID, cached)
}

// settle runs after every mutation. The cached page is invalidated and, when
// the session holds one, refetched with the same filter and cached again. If
// the refetch fails, stale runs against the held page before it is cached.
func (s *feedbackService) settle(ctx context.Context, id int64, stale func()) {
	s.boards.Invalidate(ctx, s.scope.SessionID)
	if !s.loaded {
		return
	}

	page, err := s.api.SearchAdminFeedback(ctx, s.page.Filter)
	if err != nil {
		s.logger.Warn("refetch after mutation",
			slog.Int64("feedback_id", id),
			slog.Any("error", err),
		)
		if stale != nil {
			stale()
		}
		s.publish(ctx)
		return
	}
	s.hold(s.page.Filter, page)
	s.boards.Set(ctx, s.scope.SessionID, s.page)
}

func (s *feedbackService) held(id int64) *model.Feedback {
	if item, ok := s.board.Get(id); ok {
		return &item
	}
	return nil
}

// Recategorize assigns categoryID to the item.
func (s *feedbackService) Recategorize(ctx context.Context, id, categoryID int64) (*model.Feedback, error) {
	s.hydrate(ctx)

	updated, err := s.api.UpdateFeedbackCategory(ctx, id, categoryID)
	s.record(ctx, model.ModerationEvent{
		FeedbackID: id,
		Action:     model.ActionRecategorize,
		CategoryID: categoryID,
	}, err)
	if err != nil {
		s.settle(ctx, id, nil)
		return nil, err
	}

	category := updated.Category
	if category == nil {
		category = &model.CategoryRef{ID: categoryID}
	}
	s.board.SetCategory(id, category)
	s.settle(ctx, id, nil)
	return updated, nil
}

// Delete removes the item remotely, then from the held page.
func (s *feedbackService) Delete(ctx context.Context, id int64) error {
	s.hydrate(ctx)

	var from model.FeedbackStatus
	if item, ok := s.board.Get(id); ok {
		from = item.Status
	}

	err := s.api.DeleteFeedback(ctx, id)
	s.record(ctx, model.ModerationEvent{
		FeedbackID: id,
		Action:     model.ActionDelete,
		FromStatus: from,
	}, err)
	if err != nil {
		s.settle(ctx, id, nil)
		return err
	}
	s.board.Remove(id)
	s.settle(ctx, id, nil)
	return nil
}

func (s *feedbackService) record(ctx context.Context, event model.ModerationEvent, err error) {
	event.Actor = s.scope.Actor
	event.Outcome = model.OutcomeConfirmed
	if err != nil {
		event.Outcome = model.OutcomeFailed
		event.ErrorMessage = err.Error()
	}
	s.moderation.Record(ctx, event)
}

type nopBoards struct{}

func (nopBoards) Get(context.Context, string) (*CachedBoard, bool) { return nil, false }
func (nopBoards) Set(context.Context, string, CachedBoard)         {}
func (nopBoards) Invalidate(context.Context, string)               {}
