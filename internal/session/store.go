// Package session holds the client-side record of the current identity: the
// remote auth token, the role and the user identifier.
package session

import (
	"context"

	"feedbackhub/internal/model"
)

// Persistence keys. They are written and cleared as a group.
const (
	KeyToken     = "token"
	KeyRole      = "userRole"
	KeyUserID    = "userId"
	KeyUserEmail = "userEmail"
)

var allKeys = []string{KeyToken, KeyRole, KeyUserID, KeyUserEmail}

// Backend is the durable key-value storage behind a Store.
// Save merges fields in one write; Clear removes every key.
type Backend interface {
	ID() string
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, fields map[string]string) error
	Clear(ctx context.Context) error
}

// Session is one consistent read of the stored fields.
type Session struct {
	Token     string     `json:"-"`
	Role      model.Role `json:"role,omitempty"`
	UserID    string     `json:"userId,omitempty"`
	UserEmail string     `json:"userEmail,omitempty"`
}

// Authenticated is true iff a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Partial reports the anomaly of a token without a role or a role without a token.
func (s Session) Partial() bool {
	return (s.Token != "") != (s.Role != model.RoleNone)
}

// Identifier returns the user identifier, falling back to the stored email.
func (s Session) Identifier() string {
	if s.UserID != "" {
		return s.UserID
	}
	return s.UserEmail
}

// Store is the Session Store. Accessors never fail: a backend error reads as absent.
type Store struct {
	backend Backend
}

// NewStore creates a store over backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// ID is the namespace of the underlying backend.
func (s *Store) ID() string {
	return s.backend.ID()
}

// SetSession writes token, role and user identifier in a single backend write,
// so no reader sees the token without the role.
func (s *Store) SetSession(ctx context.Context, token string, role model.Role, userIdentifier string) error {
	return s.backend.Save(ctx, map[string]string{
		KeyToken:     token,
		KeyRole:      string(role),
		KeyUserID:    userIdentifier,
		KeyUserEmail: userIdentifier,
	})
}

// SetIdentity stores the user identifier only. Used after registration.
func (s *Store) SetIdentity(ctx context.Context, userIdentifier string) error {
	return s.backend.Save(ctx, map[string]string{
		KeyUserID:    userIdentifier,
		KeyUserEmail: userIdentifier,
	})
}

// SetUserID overwrites the user identifier, keeping everything else.
func (s *Store) SetUserID(ctx context.Context, userID string) error {
	return s.backend.Save(ctx, map[string]string{KeyUserID: userID})
}

// Clear removes every session field. Clearing an empty session succeeds.
func (s *Store) Clear(ctx context.Context) error {
	return s.backend.Clear(ctx)
}

// Snapshot reads all fields at once.
func (s *Store) Snapshot(ctx context.Context) Session {
	fields, err := s.backend.Load(ctx)
	if err != nil || fields == nil {
		return Session{}
	}
	return Session{
		Token:     fields[KeyToken],
		Role:      model.ParseRole(fields[KeyRole]),
		UserID:    fields[KeyUserID],
		UserEmail: fields[KeyUserEmail],
	}
}

func (s *Store) Token(ctx context.Context) (string, bool) {
	v := s.Snapshot(ctx).Token
	return v, v != ""
}

func (s *Store) Role(ctx context.Context) (model.Role, bool) {
	v := s.Snapshot(ctx).Role
	return v, v != model.RoleNone
}

func (s *Store) UserIdentifier(ctx context.Context) (string, bool) {
	v := s.Snapshot(ctx).UserID
	return v, v != ""
}

func (s *Store) UserEmail(ctx context.Context) (string, bool) {
	v := s.Snapshot(ctx).UserEmail
	return v, v != ""
}

// IsAuthenticated is true iff a token is present. Tokens never expire locally;
// only a 401/403 from the remote reveals an invalid one.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.Snapshot(ctx).Authenticated()
}

// HasRole reports whether the stored role equals role.
func (s *Store) HasRole(ctx context.Context, role model.Role) bool {
	stored, ok := s.Role(ctx)
	return ok && stored == role
}
