package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/session"
)

// fakeRemote records every request and answers with the registered handler.
type fakeRemote struct {
	server *httptest.Server
	calls  atomic.Int32

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	lastAuth string
	lastURL  string
}

func newFakeRemote(t *testing.T) *fakeRemote {
	t.Helper()
	f := &fakeRemote{handlers: map[string]http.HandlerFunc{}}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		f.mu.Lock()
		f.lastAuth = r.Header.Get("Authorization")
		f.lastURL = r.URL.String()
		h, ok := f.handlers[r.Method+" "+r.URL.Path]
		f.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeRemote) on(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method+" "+path] = h
}

func (f *fakeRemote) auth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *fakeRemote) url() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastURL
}

func respond(status int, body interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}
}

type recorder struct {
	mu     sync.Mutex
	calls  map[string]string
	denied []string
}

func (r *recorder) RecordCall(op, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = map[string]string{}
	}
	r.calls[op] = outcome
}

func (r *recorder) RecordAccessDenied(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.denied = append(r.denied, op)
}

func newTestClient(t *testing.T, remote *fakeRemote) (*Client, *session.Store, *recorder) {
	t.Helper()
	store := session.NewStore(session.NewMemoryBackend("test"))
	rec := &recorder{}
	return New(remote.server.URL+"/", store, WithMetrics(rec)), store, rec
}

func loginAs(t *testing.T, store *session.Store, role model.Role) {
	t.Helper()
	require.NoError(t, store.SetSession(context.Background(), "tok-"+string(role), role, "who@x.io"))
}

func TestLogin_StoresSession(t *testing.T) {
	remote := newFakeRemote(t)
	remote.on(http.MethodPost, "/api/auth/login", respond(http.StatusOK, map[string]string{
		"token": "T1", "role": "ADMIN", "email": "admin@admin.com",
	}))
	client, store, _ := newTestClient(t, remote)
	ctx := context.Background()

	result, err := client.Login(ctx, model.Credentials{Email: "admin@admin.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "T1", result.Token)

	snap := store.Snapshot(ctx)
	assert.Equal(t, "T1", snap.Token)
	assert.Equal(t, model.RoleAdmin, snap.Role)
	assert.Equal(t, "admin@admin.com", snap.UserID)
	assert.True(t, store.IsAuthenticated(ctx))
}

func TestLogin_InvalidCredentialsIsAuthError(t *testing.T) {
	remote := newFakeRemote(t)
	remote.on(http.MethodPost, "/api/auth/login", respond(http.StatusBadRequest, map[string]string{
		"error": "Invalid credentials",
	}))
	client, store, rec := newTestClient(t, remote)
	ctx := context.Background()

	_, err := client.Login(ctx, model.Credentials{Email: "x@y.io", Password: "nope"})
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apperrors.KindAuth, apiErr.Kind)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, []string{"Invalid credentials"}, apiErr.Messages)
	assert.False(t, store.IsAuthenticated(ctx))
	assert.Equal(t, string(apperrors.KindAuth), rec.calls["login"])
}

func TestLogin_MissingTokenIsAuthError(t *testing.T) {
	remote := newFakeRemote(t)
	remote.on(http.MethodPost, "/api/auth/login", respond(http.StatusOK, map[string]string{"role": "USER"}))
	client, store, _ := newTestClient(t, remote)

	_, err := client.Login(context.Background(), model.Credentials{Email: "u@x.io", Password: "pw"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))
	assert.False(t, store.IsAuthenticated(context.Background()))
}

func TestRegister_StoresIdentityOnly(t *testing.T) {
	remote := newFakeRemote(t)
	remote.on(http.MethodPost, "/api/auth/user/register", respond(http.StatusOK, map[string]interface{}{
		"id": 7, "username": "bob", "email": "bob@x.io", "role": "USER",
	}))
	client, store, _ := newTestClient(t, remote)
	ctx := context.Background()

	account, err := client.RegisterUser(ctx, model.Registration{Username: "bob", Email: "bob@x.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), account.ID)

	snap := store.Snapshot(ctx)
	assert.Equal(t, "bob@x.io", snap.UserID)
	assert.Empty(t, snap.Token)
	assert.Equal(t, model.RoleNone, snap.Role)
	assert.False(t, store.IsAuthenticated(ctx))
}

func TestRegister_DuplicateIsAuthError(t *testing.T) {
	remote := newFakeRemote(t)
	remote.on(http.MethodPost, "/api/auth/admin/register", respond(http.StatusBadRequest, nil))
	client, _, _ := newTestClient(t, remote)

	_, err := client.RegisterAdmin(context.Background(), model.Registration{Username: "a", Email: "a@x.io", Password: "secret1"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))
}

func TestLogout_NoNetwork(t *testing.T) {
	remote := newFakeRemote(t)
	client, store, _ := newTestClient(t, remote)
	ctx := context.Background()
	loginAs(t, store, model.RoleUser)

	require.NoError(t, client.Logout(ctx))
	require.NoError(t, client.Logout(ctx))
	assert.False(t, store.IsAuthenticated(ctx))
	assert.Equal(t, int32(0), remote.calls.Load())
}

func TestAdminCalls_RefusedLocally(t *testing.T) {
	ctx := context.Background()
	calls := map[string]func(*Client) error{
		"searchAdminFeedback": func(c *Client) error { _, err := c.SearchAdminFeedback(ctx, AdminFilter{}); return err },
		"getAllFeedback":      func(c *Client) error { _, err := c.GetAllFeedback(ctx); return err },
		"updateFeedbackStatus": func(c *Client) error {
			_, err := c.UpdateFeedbackStatus(ctx, 1, model.StatusApproved)
			return err
		},
		"updateFeedbackCategory": func(c *Client) error { _, err := c.UpdateFeedbackCategory(ctx, 1, 2); return err },
		"deleteFeedback":         func(c *Client) error { return c.DeleteFeedback(ctx, 1) },
		"listCategories":         func(c *Client) error { _, err := c.ListCategories(ctx, CategoryFilter{}); return err },
		"getCategory":            func(c *Client) error { _, err := c.GetCategory(ctx, 1); return err },
		"createCategory": func(c *Client) error {
			_, err := c.CreateCategory(ctx, model.Category{Name: "X"})
			return err
		},
		"updateCategory": func(c *Client) error {
			_, err := c.UpdateCategory(ctx, 1, model.Category{Name: "X"})
			return err
		},
		"deleteCategory": func(c *Client) error { return c.DeleteCategory(ctx, 1) },
	}

	for op, call := range calls {
		t.Run(op+" anonymous", func(t *testing.T) {
			remote := newFakeRemote(t)
			client, _, rec := newTestClient(t, remote)

			err := call(client)
			assert.True(t, apperrors.IsKind(err, apperrors.KindAccess))
			assert.ErrorIs(t, err, apperrors.ErrAuthTokenMissing)
			assert.Equal(t, int32(0), remote.calls.Load())
			assert.Equal(t, []string{op}, rec.denied)
		})
		t.Run(op+" as user", func(t *testing.T) {
			remote := newFakeRemote(t)
			client, store, _ := newTestClient(t, remote)
			loginAs(t, store, model.RoleUser)

			err := call(client)
			assert.True(t, apperrors.IsKind(err, apperrors.KindAccess))
			assert.ErrorIs(t, err, apperrors.ErrAdminRequired)
			assert.Equal(t, int32(0), remote.calls.Load())
		})
	}
}

func TestSearchAdminFeedback(t *testing.T) {
	remote := newFakeRemote(t)
	remote.on(http.MethodGet, "/api/v1/admin/feedback", respond(http.StatusOK, map[string]interface{}{
		"content": []map[string]interface{}{
			{"id": 1, "productId": "P1", "rating": 4, "comment": "works as expected", "status": "PENDING",
				"createdAt": "2024-03-01T10:00:00"},
		},
		"totalElements": 1, "totalPages": 1, "number": 0, "size": 10,
	}))
	client, store, rec := newTestClient(t, remote)
	loginAs(t, store, model.RoleAdmin)

	page, err := client.SearchAdminFeedback(context.Background(), AdminFilter{
		Status: model.StatusPending, Rating: 4, CategoryID: 3, Email: "u@x.io",
	})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(1), page.Content[0].ID)
	assert.Equal(t, 2024, page.Content[0].CreatedAt.Year())
	assert.Equal(t, int64(1), page.TotalElements)

	assert.Equal(t, "Bearer tok-ADMIN", remote.auth())
	assert.Contains(t, remote.url(), "page=0")
	assert.Contains(t, remote.url(), "size=10")
	assert.Contains(t, remote.url(), "sortBy=createdAt")
	assert.Contains(t, remote.url(), "sortOrder=desc")
	assert.Contains(t, remote.url(), "status=PENDING")
	assert.Contains(t, remote.url(), "rating=4")
	assert.Contains(t, remote.url(), "category=3")
	assert.Contains(t, remote.url(), "email=u%40x.io")
	assert.NotContains(t, remote.url(), "name=")
	assert.Equal(t, "ok", rec.calls["searchAdminFeedback"])
}

func TestUpdateFeedbackStatus(t *testing.T) {
	remote := newFakeRemote(t)
	var sent model.StatusUpdate
	remote.on(http.MethodPut, "/api/v1/admin/feedback/12/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		respond(http.StatusOK, map[string]interface{}{"id": 12, "status": "APPROVED"})(w, r)
	})
	client, store, _ := newTestClient(t, remote)
	loginAs(t, store, model.RoleAdmin)
	ctx := context.Background()

	updated, err := client.UpdateFeedbackStatus(ctx, 12, model.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(12), updated.ID)
	assert.Equal(t, model.StatusApproved, updated.Status)
	assert.Equal(t, model.StatusApproved, sent.Status)

	_, err = client.UpdateFeedbackStatus(ctx, 12, "ARCHIVED")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	assert.Equal(t, int32(1), remote.calls.Load())
}

func TestDeleteFeedback_NoContent(t *testing.T) {
	remote := newFakeRemote(t)
	remote.on(http.MethodDelete, "/api/v1/admin/feedback/5", respond(http.StatusNoContent, nil))
	client, store, _ := newTestClient(t, remote)
	loginAs(t, store, model.RoleAdmin)

	assert.NoError(t, client.DeleteFeedback(context.Background(), 5))
}

func TestSubmitFeedback(t *testing.T) {
	remote := newFakeRemote(t)
	remote.on(http.MethodPost, "/api/feedback", respond(http.StatusCreated, map[string]interface{}{
		"id": 99, "productId": "P-1", "rating": 5, "comment": "Great product overall", "status": "PENDING",
	}))
	client, _, _ := newTestClient(t, remote)

	created, err := client.SubmitFeedback(context.Background(), model.Submission{
		ProductID: "P-1", Rating: 5, Comment: "Great product overall",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Empty(t, remote.auth())
}

func TestSubmitFeedback_ErrorKinds(t *testing.T) {
	tests := []struct {
		status int
		kind   apperrors.Kind
	}{
		{http.StatusBadRequest, apperrors.KindValidation},
		{http.StatusUnauthorized, apperrors.KindAuth},
		{http.StatusForbidden, apperrors.KindAuth},
		{http.StatusInternalServerError, apperrors.KindServer},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			remote := newFakeRemote(t)
			remote.on(http.MethodPost, "/api/feedback", respond(tt.status, map[string]string{"error": "nope"}))
			client, _, _ := newTestClient(t, remote)

			_, err := client.SubmitFeedback(context.Background(), model.Submission{ProductID: "P", Rating: 3, Comment: "0123456789"})
			var apiErr *apperrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestNetworkError(t *testing.T) {
	store := session.NewStore(session.NewMemoryBackend("net"))
	client := New("http://127.0.0.1:1", store, WithTimeout(time.Second))

	_, err := client.SubmitFeedback(context.Background(), model.Submission{ProductID: "P", Rating: 3, Comment: "0123456789"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNetwork))
}

func TestGetUserFeedback(t *testing.T) {
	remote := newFakeRemote(t)
	remote.on(http.MethodGet, "/api/feedback/user/a b@x.io", respond(http.StatusOK, []map[string]interface{}{
		{"id": 1, "userId": "a b@x.io", "productId": "P", "rating": 2, "comment": "could be better", "status": "REJECTED"},
	}))
	client, store, _ := newTestClient(t, remote)
	loginAs(t, store, model.RoleUser)
	ctx := context.Background()

	items, err := client.GetUserFeedback(ctx, "a b@x.io")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.StatusRejected, items[0].Status)
	assert.Equal(t, "Bearer tok-USER", remote.auth())

	items, err = client.GetUserFeedback(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListAllCategories_Ungated(t *testing.T) {
	remote := newFakeRemote(t)
	remote.on(http.MethodGet, "/api/v1/admin/categories/all", respond(http.StatusOK, []model.Category{
		{ID: 1, Name: "Bug Report"}, {ID: 2, Name: "Usability"},
	}))
	client, _, _ := newTestClient(t, remote)

	categories, err := client.ListAllCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, int32(1), remote.calls.Load())
}

func TestValidateToken(t *testing.T) {
	remote := newFakeRemote(t)
	client, store, _ := newTestClient(t, remote)
	ctx := context.Background()

	ok, err := client.ValidateToken(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int32(0), remote.calls.Load())

	loginAs(t, store, model.RoleUser)
	remote.on(http.MethodGet, "/api/auth/validate", respond(http.StatusUnauthorized, nil))
	ok, err = client.ValidateToken(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	remote.on(http.MethodGet, "/api/auth/validate", respond(http.StatusOK, map[string]bool{"valid": true}))
	ok, err = client.ValidateToken(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWithSession_IsolatesStores(t *testing.T) {
	remote := newFakeRemote(t)
	remote.on(http.MethodGet, "/api/v1/admin/feedback/all", respond(http.StatusOK, []model.Feedback{}))
	base, adminStore, _ := newTestClient(t, remote)
	loginAs(t, adminStore, model.RoleAdmin)

	other := base.WithSession(session.NewStore(session.NewMemoryBackend("other")))
	_, err := other.GetAllFeedback(context.Background())
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccess))

	_, err = base.GetAllFeedback(context.Background())
	assert.NoError(t, err)
	assert.Same(t, adminStore, base.Session())
}
