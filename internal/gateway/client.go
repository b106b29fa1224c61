// Package gateway is the typed client of the remote feedback service. It attaches
// the session token, refuses admin-only calls locally for non-admin sessions and
// turns non-2xx responses into *errors.APIError values.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/logger"
	"feedbackhub/internal/metrics"
	"feedbackhub/internal/model"
	"feedbackhub/internal/session"
)

// Client talks to the remote service on behalf of one session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	metrics    metrics.Recorder
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a client-side timeout. Zero leaves the transport's own limits.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithMetrics reports every call to r.
func WithMetrics(r metrics.Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for baseURL bound to store.
func New(baseURL string, store *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		session:    store,
		metrics:    metrics.Nop{},
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSession returns a copy of the client bound to another session. The HTTP
// client, metrics and logger are shared.
func (c *Client) WithSession(store *session.Store) *Client {
	cp := *c
	cp.session = store
	return &cp
}

// Session returns the bound session store.
func (c *Client) Session() *session.Store {
	return c.session
}

func (c *Client) snapshot(ctx context.Context) session.Session {
	if c.session == nil {
		return session.Session{}
	}
	return c.session.Snapshot(ctx)
}

// request describes one call against the remote.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   interface{}
	// authEndpoint makes every 4xx an AuthError (login and registration).
	authEndpoint bool
}

// requireAdmin is the local check that precedes every admin-only call.
func (c *Client) requireAdmin(ctx context.Context, op string) error {
	snap := c.snapshot(ctx)
	var cause error
	switch {
	case !snap.Authenticated():
		cause = apperrors.ErrAuthTokenMissing
	case snap.Role != model.RoleAdmin:
		cause = apperrors.ErrAdminRequired
	default:
		return nil
	}
	c.metrics.RecordAccessDenied(op)
	c.logger.Warn("admin call refused locally",
		slog.String("operation", op),
		slog.String("reason", cause.Error()),
	)
	return apperrors.NewAccessError(cause)
}

// do sends req and decodes a 2xx JSON body into out (when out is non-nil and the
// body is not empty).
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	start := time.Now()

	fullURL := c.baseURL + req.path
	if len(req.query) > 0 {
		fullURL += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", req.op, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", req.op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if token := c.snapshot(ctx).Token; token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.fail(req, apperrors.NewNetworkError(fullURL, err), start)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(req, apperrors.NewNetworkError(fullURL, err), start)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := apperrors.FromResponse(resp.StatusCode, statusText(resp), fullURL, string(data), req.authEndpoint)
		return c.fail(req, apiErr, start)
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			apiErr := &apperrors.APIError{
				Kind:       apperrors.KindServer,
				StatusCode: resp.StatusCode,
				StatusText: statusText(resp),
				URL:        fullURL,
				Body:       string(data),
				Err:        fmt.Errorf("decode %s response: %w", req.op, err),
			}
			return c.fail(req, apiErr, start)
		}
	}

	c.metrics.RecordCall(req.op, "ok", time.Since(start))
	return nil
}

func (c *Client) fail(req request, apiErr *apperrors.APIError, start time.Time) error {
	c.metrics.RecordCall(req.op, string(apiErr.Kind), time.Since(start))

	attrs := []any{
		slog.String("operation", req.op),
		slog.String("kind", string(apiErr.Kind)),
		slog.String("url", apiErr.URL),
	}
	if apiErr.StatusCode != 0 {
		attrs = append(attrs,
			slog.Int("status", apiErr.StatusCode),
			slog.String("status_text", apiErr.StatusText),
			slog.String("body", apiErr.Body),
		)
	}
	if apiErr.Err != nil {
		attrs = append(attrs, slog.String("error", apiErr.Err.Error()))
	}
	c.logger.Error("api error response", attrs...)
	return apiErr
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
