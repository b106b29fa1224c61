// Package handler holds the JSON views of the web client. Each view binds the
// request's session to the gateway, calls the workflow and maps every error to
// an ErrorResponse.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/errors"
	"feedbackhub/internal/gateway"
	"feedbackhub/internal/guard"
	"feedbackhub/internal/logger"
	"feedbackhub/internal/service"
	"feedbackhub/internal/session"
)

// Base is shared by every handler.
type Base struct {
	api      *gateway.Client
	services service.Deps
	logger   *slog.Logger
}

// NewBase creates the shared handler state.
func NewBase(api *gateway.Client, services service.Deps, log *slog.Logger) *Base {
	if log == nil {
		log = logger.Discard()
	}
	if services.Logger == nil {
		services.Logger = log
	}
	if services.Moderation == nil {
		services.Moderation = service.NopModerationLog()
	}
	return &Base{api: api, services: services, logger: log}
}

// client binds the gateway to the request's session.
func (b *Base) client(c echo.Context) *gateway.Client {
	return b.api.WithSession(StoreFrom(c))
}

func (b *Base) feedback(c echo.Context) service.FeedbackService {
	store := StoreFrom(c)
	snap := store.Snapshot(c.Request().Context())
	return service.NewFeedbackService(b.client(c), b.services, service.Scope{
		SessionID: store.ID(),
		Actor:     snap.Identifier(),
	})
}

func (b *Base) dashboard(c echo.Context) service.DashboardService {
	return service.NewDashboardService(b.client(c), StoreFrom(c))
}

func (b *Base) snapshot(c echo.Context) session.Session {
	return StoreFrom(c).Snapshot(c.Request().Context())
}

func (b *Base) nav(c echo.Context) []guard.NavLink {
	return guard.NavLinks(b.snapshot(c))
}

// fail turns err into the error response of a view. A token the remote no
// longer accepts is dropped from the session.
func (b *Base) fail(c echo.Context, err error) error {
	ctx := c.Request().Context()
	if errors.TokenRejected(err) {
		if clearErr := StoreFrom(c).Clear(ctx); clearErr != nil {
			b.logger.Warn("clear session", slog.Any("error", clearErr))
		}
		b.logger.Info("session cleared after token was rejected", slog.String("path", c.Path()))
	}

	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		b.logger.Error("view failed",
			slog.String("path", c.Path()),
			slog.String("code", httpErr.Code),
			slog.Any("error", err),
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func invalidBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}

// validate runs the echo validator and shapes its failure like any other view error.
func (b *Base) validate(c echo.Context, req interface{}) error {
	if err := c.Validate(req); err != nil {
		return b.fail(c, err)
	}
	return nil
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_ID",
		})
	}
	return id, nil
}

func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Redirect is the navigation hint returned by actions that move the user on.
type Redirect struct {
	Redirect guard.Route `json:"redirect"`
	Message  string      `json:"message,omitempty"`
}
