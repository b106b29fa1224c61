package router

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"feedbackhub/internal/config"
	"feedbackhub/internal/errors"
	"feedbackhub/internal/guard"
	"feedbackhub/internal/handler"
	"feedbackhub/internal/workflow"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Sessions   *handler.SessionManager
	Auth       *handler.AuthHandler
	Feedback   *handler.FeedbackHandler
	Admin      *handler.AdminHandler
	Category   *handler.CategoryHandler
	Dashboard  *handler.DashboardHandler
	Moderation *handler.ModerationHandler
	Validator  *workflow.Validator

	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	validate := h.Validator
	if validate == nil {
		validate = workflow.NewValidator()
	}
	e.Validator = &CustomValidator{validator: validate}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Every view runs inside a browser session. A missing or invalid cookie is
	// not an error; the session middleware starts a new session instead.
	web := e.Group("",
		echojwt.WithConfig(echojwt.Config{
			TokenLookup:            "cookie:" + handler.SessionCookie,
			ContextKey:             handler.TokenContextKey,
			ParseTokenFunc:         h.Sessions.ParseToken,
			ContinueOnIgnoredError: true,
			ErrorHandler: func(c echo.Context, err error) error {
				return nil
			},
		}),
		h.Sessions.Middleware(),
	)

	limiter := loginLimiter(cfg.LoginRateLimit)

	// Public routes
	web.GET(string(guard.RouteSubmit), h.Feedback.SubmitFormView)
	web.POST(string(guard.RouteSubmit), h.Feedback.Submit)
	web.GET(string(guard.RouteFeedback), h.Feedback.Lookup)
	web.GET(string(guard.RouteLogin), h.Auth.LoginForm)
	web.POST(string(guard.RouteLogin), h.Auth.Login, limiter)
	web.GET(string(guard.RouteRegister), h.Auth.RegisterForm)
	web.POST(string(guard.RouteRegister), h.Auth.Register, limiter)
	web.POST("/logout", h.Auth.Logout)
	web.GET(string(guard.RouteHome), h.Auth.Home)

	// Role-guarded routes
	web.GET(string(guard.RouteDashboard), h.Dashboard.Admin, requireRole(guard.RouteDashboard))
	web.GET(string(guard.RouteUserDashboard), h.Dashboard.User, requireRole(guard.RouteUserDashboard))

	admin := web.Group(string(guard.RouteAdmin), requireRole(guard.RouteAdmin))
	admin.GET("", h.Admin.Board)
	admin.POST("/feedback/:id/approve", h.Admin.Approve)
	admin.POST("/feedback/:id/reject", h.Admin.Reject)
	admin.PUT("/feedback/:id/category/:categoryId", h.Admin.Recategorize)
	admin.DELETE("/feedback/:id", h.Admin.Delete)

	admin.GET("/categories", h.Category.List)
	admin.POST("/categories", h.Category.Create)
	admin.GET("/categories/:id", h.Category.Get)
	admin.PUT("/categories/:id", h.Category.Update)
	admin.DELETE("/categories/:id", h.Category.Delete)

	admin.GET("/moderation", h.Moderation.List)
}

func requireRole(r guard.Route) echo.MiddlewareFunc {
	return guard.Require(guard.RequiredRole(r), handler.StoreFrom)
}

// loginLimiter throttles credential submissions per client IP.
func loginLimiter(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = 5
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(rate.Limit(perSecond)),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, errors.ErrorResponse{
				Error: "Too many attempts. Please wait a moment and try again.",
				Code:  "RATE_LIMITED",
			})
		},
	})
}

// CustomValidator wraps the request validator for Echo.
type CustomValidator struct {
	validator *workflow.Validator
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
