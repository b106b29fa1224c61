package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/errors"
	"feedbackhub/internal/guard"
	"feedbackhub/internal/model"
)

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	*Base
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *Base) *AuthHandler {
	return &AuthHandler{Base: base}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RegisterRequest represents a registration request. Role defaults to USER.
type RegisterRequest struct {
	Username        string     `json:"username" form:"username" validate:"required,max=100"`
	Email           string     `json:"email" form:"email" validate:"required,email"`
	Password        string     `json:"password" form:"password"`
	ConfirmPassword string     `json:"confirmPassword" form:"confirmPassword"`
	Role            model.Role `json:"role" form:"role" validate:"omitempty,oneof=USER ADMIN"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Role     model.Role  `json:"role"`
	Email    string      `json:"email"`
	Message  string      `json:"message"`
	Redirect guard.Route `json:"redirect"`
}

// FormView is the model of the login and register forms.
type FormView struct {
	Authenticated bool            `json:"authenticated"`
	Home          guard.Route     `json:"home"`
	Roles         []model.Role    `json:"roles,omitempty"`
	Nav           []guard.NavLink `json:"nav"`
}

// LoginForm godoc
// @Summary Login form
// @Tags auth
// @Produce json
// @Success 200 {object} FormView
// @Router /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	snap := h.snapshot(c)
	return c.JSON(http.StatusOK, FormView{
		Authenticated: snap.Authenticated(),
		Home:          guard.ResolveHome(snap),
		Nav:           guard.NavLinks(snap),
	})
}

// Login godoc
// @Summary Login
// @Description Authenticates against the feedback service and stores the token in the session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := h.validate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	result, err := h.client(c).Login(ctx, model.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.IsKind(err, errors.KindAuth) {
			msg := "Login failed. Please check your credentials."
			if apiErr, ok := errors.AsAPIError(err); ok && len(apiErr.Messages) > 0 {
				msg = apiErr.Messages[0]
			}
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: msg,
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return h.fail(c, err)
	}

	snap := h.snapshot(c)
	return c.JSON(http.StatusOK, LoginResponse{
		Role:     result.Role,
		Email:    snap.Identifier(),
		Message:  "Welcome! You are logged in as " + string(result.Role),
		Redirect: guard.ResolveHome(snap),
	})
}

// RegisterForm godoc
// @Summary Registration form
// @Tags auth
// @Produce json
// @Success 200 {object} FormView
// @Router /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	snap := h.snapshot(c)
	return c.JSON(http.StatusOK, FormView{
		Authenticated: snap.Authenticated(),
		Home:          guard.ResolveHome(snap),
		Roles:         []model.Role{model.RoleUser, model.RoleAdmin},
		Nav:           guard.NavLinks(snap),
	})
}

// Register godoc
// @Summary Register a user or admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} Redirect
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if req.Password != req.ConfirmPassword {
		return h.fail(c, errors.NewValidationError("Passwords do not match!"))
	}
	if len([]rune(req.Password)) < 6 {
		return h.fail(c, errors.NewValidationError("Password must be at least 6 characters long!"))
	}
	if err := h.validate(c, &req); err != nil {
		return err
	}

	reg := model.Registration{Username: req.Username, Email: req.Email, Password: req.Password}
	ctx := c.Request().Context()
	client := h.client(c)

	var err error
	msg := "User account created successfully!"
	if req.Role == model.RoleAdmin {
		_, err = client.RegisterAdmin(ctx, reg)
		msg = "Admin account created successfully!"
	} else {
		_, err = client.RegisterUser(ctx, reg)
	}
	if err != nil {
		if errors.IsKind(err, errors.KindAuth) {
			return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{
				Error: "Registration failed. Please try again.",
				Code:  "REGISTRATION_FAILED",
			})
		}
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Redirect{Redirect: guard.RouteLogin, Message: msg})
}

// Logout godoc
// @Summary Logout
// @Description Clears the session. The feedback service is not called.
// @Tags auth
// @Produce json
// @Success 200 {object} Redirect
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.client(c).Logout(c.Request().Context()); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, Redirect{Redirect: guard.RouteLogin, Message: "Logged out"})
}

// Home godoc
// @Summary Role-based landing redirect
// @Tags auth
// @Success 302
// @Router /home [get]
func (h *AuthHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, string(guard.ResolveHome(h.snapshot(c))))
}
