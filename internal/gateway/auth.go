package gateway

import (
	"context"
	"fmt"
	"net/http"

	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
)

// Login authenticates against the remote and, on success, stores token, role
// and the login email in the session.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	var result model.LoginResult
	err := c.do(ctx, request{
		op:           "login",
		method:       http.MethodPost,
		path:         "/api/auth/login",
		body:         creds,
		authEndpoint: true,
	}, &result)
	if err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &apperrors.APIError{
			Kind:     apperrors.KindAuth,
			Messages: []string{"Login failed: No token received"},
		}
	}

	identifier := creds.Email
	if identifier == "" {
		identifier = result.Email
	}
	if err := c.session.SetSession(ctx, result.Token, result.Role, identifier); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &result, nil
}

// RegisterUser creates a USER account and remembers its email as the user identifier.
func (c *Client) RegisterUser(ctx context.Context, reg model.Registration) (*model.Account, error) {
	return c.register(ctx, "registerUser", "/api/auth/user/register", reg)
}

// RegisterAdmin creates an ADMIN account and remembers its email as the user identifier.
func (c *Client) RegisterAdmin(ctx context.Context, reg model.Registration) (*model.Account, error) {
	return c.register(ctx, "registerAdmin", "/api/auth/admin/register", reg)
}

func (c *Client) register(ctx context.Context, op, path string, reg model.Registration) (*model.Account, error) {
	var account model.Account
	err := c.do(ctx, request{
		op:           op,
		method:       http.MethodPost,
		path:         path,
		body:         reg,
		authEndpoint: true,
	}, &account)
	if err != nil {
		return nil, err
	}
	if reg.Email != "" {
		if err := c.session.SetIdentity(ctx, reg.Email); err != nil {
			return nil, fmt.Errorf("store identity: %w", err)
		}
	}
	return &account, nil
}

// Logout clears the bound session. There is no remote call.
func (c *Client) Logout(ctx context.Context) error {
	return c.session.Clear(ctx)
}

// Bootstrap asks the remote to create its default admin, user and categories.
func (c *Client) Bootstrap(ctx context.Context) (string, error) {
	var result map[string]string
	err := c.do(ctx, request{
		op:     "bootstrap",
		method: http.MethodPost,
		path:   "/api/auth/init",
	}, &result)
	if err != nil {
		return "", err
	}
	return result["message"], nil
}

// ValidateToken asks the remote whether the stored token is still accepted.
// A rejected token is reported as (false, nil); a missing token never hits the network.
func (c *Client) ValidateToken(ctx context.Context) (bool, error) {
	if !c.snapshot(ctx).Authenticated() {
		return false, nil
	}
	err := c.do(ctx, request{
		op:     "validateToken",
		method: http.MethodGet,
		path:   "/api/auth/validate",
	}, nil)
	if apperrors.IsKind(err, apperrors.KindAuth) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping checks that the remote answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, request{
		op:     "ping",
		method: http.MethodGet,
		path:   "/actuator/health",
	}, nil)
}
