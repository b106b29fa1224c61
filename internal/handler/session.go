package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/session"
)

const (
	// SessionCookie carries the signed browser session id.
	SessionCookie = "feedbackhub_session"
	// TokenContextKey is where the cookie middleware leaves the parsed token.
	TokenContextKey = "user"
	// SessionContextKey is where the session store of the request is kept.
	SessionContextKey = "session"
)

// BackendFactory returns the session backend for a browser session id.
type BackendFactory func(id string) session.Backend

// SessionManager binds a session store to every request and issues the cookie
// for new browsers.
type SessionManager struct {
	jwt      *auth.JWTService
	backends BackendFactory
	secure   bool
}

// NewSessionManager creates a session manager.
func NewSessionManager(jwtService *auth.JWTService, backends BackendFactory, secure bool) *SessionManager {
	return &SessionManager{jwt: jwtService, backends: backends, secure: secure}
}

// ParseToken validates the cookie value.
func (m *SessionManager) ParseToken(c echo.Context, raw string) (interface{}, error) {
	return m.jwt.ParseToken(raw)
}

// Middleware resolves the session id from the parsed cookie token, starting a
// fresh session when there is none.
func (m *SessionManager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := sessionID(c.Get(TokenContextKey))
			if id == "" {
				id = auth.NewSessionID()
				if err := m.issue(c, id); err != nil {
					return err
				}
			}
			c.Set(SessionContextKey, session.NewStore(m.backends(id)))
			return next(c)
		}
	}
}

func (m *SessionManager) issue(c echo.Context, id string) error {
	token, err := m.jwt.GenerateSessionToken(id)
	if err != nil {
		return err
	}
	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl := m.jwt.TTL(); ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
		cookie.MaxAge = int(ttl.Seconds())
	}
	c.SetCookie(cookie)
	return nil
}

func sessionID(v interface{}) string {
	token, ok := v.(*jwt.Token)
	if !ok || token == nil {
		return ""
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return ""
	}
	return claims.ID
}

// StoreFrom returns the session store bound to the request. Requests that did
// not go through the middleware get an empty throwaway session.
func StoreFrom(c echo.Context) *session.Store {
	if store, ok := c.Get(SessionContextKey).(*session.Store); ok && store != nil {
		return store
	}
	store := session.NewStore(session.NewMemoryBackend("anonymous"))
	c.Set(SessionContextKey, store)
	return store
}
