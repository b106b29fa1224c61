// Package guard decides, per navigation, whether the current session may view a route.
package guard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/model"
	"feedbackhub/internal/session"
)

// Route is a client route path.
type Route string

const (
	RouteSubmit        Route = "/"
	RouteFeedback      Route = "/feedback"
	RouteLogin         Route = "/login"
	RouteRegister      Route = "/register"
	RouteAdmin         Route = "/admin"
	RouteDashboard     Route = "/dashboard"
	RouteUserDashboard Route = "/user-dashboard"
	RouteHome          Route = "/home"

	// AdminHome and UserHome are the landing pages of each role.
	AdminHome = RouteAdmin
	UserHome  = RouteUserDashboard
)

// Decision is the outcome of ResolveAccess: either Allowed, or a redirect target.
type Decision struct {
	Allowed  bool
	Redirect Route
}

// Allow is the decision that lets the navigation through.
var Allow = Decision{Allowed: true}

// RedirectTo builds a redirect decision.
func RedirectTo(r Route) Decision {
	return Decision{Redirect: r}
}

// ResolveAccess evaluates the decision table, first match wins:
//  1. not authenticated                      -> login
//  2. ADMIN required and role is not ADMIN   -> user home
//  3. USER required and role is not USER     -> admin home
//  4. otherwise                              -> allow
func ResolveAccess(s session.Session, required model.Role) Decision {
	switch {
	case !s.Authenticated():
		return RedirectTo(RouteLogin)
	case required == model.RoleAdmin && s.Role != model.RoleAdmin:
		return RedirectTo(UserHome)
	case required == model.RoleUser && s.Role != model.RoleUser:
		return RedirectTo(AdminHome)
	default:
		return Allow
	}
}

// ResolveHome picks the landing page for the session.
func ResolveHome(s session.Session) Route {
	switch {
	case !s.Authenticated():
		return RouteLogin
	case s.Role == model.RoleAdmin:
		return AdminHome
	case s.Role == model.RoleUser:
		return UserHome
	default:
		return RouteLogin
	}
}

// StoreFunc resolves the session store of the current request.
type StoreFunc func(c echo.Context) *session.Store

// Require returns middleware that re-evaluates ResolveAccess on every request
// and answers 302 with the redirect target when access is denied.
func Require(required model.Role, storeFor StoreFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := storeFor(c).Snapshot(c.Request().Context())
			decision := ResolveAccess(snap, required)
			if !decision.Allowed {
				return c.Redirect(http.StatusFound, string(decision.Redirect))
			}
			return next(c)
		}
	}
}
