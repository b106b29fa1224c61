package guard

import (
	"feedbackhub/internal/model"
	"feedbackhub/internal/session"
)

// RouteRule declares the role a route requires. RoleNone means public.
type RouteRule struct {
	Route    Route
	Required model.Role
}

// Table lists every client route once with its requirement.
var Table = []RouteRule{
	{RouteSubmit, model.RoleNone},
	{RouteFeedback, model.RoleNone},
	{RouteLogin, model.RoleNone},
	{RouteRegister, model.RoleNone},
	{RouteHome, model.RoleNone},
	{RouteAdmin, model.RoleAdmin},
	{RouteDashboard, model.RoleAdmin},
	{RouteUserDashboard, model.RoleUser},
}

// RequiredRole looks up a route in Table. Unknown routes are public.
func RequiredRole(r Route) model.Role {
	for _, rule := range Table {
		if rule.Route == r {
			return rule.Required
		}
	}
	return model.RoleNone
}

// NavLink is one navbar entry.
type NavLink struct {
	Label  string `json:"label"`
	Route  Route  `json:"route"`
	Method string `json:"method,omitempty"`
}

// NavLinks returns the navbar for a session.
func NavLinks(s session.Session) []NavLink {
	if !s.Authenticated() {
		return []NavLink{
			{Label: "Login", Route: RouteLogin},
			{Label: "Register", Route: RouteRegister},
		}
	}

	var links []NavLink
	if s.Role == model.RoleAdmin {
		links = append(links,
			NavLink{Label: "Manage Feedback", Route: RouteAdmin},
			NavLink{Label: "Dashboard", Route: RouteDashboard},
		)
	} else {
		links = append(links,
			NavLink{Label: "My Dashboard", Route: RouteUserDashboard},
			NavLink{Label: "My Feedback", Route: RouteFeedback},
		)
	}
	return append(links,
		NavLink{Label: "Submit Feedback", Route: RouteSubmit},
		NavLink{Label: "Logout", Route: "/logout", Method: "POST"},
	)
}
