package router

import (
	"fmt"
	"strings"

	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
	"github.com/fixoncall/fixoncall-client/sessions"
	"github.com/fixoncall/fixoncall-client/users"
)

// ErrUnknownRole is returned for a role with no dashboard. It points at a mismatch
// between the client and the remote service, so it is never defaulted away.
var ErrUnknownRole = apperrors.ErrUnknownRole

// Routes known to the client.
const (
	LoginRoute    = "/login"
	RegisterRoute = "/register"
	HomeRoute     = "/"
)

var dashboards = map[users.RoleType]string{
	users.RoleDriver:   "/driver",
	users.RoleMechanic: "/mechanic",
	users.RoleAdmin:    "/admin",
}

// DestinationFor returns the dashboard a freshly authenticated user with role lands on.
func DestinationFor(role users.RoleType) (string, error) {
	route, ok := dashboards[role]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return route, nil
}

// ownerOf reports which role's dashboard route belongs to, if any.
func ownerOf(route string) (users.RoleType, bool) {
	for role, dashboard := range dashboards {
		if route == dashboard || strings.HasPrefix(route, dashboard+"/") {
			return role, true
		}
	}
	return "", false
}

// IsProtected reports whether route is a dashboard that requires a session.
func IsProtected(route string) bool {
	_, ok := ownerOf(route)
	return ok
}

// Guard decides whether the session may render route. When it may not, redirect is
// where the caller should send the user instead. Unauthenticated users go to the login
// entry point; a signed-in user on another role's dashboard goes to their own.
// After a later login the user lands on their role's dashboard, not on route.
func Guard(session sessions.Session, route string) (redirect string, allowed bool) {
	owner, protected := ownerOf(route)
	if !protected {
		return "", true
	}
	if !session.Authenticated || session.User == nil {
		return LoginRoute, false
	}
	if session.User.Role == owner {
		return "", true
	}

	home, err := DestinationFor(session.User.Role)
	if err != nil {
		return LoginRoute, false
	}
	return home, false
}
