package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fixoncall/fixoncall-client/router"
	"github.com/fixoncall/fixoncall-client/sessions"
	"github.com/fixoncall/fixoncall-client/users"
	"github.com/stretchr/testify/require"
)

func signedIn(role users.RoleType) sessions.Session {
	return sessions.Session{
		User:          &users.User{ID: "1", Name: "Test", Role: role},
		Token:         "t",
		Authenticated: true,
	}
}

func TestDestinationFor(t *testing.T) {
	tests := []struct {
		role users.RoleType
		want string
	}{
		{role: users.RoleDriver, want: "/driver"},
		{role: users.RoleMechanic, want: "/mechanic"},
		{role: users.RoleAdmin, want: "/admin"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got, err := router.DestinationFor(tt.role)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDestinationForUnknownRole(t *testing.T) {
	for _, role := range []users.RoleType{"partner", "", "DRIVER"} {
		got, err := router.DestinationFor(role)
		require.ErrorIs(t, err, router.ErrUnknownRole)
		require.Empty(t, got, "no silent default")
	}
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name         string
		session      sessions.Session
		route        string
		wantAllowed  bool
		wantRedirect string
	}{
		{name: "public route signed out", session: sessions.Session{}, route: "/", wantAllowed: true},
		{name: "login page signed out", session: sessions.Session{}, route: router.LoginRoute, wantAllowed: true},
		{name: "dashboard signed out", session: sessions.Session{}, route: "/driver", wantRedirect: router.LoginRoute},
		{name: "dashboard sub-path signed out", session: sessions.Session{}, route: "/admin/users", wantRedirect: router.LoginRoute},
		{name: "own dashboard", session: signedIn(users.RoleMechanic), route: "/mechanic", wantAllowed: true},
		{name: "own dashboard sub-path", session: signedIn(users.RoleAdmin), route: "/admin/services", wantAllowed: true},
		{name: "other role dashboard", session: signedIn(users.RoleDriver), route: "/admin", wantRedirect: "/driver"},
		{name: "lookalike route is public", session: sessions.Session{}, route: "/drivers-wanted", wantAllowed: true},
		{name: "unknown role", session: signedIn("partner"), route: "/driver", wantRedirect: router.LoginRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redirect, allowed := router.Guard(tt.session, tt.route)
			require.Equal(t, tt.wantAllowed, allowed)
			require.Equal(t, tt.wantRedirect, redirect)
		})
	}
}

type staticSession sessions.Session

func (s staticSession) Snapshot() sessions.Session { return sessions.Session(s) }

func TestRequireSession(t *testing.T) {
	var seen users.User
	handler := router.RequireSession(staticSession(signedIn(users.RoleDriver)))(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = router.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/driver", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, users.RoleDriver, seen.Role)

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/mechanic", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/driver", rec.Header().Get("Location"))
}

func TestRequireSessionSignedOut(t *testing.T) {
	called := false
	handler := router.RequireSession(staticSession(sessions.Session{}))(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.False(t, called)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, router.LoginRoute, rec.Header().Get("Location"))
}

func TestRecorder(t *testing.T) {
	var rec router.Recorder
	require.Empty(t, rec.Last())

	var nav router.Navigator = &rec
	nav.Navigate("/login")
	router.NavigatorFunc(rec.Navigate).Navigate("/driver")

	require.Equal(t, []string{"/login", "/driver"}, rec.Routes())
	require.Equal(t, "/driver", rec.Last())
}
