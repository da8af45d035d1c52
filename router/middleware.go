package router

import (
	"context"
	"net/http"

	"github.com/fixoncall/fixoncall-client/sessions"
	"github.com/fixoncall/fixoncall-client/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUser stores the signed-in user for guarded handlers
const ContextKeyUser ContextKey = "user"

// SessionReader is the part of the session store the guard needs.
type SessionReader interface {
	Snapshot() sessions.Session
}

// RequireSession is middleware for dashboard routes served by a local UI. Requests the
// Guard refuses are redirected with 303 See Other; allowed requests carry the user in
// their context.
func RequireSession(store SessionReader) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session := store.Snapshot()
			if redirect, allowed := Guard(session, r.URL.Path); !allowed {
				http.Redirect(w, r, redirect, http.StatusSeeOther)
				return
			}

			if session.User != nil {
				r = r.WithContext(context.WithValue(r.Context(), ContextKeyUser, *session.User))
			}
			next(w, r)
		}
	}
}

// UserFromContext returns the user RequireSession placed on the request.
func UserFromContext(ctx context.Context) (users.User, bool) {
	u, ok := ctx.Value(ContextKeyUser).(users.User)
	return u, ok
}
