// Package gateway attaches the session's bearer token to every outgoing request and
// forces re-authentication when the remote service rejects it.
package gateway

import (
	"errors"
	"net/http"

	"github.com/fixoncall/fixoncall-client/router"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// SessionStore is the part of the session store the gateway needs.
type SessionStore interface {
	Token() (string, bool)
	LogoutIfToken(token string) bool
}

// Gateway is the authorization stage of the request pipeline.
type Gateway struct {
	sessions   SessionStore
	navigator  router.Navigator
	loginRoute string
	logger     zerolog.Logger
}

// Option defines a function type to modify the Gateway instance.
type Option func(*Gateway)

// WithLogger sets the logger used when a credential is rejected.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithLoginRoute overrides where rejected sessions are sent.
func WithLoginRoute(route string) Option {
	return func(g *Gateway) {
		g.loginRoute = route
	}
}

func New(store SessionStore, navigator router.Navigator, options ...Option) (*Gateway, error) {
	if store == nil {
		return nil, errors.New("[gateway.New] session store is required")
	}
	if navigator == nil {
		return nil, errors.New("[gateway.New] navigator is required")
	}

	g := &Gateway{
		sessions:   store,
		navigator:  navigator,
		loginRoute: router.LoginRoute,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(g)
	}
	return g, nil
}

// Stage returns the gateway as a pipeline stage for Chain.
func (g *Gateway) Stage() Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return &transport{gateway: g, next: next}
	}
}

type transport struct {
	gateway *Gateway
	next    http.RoundTripper
}

// RoundTrip attaches the current token, if any, and reacts to a 401 on it. The
// response is always handed back unchanged so the caller still sees the failure.
// A 401 on a request sent without a token, such as a failed login, neither clears
// the session nor navigates.
func (t *transport) RoundTrip(r *http.Request) (*http.Response, error) {
	sent, hasToken := t.gateway.sessions.Token()

	out := r
	if hasToken {
		out = r.Clone(r.Context())
		(&oauth2.Token{AccessToken: sent, TokenType: "Bearer"}).SetAuthHeader(out)
	}

	resp, err := t.next.RoundTrip(out)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode == http.StatusUnauthorized && hasToken {
		t.gateway.reject(sent, r)
	}
	return resp, nil
}

// reject ends the session that sent token. Only the first rejection of a token has
// any effect, so concurrent 401s produce one logout and one navigation.
func (g *Gateway) reject(token string, r *http.Request) {
	if !g.sessions.LogoutIfToken(token) {
		return
	}
	g.logger.Warn().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("redirect", g.loginRoute).
		Msg("credential rejected, re-authentication required")
	g.navigator.Navigate(g.loginRoute)
}
