// Package client wires the session store, authorization gateway, API transport and
// auth service into one value created once at process start.
package client

import (
	"context"
	"io"
	"net/http"

	"github.com/fixoncall/fixoncall-client/api"
	"github.com/fixoncall/fixoncall-client/auth"
	"github.com/fixoncall/fixoncall-client/gateway"
	"github.com/fixoncall/fixoncall-client/internal/config"
	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
	"github.com/fixoncall/fixoncall-client/router"
	"github.com/fixoncall/fixoncall-client/sessions"
	"github.com/fixoncall/fixoncall-client/sessions/filestore"
	"github.com/fixoncall/fixoncall-client/sessions/redisstore"
	"github.com/rs/zerolog"
)

// Client is the session-aware entry point to the remote service.
type Client struct {
	Sessions *sessions.Store
	Auth     *auth.Service
	API      *api.Client

	logger  zerolog.Logger
	closers []io.Closer
}

type options struct {
	navigator router.Navigator
	storage   sessions.Storage
	transport http.RoundTripper
	logger    zerolog.Logger
}

// Option defines a function type to modify how New builds the Client.
type Option func(*options)

// WithNavigator sets where forced and post-login navigation goes. Without one,
// navigation is only logged.
func WithNavigator(navigator router.Navigator) Option {
	return func(o *options) {
		o.navigator = navigator
	}
}

// WithStorage overrides the storage selected by configuration.
func WithStorage(storage sessions.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithTransport sets the RoundTripper the pipeline ends in (http.DefaultTransport otherwise).
func WithTransport(transport http.RoundTripper) Option {
	return func(o *options) {
		o.transport = transport
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New builds a Client from configuration and restores any persisted session.
func New(ctx context.Context, c config.Config, opts ...Option) (*Client, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	cl := &Client{logger: o.logger}

	storage := o.storage
	if storage == nil {
		var err error
		storage, err = cl.openStorage(ctx, c)
		if err != nil {
			cl.Close()
			return nil, err
		}
	}

	if err := cl.wire(c, storage, o); err != nil {
		cl.Close()
		return nil, err
	}

	cl.Sessions.Hydrate()
	return cl, nil
}

func (cl *Client) wire(c config.Config, storage sessions.Storage, o options) error {
	navigator := o.navigator
	if navigator == nil {
		navigator = router.NavigatorFunc(func(route string) {
			o.logger.Info().Str("route", route).Msg("navigate")
		})
	}

	store, err := sessions.NewStore(storage, sessions.WithLogger(o.logger.With().Str("component", "sessions").Logger()))
	if err != nil {
		return apperrors.Wrapf(err, "[client.New] session store")
	}

	gw, err := gateway.New(store, navigator, gateway.WithLogger(o.logger.With().Str("component", "gateway").Logger()))
	if err != nil {
		return apperrors.Wrapf(err, "[client.New] gateway")
	}

	httpClient := &http.Client{
		Timeout: c.GetTimeout(),
		Transport: gateway.Chain(o.transport,
			gateway.RequestID(),
			gateway.Logging(o.logger.With().Str("component", "http").Logger()),
			gw.Stage(),
		),
	}

	apiClient, err := api.NewClient(c.GetAPIURL(), httpClient)
	if err != nil {
		return apperrors.Wrapf(err, "[client.New] api client")
	}

	authService, err := auth.NewService(apiClient, store, navigator, auth.WithLogger(o.logger.With().Str("component", "auth").Logger()))
	if err != nil {
		return apperrors.Wrapf(err, "[client.New] auth service")
	}

	cl.Sessions = store
	cl.API = apiClient
	cl.Auth = authService
	return nil
}

func (cl *Client) openStorage(ctx context.Context, c config.Config) (sessions.Storage, error) {
	switch c.GetStorageDriver() {
	case config.StorageMemory:
		return sessions.NewMemoryStorage(), nil
	case config.StorageRedis:
		rdb, err := redisstore.Connect(ctx, c.GetRedisAddr(), c.GetRedisPassword())
		if err != nil {
			return nil, apperrors.Wrapf(err, "[client.New] redis storage")
		}
		cl.closers = append(cl.closers, rdb)
		return redisstore.New(rdb, redisstore.WithPrefix(c.GetRedisPrefix()), redisstore.WithTTL(c.GetRedisTTL()))
	default:
		store, err := filestore.New(c.GetSessionFile())
		if err != nil {
			return nil, apperrors.Wrapf(err, "[client.New] file storage")
		}
		cl.logger.Debug().Str("path", store.Path()).Msg("session file")
		return store, nil
	}
}

// Close releases connections opened for storage. The session itself is untouched.
func (cl *Client) Close() error {
	var first error
	for _, c := range cl.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	cl.closers = nil
	return first
}
