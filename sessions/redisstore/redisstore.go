// Package redisstore keeps the session record in Redis, for deployments where several
// client processes (or a backend-for-frontend) share one signed-in identity.
package redisstore

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
	"github.com/fixoncall/fixoncall-client/sessions"
	"github.com/redis/go-redis/v9"
)

var _ sessions.Storage = (*Store)(nil)

const (
	DefaultPrefix    = "fixoncall:session:"
	defaultOpTimeout = 2 * time.Second
)

type Store struct {
	client    redis.UniversalClient
	prefix    string
	ttl       time.Duration
	opTimeout time.Duration
}

// Option defines a function type to modify the Store instance.
type Option func(*Store)

// WithPrefix sets the key prefix. Several users can share a Redis by giving each a prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL expires the record after ttl. Zero keeps it until logout.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithOpTimeout bounds each Redis round trip.
func WithOpTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		s.opTimeout = timeout
	}
}

// New creates a Redis-backed session storage.
func New(client redis.UniversalClient, options ...Option) (*Store, error) {
	if client == nil {
		return nil, errors.New("[redisstore.New] client is required")
	}

	s := &Store{
		client:    client,
		prefix:    DefaultPrefix,
		opTimeout: defaultOpTimeout,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Connect dials addr and checks the server answers before returning a client.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, apperrors.Wrapf(err, "[redisstore.Connect] ping %s", addr)
	}
	return client, nil
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) Get(key string) (string, bool, error) {
	ctx, cancel := s.opContext()
	defer cancel()

	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.Wrapf(err, "[redisstore.Get] %s", key)
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	ctx, cancel := s.opContext()
	defer cancel()

	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return apperrors.Wrapf(err, "[redisstore.Set] %s", key)
	}
	return nil
}

func (s *Store) Clear(key string) error {
	ctx, cancel := s.opContext()
	defer cancel()

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return apperrors.Wrapf(err, "[redisstore.Clear] %s", key)
	}
	return nil
}

func (s *Store) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.opTimeout)
}
