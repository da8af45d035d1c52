package sessions

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
	"github.com/fixoncall/fixoncall-client/token"
	"github.com/fixoncall/fixoncall-client/users"
	"github.com/rs/zerolog"
)

// ErrMalformedRecord marks a persisted record that could not be turned back into a session.
var ErrMalformedRecord = apperrors.ErrMalformedRecord

// Observer is called after every session transition with the new state.
type Observer func(Session)

// Store owns the session and its persisted copy. It is the only writer of either.
// Mutations update memory and storage under one lock, so no caller sees a session
// that is half written. Once Login or Logout returns, storage holds either the
// current session or nothing.
type Store struct {
	mu        sync.Mutex
	storage   Storage
	session   Session
	hydrated  bool
	observers []Observer

	logger  zerolog.Logger
	nowTime func() time.Time
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithLogger sets the logger used for storage failures and state transitions.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// NewStore creates an empty Store persisting through storage. Call Hydrate once at
// startup to restore a previously persisted session.
func NewStore(storage Storage, options ...StoreOption) (*Store, error) {
	if storage == nil {
		return nil, errors.New("[NewStore] storage is required")
	}

	s := &Store{
		storage: storage,
		logger:  zerolog.Nop(),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Subscribe registers an observer for session transitions.
func (s *Store) Subscribe(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Login replaces the session with user and token and persists both. Storage failures
// are logged rather than returned. A user that fails validation or an empty token
// leaves the current session untouched.
func (s *Store) Login(user users.User, rawToken string) {
	if rawToken == "" {
		s.logger.Error().Msg("session login ignored: empty token")
		return
	}
	if err := user.Validate(); err != nil {
		s.logger.Error().Err(err).Msg("session login ignored: invalid user")
		return
	}

	serialized, err := json.Marshal(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("session login ignored: user not serializable")
		return
	}

	s.mu.Lock()
	s.session = s.newSession(user, rawToken)
	s.persist(string(serialized), rawToken)
	snapshot := s.session.clone()
	s.mu.Unlock()

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role.String()).Msg("session started")
	s.notify(snapshot)
}

// Logout empties the session and erases the persisted record. It is safe to call
// when already signed out.
func (s *Store) Logout() {
	s.mu.Lock()
	changed := s.session.Authenticated
	s.clearLocked()
	s.mu.Unlock()

	if changed {
		s.logger.Info().Msg("session ended")
		s.notify(Session{})
	}
}

// LogoutIfToken ends the session only if rawToken is the token currently held.
// It reports whether this call ended the session, so repeated or stale rejections of
// the same credential have no further effect.
func (s *Store) LogoutIfToken(rawToken string) bool {
	s.mu.Lock()
	if rawToken == "" || !s.session.Authenticated || s.session.Token != rawToken {
		s.mu.Unlock()
		return false
	}
	s.clearLocked()
	s.mu.Unlock()

	s.logger.Info().Msg("session revoked by remote service")
	s.notify(Session{})
	return true
}

// Hydrate restores the session from storage. Only the first call reads storage.
// An absent or malformed record leaves the session empty and is never an error.
func (s *Store) Hydrate() {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return
	}
	s.hydrated = true

	user, rawToken, err := s.readRecord()
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, ErrMalformedRecord) {
			s.logger.Debug().Err(err).Msg("persisted session discarded")
		} else {
			s.logger.Debug().Err(err).Msg("persisted session unavailable")
		}
		return
	}
	if user == nil {
		s.mu.Unlock()
		return
	}

	s.session = s.newSession(*user, rawToken)
	snapshot := s.session.clone()
	s.mu.Unlock()

	event := s.logger.Info().Str("user_id", user.ID)
	if snapshot.ExpiresAt.IsZero() {
		event.Msg("session restored")
	} else if !s.nowTime().Before(snapshot.ExpiresAt) {
		event.Time("expired_at", snapshot.ExpiresAt).Msg("session restored with expired token")
	} else {
		event.Time("expires_at", snapshot.ExpiresAt).Msg("session restored")
	}
	s.notify(snapshot)
}

// User returns the signed-in user.
func (s *Store) User() (users.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.User == nil {
		return users.User{}, false
	}
	return *s.session.User, true
}

// Token returns the bearer token of the current session.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Token, s.session.Token != ""
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Authenticated
}

// Snapshot returns a copy of the whole session, read at one instant.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.clone()
}

func (s *Store) newSession(user users.User, rawToken string) Session {
	session := Session{User: &user, Token: rawToken, Authenticated: true}
	if claims, err := token.Inspect(rawToken); err == nil {
		session.ExpiresAt = claims.ExpiresAt
	}
	return session
}

// persist must be called with mu held. If either write fails both keys are erased,
// so a reload finds no record rather than one user's record with another's token.
func (s *Store) persist(serializedUser, rawToken string) {
	for _, kv := range [][2]string{{UserKey, serializedUser}, {TokenKey, rawToken}} {
		if err := s.storage.Set(kv[0], kv[1]); err != nil {
			s.logger.Error().Err(err).Str("key", kv[0]).Msg("failed to persist session, erasing record")
			s.clearStorage()
			return
		}
	}
}

// clearLocked must be called with mu held.
func (s *Store) clearLocked() {
	s.session = Session{}
	s.clearStorage()
}

func (s *Store) clearStorage() {
	for _, key := range []string{TokenKey, UserKey} {
		if err := s.storage.Clear(key); err != nil {
			s.logger.Error().Err(err).Str("key", key).Msg("failed to clear persisted session")
		}
	}
}

// readRecord must be called with mu held. A nil user with a nil error means no
// record exists. A malformed record is erased so storage mirrors the empty session.
func (s *Store) readRecord() (*users.User, string, error) {
	rawToken, tokenFound, err := s.storage.Get(TokenKey)
	if err != nil {
		return nil, "", apperrors.Wrapf(err, "[Store.Hydrate] reading %s", TokenKey)
	}
	rawUser, userFound, err := s.storage.Get(UserKey)
	if err != nil {
		return nil, "", apperrors.Wrapf(err, "[Store.Hydrate] reading %s", UserKey)
	}

	if !tokenFound && !userFound {
		return nil, "", nil
	}

	user, err := decodeRecord(rawUser, rawToken, tokenFound, userFound)
	if err != nil {
		s.clearLocked()
		return nil, "", err
	}
	return user, rawToken, nil
}

func decodeRecord(rawUser, rawToken string, tokenFound, userFound bool) (*users.User, error) {
	if !tokenFound || rawToken == "" {
		return nil, apperrors.Wrapf(ErrMalformedRecord, "missing %s", TokenKey)
	}
	if !userFound || rawUser == "" {
		return nil, apperrors.Wrapf(ErrMalformedRecord, "missing %s", UserKey)
	}

	var user users.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, apperrors.Wrapf(ErrMalformedRecord, "decoding %s: %v", UserKey, err)
	}
	if err := user.Validate(); err != nil {
		return nil, apperrors.Wrapf(ErrMalformedRecord, "validating %s: %v", UserKey, err)
	}
	return &user, nil
}

func (s *Store) notify(snapshot Session) {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, observer := range observers {
		observer(snapshot.clone())
	}
}
