package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fixoncall/fixoncall-client/api"
	"github.com/fixoncall/fixoncall-client/router"
	"github.com/fixoncall/fixoncall-client/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// SessionStore is the part of the session store the sign-in flows write to.
type SessionStore interface {
	Login(user users.User, token string)
	Logout()
}

// Service calls the remote service's /auth endpoints. Register, Login, GetProfile and
// UpdateProfile only talk to the network and return what the service said; SignUp,
// SignIn and SignOut additionally update the session and navigate.
type Service struct {
	client    *api.Client
	sessions  SessionStore
	navigator router.Navigator
	logger    zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithLogger sets the logger used by the sign-in flows.
func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService initializes a new Service with required dependencies. The client's
// transport should be a gateway pipeline so profile calls carry the session token.
func NewService(client *api.Client, sessions SessionStore, navigator router.Navigator, options ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] api client is required")
	}
	if sessions == nil {
		return nil, errors.New("[NewService] session store is required")
	}
	if navigator == nil {
		return nil, errors.New("[NewService] navigator is required")
	}

	s := &Service{
		client:    client,
		sessions:  sessions,
		navigator: navigator,
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Register creates an account.
func (s *Service) Register(ctx context.Context, request RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.client.Do(ctx, http.MethodPost, "/auth/register", nil, request, &resp); err != nil {
		return nil, errors.Wrap(err, "[Register] request failed")
	}
	if err := resp.validate(); err != nil {
		return nil, errors.Wrap(err, "[Register] invalid response")
	}
	return &resp, nil
}

// Login exchanges credentials for a token.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.client.Do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, errors.Wrap(err, "[Login] request failed")
	}
	if err := resp.validate(); err != nil {
		return nil, errors.Wrap(err, "[Login] invalid response")
	}
	return &resp, nil
}

// GetProfile fetches the signed-in user.
func (s *Service) GetProfile(ctx context.Context) (*Profile, error) {
	var resp profileResponse
	if err := s.client.Do(ctx, http.MethodGet, "/auth/profile", nil, nil, &resp); err != nil {
		return nil, errors.Wrap(err, "[GetProfile] request failed")
	}
	return resp.profile("[GetProfile]")
}

// UpdateProfile changes the fields set in update and returns the updated user.
func (s *Service) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var resp profileResponse
	if err := s.client.Do(ctx, http.MethodPut, "/auth/profile", nil, update, &resp); err != nil {
		return nil, errors.Wrap(err, "[UpdateProfile] request failed")
	}
	return resp.profile("[UpdateProfile]")
}

// SignIn logs in, starts the session and navigates to the user's dashboard, which
// it returns. A user whose role has no dashboard gets no session.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	resp, err := s.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.start(resp)
}

// SignUp registers, starts the session and navigates like SignIn.
func (s *Service) SignUp(ctx context.Context, request RegisterRequest) (string, error) {
	resp, err := s.Register(ctx, request)
	if err != nil {
		return "", err
	}
	return s.start(resp)
}

// SignOut ends the session and returns to the login entry point.
func (s *Service) SignOut() {
	s.sessions.Logout()
	s.navigator.Navigate(router.LoginRoute)
}

func (s *Service) start(resp *AuthResponse) (string, error) {
	destination, err := router.DestinationFor(resp.User.Role)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", resp.User.ID).Msg("signed-in user has no dashboard")
		return "", errors.Wrap(err, "[SignIn] routing")
	}

	s.sessions.Login(resp.User, resp.Token)
	s.navigator.Navigate(destination)
	return destination, nil
}

func (r *AuthResponse) validate() error {
	if r.Token == "" {
		return MissingTokenErr
	}
	if r.User.ID == "" {
		return MissingUserErr
	}
	return nil
}

func (r *profileResponse) profile(caller string) (*Profile, error) {
	if len(r.User) == 0 || string(r.User) == "null" {
		return nil, errors.Wrap(MissingUserErr, caller)
	}

	var user users.User
	if err := json.Unmarshal(r.User, &user); err != nil {
		return nil, errors.Wrap(err, caller+" decoding user")
	}
	return &Profile{User: user, Raw: r.User}, nil
}
