package auth

import (
	"context"
	"strings"

	"github.com/isdelr/auction-lab/internal/models"
	"github.com/rs/zerolog/log"
)

// API is the part of the remote API the auth store talks to.
type API interface {
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Register(ctx context.Context, reg models.Registration) (models.AuthResponse, error)
	Verify(ctx context.Context) (models.VerifyResponse, error)
}

// ServiceProvider defines the interface for auth services.
type ServiceProvider interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, email, password, name string) (models.User, error)
	Logout() error
	Verify(ctx context.Context) (models.VerifyResponse, error)
	IsAuthenticated() bool
	AuthUser() *models.User
	Claims() (*Claims, error)
}

// Service wraps the remote auth endpoints and persists the resulting credentials.
type Service struct {
	api     API
	session *Session
}

// NewService creates a new Service.
func NewService(api API, session *Session) *Service {
	return &Service{api: api, session: session}
}

// Login posts the credentials as given (only the email is trimmed) and stores the
// returned token and user.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, error) {
	resp, err := s.api.Login(ctx, models.Credentials{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Login failed")
		return models.User{}, err
	}
	if err := s.session.Save(resp.Token, resp.User); err != nil {
		return models.User{}, err
	}
	log.Info().Str("user_id", resp.User.ID).Msg("Logged in")
	return resp.User, nil
}

// Register creates an account with no format or strength checks and stores the
// returned credentials.
func (s *Service) Register(ctx context.Context, email, password, name string) (models.User, error) {
	resp, err := s.api.Register(ctx, models.Registration{Email: email, Password: password, Name: name})
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Registration failed")
		return models.User{}, err
	}
	if err := s.session.Save(resp.Token, resp.User); err != nil {
		return models.User{}, err
	}
	log.Info().Str("user_id", resp.User.ID).Msg("Registered")
	return resp.User, nil
}

// Logout removes the stored token and user.
func (s *Service) Logout() error {
	return s.session.Clear()
}

// Verify asks the backend about the stored token. The local session is left as is
// whatever the answer.
func (s *Service) Verify(ctx context.Context) (models.VerifyResponse, error) {
	return s.api.Verify(ctx)
}

func (s *Service) IsAuthenticated() bool {
	return s.session.IsAuthenticated()
}

func (s *Service) AuthUser() *models.User {
	return s.session.User()
}

// Claims decodes the stored token for display.
func (s *Service) Claims() (*Claims, error) {
	return DecodeClaims(s.session.Token())
}
