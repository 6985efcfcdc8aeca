package services

import (
	"context"

	"github.com/isdelr/auction-lab/internal/client"
	"github.com/isdelr/auction-lab/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUser(ctx context.Context, id string) (models.User, error)
	UpdateUser(ctx context.Context, id string, update models.ProfileUpdate) (models.User, error)
}

// UserService reads and edits profiles by id.
type UserService struct {
	api    *client.Client
	events EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(api *client.Client, events EventServiceProvider) *UserService {
	return &UserService{api: api, events: events}
}

// GetUser retrieves a single user by their ID, including whatever sensitive fields
// the API returns.
func (s *UserService) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.api.GetUser(ctx, id)
}

// UpdateUser sends the profile edit for any id, not only the signed-in user's.
func (s *UserService) UpdateUser(ctx context.Context, id string, update models.ProfileUpdate) (models.User, error) {
	user, err := s.api.UpdateUser(ctx, id, update)
	if err != nil {
		return models.User{}, err
	}
	record(s.events, "user.updated", "info", "Updated profile "+id, nil)
	return user, nil
}
