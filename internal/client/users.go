package client

import (
	"context"
	"net/http"

	"github.com/isdelr/auction-lab/internal/models"
)

// GetUser fetches any user by id; the backend does not check ownership.
func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := c.Request(ctx, "/users/"+id, RequestOptions{RequireAuth: true}, &user)
	return user, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, in models.ProfileUpdate) (models.User, error) {
	var user models.User
	err := c.Request(ctx, "/users/"+id, RequestOptions{Method: http.MethodPut, Body: in, RequireAuth: true}, &user)
	return user, err
}
