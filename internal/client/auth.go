package client

import (
	"context"
	"net/http"

	"github.com/isdelr/auction-lab/internal/models"
)

// Login posts the credentials unchanged to /auth/login.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.Request(ctx, "/auth/login", RequestOptions{Method: http.MethodPost, Body: creds}, &resp)
	return resp, err
}

// Register posts the registration unchanged to /auth/register.
func (c *Client) Register(ctx context.Context, reg models.Registration) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.Request(ctx, "/auth/register", RequestOptions{Method: http.MethodPost, Body: reg}, &resp)
	return resp, err
}

// Verify asks the backend whether the stored token is still accepted.
func (c *Client) Verify(ctx context.Context) (models.VerifyResponse, error) {
	var resp models.VerifyResponse
	err := c.Request(ctx, "/auth/verify", RequestOptions{Method: http.MethodPost, RequireAuth: true}, &resp)
	return resp, err
}
