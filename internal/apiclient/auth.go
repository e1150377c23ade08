package apiclient

import (
	"context"
	"net/http"

	"github.com/taskpanel/taskpanel/internal/models"
)

// Login exchanges credentials for a token and the user they identify.
// Rejected credentials return an AuthError.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &res); err != nil {
		return nil, asAuthError(err)
	}
	return &res, nil
}

// Register creates an account; the response shape matches Login.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &res); err != nil {
		return nil, asAuthError(err)
	}
	return &res, nil
}

// ValidateToken asks the server whether the stored bearer token is
// still accepted, and for whom.
func (c *Client) ValidateToken(ctx context.Context) (*models.ValidateResponse, error) {
	var res models.ValidateResponse
	if err := c.do(ctx, http.MethodGet, "/auth/validate", nil, nil, &res); err != nil {
		return nil, asAuthError(err)
	}
	return &res, nil
}
