package santa

import (
	"context"
	"net/http"

	"giftdraw/internal/models"
)

// Register creates an account on the remote store.
func (c *Client) Register(ctx context.Context, email, password, fullName string) (*models.AuthPayload, error) {
	body := map[string]string{"email": email, "password": password}
	if fullName != "" {
		body["fullName"] = fullName
	}
	var payload models.AuthPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, "", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthPayload, error) {
	body := map[string]string{"email": email, "password": password}
	var payload models.AuthPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GoogleLogin exchanges a verified Google id token for a bearer token,
// creating the account on first sign-in.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (*models.AuthPayload, error) {
	body := map[string]string{"idToken": idToken}
	var payload models.AuthPayload
	if err := c.do(ctx, http.MethodPost, "/auth/google", nil, "", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
