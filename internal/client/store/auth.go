package store

import (
	"context"
	"net/http"
	"time"

	"github.com/atinyakov/VocabDeck/internal/models"
)

// SessionInfo describes the session behind the current token.
type SessionInfo struct {
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
}

// Expires returns ExpiresAt as a time.
func (s SessionInfo) Expires() time.Time {
	return time.Unix(s.ExpiresAt, 0)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp creates an account and returns its first session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	var out models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/signup", credentials{email, password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	var out models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/signin", credentials{email, password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignOut revokes the current token on the server.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/signout", nil, nil)
}

// Session returns the server's view of the current token.
func (c *Client) Session(ctx context.Context) (*SessionInfo, error) {
	var out SessionInfo
	if err := c.do(ctx, http.MethodGet, "/auth/session", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword asks the server to send a reset token to email.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset", map[string]string{"email": email}, nil)
}

// CompleteReset sets a new password using a reset token.
func (c *Client) CompleteReset(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/password", body, nil)
}

// UpdatePassword changes the signed-in user's password.
func (c *Client) UpdatePassword(ctx context.Context, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/password", map[string]string{"password": password}, nil)
}
