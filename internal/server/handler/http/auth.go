package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/VocabDeck/internal/auth"
	"github.com/atinyakov/VocabDeck/internal/middleware"
	"github.com/atinyakov/VocabDeck/internal/models"
	"go.uber.org/zap"
)

// AuthService defines the account operations required by the AuthHandler.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context, claims *auth.Claims) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	UpdatePassword(ctx context.Context, userID, password string) error
}

// AuthHandler handles the /auth endpoints.
type AuthHandler struct {
	AuthService AuthService
	Log         *zap.Logger
}

// CredentialsRequest is the body of sign-up and sign-in.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResetRequest is the body of POST /auth/reset.
type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordRequest is the body of POST /auth/password. Token is required
// unless the caller is authenticated.
type PasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned by GET /auth/session.
type SessionResponse struct {
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !bind(w, r, &req, "invalid request") {
		return
	}
	sess, err := h.AuthService.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Log, err, "internal error")
		return
	}
	writeJSON(w, sess)
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !bind(w, r, &req, "invalid request") {
		return
	}
	sess, err := h.AuthService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Log, err, "internal error")
		return
	}
	writeJSON(w, sess)
}

// SignOut handles POST /auth/signout by revoking the presented token.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.AuthService.SignOut(r.Context(), claims); err != nil {
		writeError(w, h.Log, err, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /auth/session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	resp := SessionResponse{UserID: claims.Subject}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}
	writeJSON(w, resp)
}

// RequestReset handles POST /auth/reset. It answers 202 whether or not the
// email belongs to an account.
func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if !bind(w, r, &req, "invalid request") {
		return
	}
	if err := h.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, h.Log, err, "internal error")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// Password handles POST /auth/password: completes a reset when a token is
// given, otherwise updates the authenticated user's password.
func (h *AuthHandler) Password(w http.ResponseWriter, r *http.Request) {
	var req PasswordRequest
	if !bind(w, r, &req, "invalid request") {
		return
	}

	var err error
	if req.Token != "" {
		err = h.AuthService.ResetPassword(r.Context(), req.Token, req.Password)
	} else {
		userID := middleware.GetUserIDFromContext(r.Context())
		if userID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		err = h.AuthService.UpdatePassword(r.Context(), userID, req.Password)
	}
	if err != nil {
		writeError(w, h.Log, err, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
