package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atinyakov/VocabDeck/internal/auth"
	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/models"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	resetTokenLen  = 32
	resetTokenTTL  = time.Hour
)

// UserRepository defines the account persistence operations.
type UserRepository interface {
	CreateUser(ctx context.Context, u models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID string, hash []byte) error
}

// TokenRepository keeps revoked access tokens and password reset tokens.
type TokenRepository interface {
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	CreateReset(ctx context.Context, token, userID string, expiresAt time.Time) error
	ConsumeReset(ctx context.Context, token string) (string, time.Time, error)
}

// Mailer delivers password reset tokens.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer stands in for a mail transport. The request is logged at Info;
// the token itself only at Debug, so production logs never hold a live token.
type LogMailer struct {
	Log *zap.Logger
}

func (m LogMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.Log.Info("password reset requested", zap.String("email", email))
	m.Log.Debug("password reset token", zap.String("email", email), zap.String("token", token))
	return nil
}

// AuthService implements sign-up, sign-in, sign-out and password flows.
type AuthService struct {
	users  UserRepository
	tokens TokenRepository
	issuer *auth.Issuer
	mailer Mailer
	now    func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users UserRepository, tokens TokenRepository, issuer *auth.Issuer, mailer Mailer) *AuthService {
	return &AuthService{users: users, tokens: tokens, issuer: issuer, mailer: mailer, now: time.Now}
}

// SignUp creates an account and returns a fresh session.
// A taken email yields common.ErrAlreadyExists.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	email = normalizeEmail(email)
	if len(password) < minPasswordLen {
		return nil, common.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{ID: uuid.NewString(), Email: email, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return s.newSession(u.ID)
}

// SignIn checks the credentials and returns a fresh session.
// Unknown emails and wrong passwords both yield common.ErrInvalidLogin.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrInvalidLogin
	}
	return s.newSession(u.ID)
}

// SignOut revokes the token identified by claims.
func (s *AuthService) SignOut(ctx context.Context, claims *auth.Claims) error {
	expires := s.now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return s.tokens.RevokeToken(ctx, claims.ID, expires)
}

// Authenticate validates an access token and rejects revoked ones.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, common.ErrTokenRevoked
	}
	return claims, nil
}

// RequestPasswordReset issues a reset token for email and hands it to the
// mailer. Unknown emails succeed silently.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := gonanoid.New(resetTokenLen)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := s.tokens.CreateReset(ctx, token, u.ID, s.now().Add(resetTokenTTL)); err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(ctx, email, token)
}

// ResetPassword consumes a reset token and sets a new password for its owner.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLen {
		return common.ErrWeakPassword
	}
	userID, expires, err := s.tokens.ConsumeReset(ctx, token)
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrInvalidToken
	}
	if err != nil {
		return err
	}
	if s.now().After(expires) {
		return common.ErrResetExpired
	}
	return s.UpdatePassword(ctx, userID, password)
}

// UpdatePassword sets a new password for userID.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, password string) error {
	if len(password) < minPasswordLen {
		return common.ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

func (s *AuthService) newSession(userID string) (*models.Session, error) {
	token, expires, err := s.issuer.GenerateToken(userID)
	if err != nil {
		return nil, err
	}
	return &models.Session{AccessToken: token, ExpiresAt: expires, UserID: userID}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
