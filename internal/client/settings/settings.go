// Package settings covers the profile screen: language preference, provider
// key, feedback, onboarding and account actions.
package settings

import (
	"context"
	"errors"
	"strings"

	"github.com/atinyakov/VocabDeck/internal/models"
	"go.uber.org/zap"
)

var (
	ErrFeedbackRequired = errors.New("feedback text is required")
	ErrRatingRange      = errors.New("rating must be between 0 and 5")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
)

// Preferences is the locally persisted part of the settings.
type Preferences interface {
	Language() string
	SetLanguage(lang string) error
	ProviderKey() string
	SetProviderKey(key string) error
	ClearSession() error
}

// Account is the remote part of the settings.
type Account interface {
	SubmitFeedback(ctx context.Context, rating *int, text string) (*models.Feedback, error)
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error)
	SignOut(ctx context.Context) error
	ResetPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, password string) error
}

// Settings ties local preferences to the account endpoints.
type Settings struct {
	prefs   Preferences
	account Account
	log     *zap.Logger
}

// New returns Settings backed by prefs and account.
func New(prefs Preferences, account Account, log *zap.Logger) *Settings {
	if log == nil {
		log = zap.NewNop()
	}
	return &Settings{prefs: prefs, account: account, log: log}
}

// Language returns the target language.
func (s *Settings) Language() string { return s.prefs.Language() }

// SetLanguage stores a new target language. Blank input restores the default.
func (s *Settings) SetLanguage(lang string) error {
	return s.prefs.SetLanguage(strings.TrimSpace(lang))
}

// ResetLanguage restores the default target language.
func (s *Settings) ResetLanguage() error { return s.prefs.SetLanguage("") }

// HasProviderKey reports whether the user supplied their own provider key.
func (s *Settings) HasProviderKey() bool { return s.prefs.ProviderKey() != "" }

// SetProviderKey stores the user's provider key. Blank input removes it.
func (s *Settings) SetProviderKey(key string) error {
	return s.prefs.SetProviderKey(strings.TrimSpace(key))
}

// SubmitFeedback sends a feedback entry. Rating is optional.
func (s *Settings) SubmitFeedback(ctx context.Context, rating *int, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrFeedbackRequired
	}
	if rating != nil && (*rating < 0 || *rating > 5) {
		return ErrRatingRange
	}
	if _, err := s.account.SubmitFeedback(ctx, rating, strings.TrimSpace(text)); err != nil {
		s.log.Error("submit feedback", zap.Error(err))
		return err
	}
	return nil
}

// NeedsOnboarding reports whether the onboarding hint should be shown.
func (s *Settings) NeedsOnboarding(ctx context.Context) (bool, error) {
	p, err := s.account.GetProfile(ctx)
	if err != nil {
		return false, err
	}
	return p.Onboarding, nil
}

// DismissOnboarding clears the onboarding flag.
func (s *Settings) DismissOnboarding(ctx context.Context) error {
	off := false
	_, err := s.account.UpdateProfile(ctx, models.ProfilePatch{Onboarding: &off})
	return err
}

// Logout revokes the session on the server and forgets it locally. The local
// session is dropped even when the server call fails.
func (s *Settings) Logout(ctx context.Context) error {
	remoteErr := s.account.SignOut(ctx)
	if remoteErr != nil {
		s.log.Warn("sign out", zap.Error(remoteErr))
	}
	if err := s.prefs.ClearSession(); err != nil {
		return err
	}
	return remoteErr
}

// RequestPasswordReset asks the server to send a reset token to email.
func (s *Settings) RequestPasswordReset(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	return s.account.ResetPassword(ctx, strings.TrimSpace(email))
}

// UpdatePassword changes the signed-in user's password.
func (s *Settings) UpdatePassword(ctx context.Context, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	return s.account.UpdatePassword(ctx, password)
}
