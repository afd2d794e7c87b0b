package service

import (
	"context"

	"github.com/atinyakov/VocabDeck/internal/models"
)

// ProfileRepository reads and patches profiles.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error)
}

// ProfileService is a thin pass-through to the profile store.
type ProfileService struct {
	repo ProfileRepository
}

// NewProfileService constructs a ProfileService.
func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *ProfileService) Update(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	return s.repo.UpdateProfile(ctx, userID, patch)
}
