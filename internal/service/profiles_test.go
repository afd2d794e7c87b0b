package service_test

import (
	"context"
	"testing"

	"github.com/atinyakov/VocabDeck/internal/models"
	"github.com/atinyakov/VocabDeck/internal/service"
)

type mockProfileRepo struct {
	profile models.Profile
}

func (m *mockProfileRepo) GetProfile(context.Context, string) (*models.Profile, error) {
	p := m.profile
	return &p, nil
}

func (m *mockProfileRepo) UpdateProfile(_ context.Context, _ string, patch models.ProfilePatch) (*models.Profile, error) {
	if patch.Onboarding != nil {
		m.profile.Onboarding = *patch.Onboarding
	}
	if patch.Username != nil {
		m.profile.Username = patch.Username
	}
	p := m.profile
	return &p, nil
}

func TestProfileDismissOnboarding(t *testing.T) {
	repo := &mockProfileRepo{profile: models.Profile{ID: "u1", Onboarding: true}}
	svc := service.NewProfileService(repo)

	off := false
	p, err := svc.Update(context.Background(), "u1", models.ProfilePatch{Onboarding: &off})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Onboarding {
		t.Error("expected onboarding dismissed")
	}

	got, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Onboarding {
		t.Error("expected onboarding to stay dismissed")
	}
}
