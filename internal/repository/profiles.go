package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/models"
)

const profileColumns = `id, username, full_name, website, onboarding, updated_at`

// PostgresProfileRepository stores user profiles.
type PostgresProfileRepository struct {
	DB *sql.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository.
func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

// GetProfile returns the profile of userID.
func (r *PostgresProfileRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := scanProfile(r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetProfile: %w", err)
	}
	return p, nil
}

// UpdateProfile applies the non-nil fields of patch and returns the result.
func (r *PostgresProfileRepository) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	p, err := scanProfile(r.DB.QueryRowContext(ctx, `
		UPDATE profiles SET
			username = COALESCE($1, username),
			full_name = COALESCE($2, full_name),
			website = COALESCE($3, website),
			onboarding = COALESCE($4, onboarding),
			updated_at = now()
		WHERE id = $5
		RETURNING `+profileColumns,
		patch.Username, patch.FullName, patch.Website, patch.Onboarding, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateProfile: %w", err)
	}
	return p, nil
}

func scanProfile(s rowScanner) (*models.Profile, error) {
	var p models.Profile
	if err := s.Scan(&p.ID, &p.Username, &p.FullName, &p.Website, &p.Onboarding, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
