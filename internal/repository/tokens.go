package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/VocabDeck/internal/common"
)

// PostgresTokenRepository keeps revoked access tokens and password reset tokens.
type PostgresTokenRepository struct {
	DB *sql.DB
}

// NewPostgresTokenRepository creates a new PostgresTokenRepository.
func NewPostgresTokenRepository(db *sql.DB) *PostgresTokenRepository {
	return &PostgresTokenRepository{DB: db}
}

// RevokeToken records jti as revoked until expiresAt.
func (r *PostgresTokenRepository) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO revoked_tokens (jti, expires_at) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		jti, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("RevokeToken: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti was revoked.
func (r *PostgresTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1)`,
		jti,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("IsRevoked: %w", err)
	}
	return exists, nil
}

// CreateReset stores a password reset token for userID.
func (r *PostgresTokenRepository) CreateReset(ctx context.Context, token, userID string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO password_resets (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		token, userID, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("CreateReset: %w", err)
	}
	return nil
}

// ConsumeReset deletes the reset token and returns its owner and expiry.
// Unknown tokens yield common.ErrNotFound.
func (r *PostgresTokenRepository) ConsumeReset(ctx context.Context, token string) (string, time.Time, error) {
	var (
		userID    string
		expiresAt time.Time
	)
	err := r.DB.QueryRowContext(ctx,
		`DELETE FROM password_resets WHERE token = $1 RETURNING user_id, expires_at`,
		token,
	).Scan(&userID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, common.ErrNotFound
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("ConsumeReset: %w", err)
	}
	return userID, expiresAt, nil
}
