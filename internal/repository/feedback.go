package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/VocabDeck/internal/models"
)

// PostgresFeedbackRepository stores feedback entries.
type PostgresFeedbackRepository struct {
	DB *sql.DB
}

// NewPostgresFeedbackRepository creates a new PostgresFeedbackRepository.
func NewPostgresFeedbackRepository(db *sql.DB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{DB: db}
}

// CreateFeedback inserts f and returns the stored row.
func (r *PostgresFeedbackRepository) CreateFeedback(ctx context.Context, f models.Feedback) (*models.Feedback, error) {
	var out models.Feedback
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO feedback (rating, feedback, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, rating, feedback, user_id, created_at
	`, f.Rating, f.Text, f.UserID).Scan(&out.ID, &out.Rating, &out.Text, &out.UserID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("CreateFeedback: %w", err)
	}
	return &out, nil
}
