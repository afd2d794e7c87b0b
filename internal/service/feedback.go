package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/models"
)

// FeedbackRepository stores feedback.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, f models.Feedback) (*models.Feedback, error)
}

// FeedbackService accepts any number of feedback entries per user.
type FeedbackService struct {
	repo FeedbackRepository
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(repo FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// Submit validates and stores one feedback entry.
func (s *FeedbackService) Submit(ctx context.Context, userID string, rating *int, text string) (*models.Feedback, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: feedback is required", common.ErrValidation)
	}
	if rating != nil && (*rating < 0 || *rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 0 and 5", common.ErrValidation)
	}
	return s.repo.CreateFeedback(ctx, models.Feedback{Rating: rating, Text: text, UserID: userID})
}
