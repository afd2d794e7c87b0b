package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/models"
)

// CardRepository defines the persistence operations needed by the CardService.
type CardRepository interface {
	ListCards(ctx context.Context, userID string, collectionID int64) ([]models.Card, error)
	// CreateCard inserts card unless its collection is missing, foreign or full.
	CreateCard(ctx context.Context, card models.Card, limit int) (*models.Card, error)
	UpdateCard(ctx context.Context, userID string, id int64, content, explanation string) ([]models.Card, error)
	DeleteCards(ctx context.Context, userID string, ids []int64) ([]models.Card, error)
}

// CardService implements card operations.
type CardService struct {
	repo  CardRepository
	limit int
}

// NewCardService constructs a CardService enforcing the default per-collection quota.
func NewCardService(repo CardRepository) *CardService {
	return &CardService{repo: repo, limit: common.MaxCardsPerCollection}
}

// List returns the cards of collectionID.
func (s *CardService) List(ctx context.Context, userID string, collectionID int64) ([]models.Card, error) {
	return s.repo.ListCards(ctx, userID, collectionID)
}

// Create stores a new card. Both content and explanation are required.
func (s *CardService) Create(ctx context.Context, userID string, collectionID int64, content, explanation string) (*models.Card, error) {
	if err := validateCard(content, explanation); err != nil {
		return nil, err
	}
	return s.repo.CreateCard(ctx, models.Card{
		CollectionID: collectionID,
		Content:      strings.TrimSpace(content),
		Explanation:  explanation,
		UserID:       userID,
	}, s.limit)
}

// Update replaces both fields of a card.
func (s *CardService) Update(ctx context.Context, userID string, id int64, content, explanation string) ([]models.Card, error) {
	if err := validateCard(content, explanation); err != nil {
		return nil, err
	}
	return s.repo.UpdateCard(ctx, userID, id, strings.TrimSpace(content), explanation)
}

// Delete removes one card and returns the deleted rows.
func (s *CardService) Delete(ctx context.Context, userID string, id int64) ([]models.Card, error) {
	return s.repo.DeleteCards(ctx, userID, []int64{id})
}

func validateCard(content, explanation string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", common.ErrValidation)
	}
	if strings.TrimSpace(explanation) == "" {
		return fmt.Errorf("%w: explanation is required", common.ErrValidation)
	}
	return nil
}
