// Package service provides the business logic for collections, cards,
// feedback, profiles and accounts, delegating persistence to repository
// interfaces.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/models"
)

// CollectionRepository defines the persistence operations
// required by the collection service.
type CollectionRepository interface {
	ListCollections(ctx context.Context, userID string) ([]models.Collection, error)
	// CreateCollection inserts c unless its owner already holds limit collections.
	CreateCollection(ctx context.Context, c models.Collection, limit int) (*models.Collection, error)
	DeleteCollection(ctx context.Context, userID string, id int64) ([]models.Collection, error)
}

// CollectionService implements collection operations on behalf of one user.
type CollectionService struct {
	repo  CollectionRepository
	limit int
}

// NewCollectionService constructs a CollectionService enforcing the default quota.
func NewCollectionService(repo CollectionRepository) *CollectionService {
	return &CollectionService{repo: repo, limit: common.MaxCollectionsPerUser}
}

// List returns the collections owned by userID.
func (s *CollectionService) List(ctx context.Context, userID string) ([]models.Collection, error) {
	return s.repo.ListCollections(ctx, userID)
}

// Create validates the title and stores a new collection for userID.
func (s *CollectionService) Create(ctx context.Context, userID, title string, description *string) (*models.Collection, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	return s.repo.CreateCollection(ctx, models.Collection{
		Title:       title,
		Description: description,
		UserID:      userID,
	}, s.limit)
}

// Delete removes a collection and its cards, returning the deleted rows.
func (s *CollectionService) Delete(ctx context.Context, userID string, id int64) ([]models.Collection, error) {
	return s.repo.DeleteCollection(ctx, userID, id)
}
