package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/models"
	"github.com/atinyakov/VocabDeck/internal/service"
)

type mockCardRepo struct {
	ListCardsFunc   func(ctx context.Context, userID string, collectionID int64) ([]models.Card, error)
	CreateCardFunc  func(ctx context.Context, card models.Card, limit int) (*models.Card, error)
	UpdateCardFunc  func(ctx context.Context, userID string, id int64, content, explanation string) ([]models.Card, error)
	DeleteCardsFunc func(ctx context.Context, userID string, ids []int64) ([]models.Card, error)
}

func (m *mockCardRepo) ListCards(ctx context.Context, userID string, collectionID int64) ([]models.Card, error) {
	return m.ListCardsFunc(ctx, userID, collectionID)
}
func (m *mockCardRepo) CreateCard(ctx context.Context, card models.Card, limit int) (*models.Card, error) {
	return m.CreateCardFunc(ctx, card, limit)
}
func (m *mockCardRepo) UpdateCard(ctx context.Context, userID string, id int64, content, explanation string) ([]models.Card, error) {
	return m.UpdateCardFunc(ctx, userID, id, content, explanation)
}
func (m *mockCardRepo) DeleteCards(ctx context.Context, userID string, ids []int64) ([]models.Card, error) {
	return m.DeleteCardsFunc(ctx, userID, ids)
}

func TestCardCreate_Validation(t *testing.T) {
	svc := service.NewCardService(&mockCardRepo{})
	cases := []struct{ content, explanation string }{
		{"", "airport"},
		{"lufthavn", ""},
		{"  ", "  "},
	}
	for _, c := range cases {
		if _, err := svc.Create(context.Background(), "u1", 1, c.content, c.explanation); !errors.Is(err, common.ErrValidation) {
			t.Errorf("Create(%q, %q) error = %v; want ErrValidation", c.content, c.explanation, err)
		}
	}
}

func TestCardCreate_Success(t *testing.T) {
	var gotLimit int
	repo := &mockCardRepo{
		CreateCardFunc: func(_ context.Context, card models.Card, limit int) (*models.Card, error) {
			gotLimit = limit
			card.ID = 5
			return &card, nil
		},
	}
	card, err := service.NewCardService(repo).Create(context.Background(), "u1", 1, "lufthavn", "airport")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gotLimit != common.MaxCardsPerCollection {
		t.Errorf("limit = %d; want %d", gotLimit, common.MaxCardsPerCollection)
	}
	if card.ID != 5 || card.CollectionID != 1 || card.UserID != "u1" {
		t.Errorf("unexpected card %#v", card)
	}
}

func TestCardUpdate_RequiresBothFields(t *testing.T) {
	svc := service.NewCardService(&mockCardRepo{})
	if _, err := svc.Update(context.Background(), "u1", 1, "tog", ""); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("Update error = %v; want ErrValidation", err)
	}
}

func TestCardDelete_SingleID(t *testing.T) {
	var gotIDs []int64
	repo := &mockCardRepo{
		DeleteCardsFunc: func(_ context.Context, _ string, ids []int64) ([]models.Card, error) {
			gotIDs = ids
			return []models.Card{{ID: ids[0]}}, nil
		},
	}
	if _, err := service.NewCardService(repo).Delete(context.Background(), "u1", 9); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !reflect.DeepEqual(gotIDs, []int64{9}) {
		t.Errorf("ids = %v; want [9]", gotIDs)
	}
}
