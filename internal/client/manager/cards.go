package manager

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/models"
	"github.com/atinyakov/VocabDeck/internal/prompt"
	"go.uber.org/zap"
)

// RecommendThreshold is the card count from which next-word recommendations
// are offered.
const RecommendThreshold = 5

// NoticeGenerationFailed is shown in the dialog when a completion fails.
const NoticeGenerationFailed = "Could not generate text. Please try again."

// CardStore is the remote side of the card list.
type CardStore interface {
	ListCards(ctx context.Context, collectionID int64) ([]models.Card, error)
	CreateCard(ctx context.Context, collectionID int64, content, explanation string) (*models.Card, error)
	UpdateCard(ctx context.Context, id int64, content, explanation string) ([]models.Card, error)
	DeleteCard(ctx context.Context, id int64) ([]models.Card, error)
}

// Completer sends prompts to the completion gateway.
type Completer interface {
	Complete(ctx context.Context, p prompt.Payload) (string, error)
}

// Preferences supplies the target language.
type Preferences interface {
	Language() string
}

// CardManager owns the card list of the selected collection and the
// add/edit/erase dialog.
type CardManager struct {
	mu        sync.Mutex
	store     CardStore
	completer Completer
	prefs     Preferences
	log       *zap.Logger

	collectionID *int64
	cards        []models.Card
	// loadEpoch bumps on every Load and Clear; older fetches are dropped.
	loadEpoch uint64

	dialog Dialog
	epoch  uint64
}

// NewCardManager returns a CardManager with no collection loaded.
func NewCardManager(store CardStore, completer Completer, prefs Preferences, log *zap.Logger) *CardManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &CardManager{store: store, completer: completer, prefs: prefs, log: log}
}

// Load replaces the card list with the cards of collectionID. A nil id clears
// the list without a request. Any open dialog is closed. When another Load or
// Clear happens while the fetch is in flight, its result is dropped and
// ErrStaleResponse returned.
func (m *CardManager) Load(ctx context.Context, collectionID *int64) error {
	if collectionID == nil {
		m.Clear()
		return nil
	}
	id := *collectionID

	m.mu.Lock()
	m.loadEpoch++
	epoch := m.loadEpoch
	m.mu.Unlock()

	cards, err := m.store.ListCards(ctx, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadEpoch != epoch {
		return ErrStaleResponse
	}
	if err != nil {
		m.log.Error("list cards", zap.Int64("collection_id", id), zap.Error(err))
		return err
	}
	m.closeLocked()
	m.collectionID = &id
	m.cards = cards
	return nil
}

// Clear drops the card list and closes any open dialog. A fetch still in
// flight is discarded when it returns.
func (m *CardManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadEpoch++
	m.closeLocked()
	m.collectionID = nil
	m.cards = nil
}

// Cards returns a copy of the local card list.
func (m *CardManager) Cards() []models.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.cards)
}

// CollectionID returns the loaded collection.
func (m *CardManager) CollectionID() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collectionID == nil {
		return 0, false
	}
	return *m.collectionID, true
}

// CanAdd reports whether a collection is loaded and below the card quota.
func (m *CardManager) CanAdd() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canAddLocked() == nil
}

func (m *CardManager) canAddLocked() error {
	if m.collectionID == nil {
		return ErrNoCollection
	}
	if len(m.cards) >= common.MaxCardsPerCollection {
		return common.ErrCardLimit
	}
	return nil
}

// CanRecommend reports whether the collection is large enough for a
// next-word recommendation.
func (m *CardManager) CanRecommend() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collectionID != nil && len(m.cards) >= RecommendThreshold
}

// Create adds a card to the loaded collection once the server accepts it.
func (m *CardManager) Create(ctx context.Context, content, explanation string) (*models.Card, error) {
	if err := validateCard(content, explanation); err != nil {
		return nil, err
	}

	m.mu.Lock()
	if err := m.canAddLocked(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	collectionID := *m.collectionID
	m.mu.Unlock()

	card, err := m.store.CreateCard(ctx, collectionID, content, explanation)
	if err != nil {
		m.log.Error("create card", zap.Error(err))
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collectionID != nil && *m.collectionID == collectionID {
		m.cards = append(m.cards, *card)
	}
	return card, nil
}

// Update replaces both fields of a card.
func (m *CardManager) Update(ctx context.Context, id int64, content, explanation string) (*models.Card, error) {
	if err := validateCard(content, explanation); err != nil {
		return nil, err
	}

	rows, err := m.store.UpdateCard(ctx, id, content, explanation)
	if err != nil {
		m.log.Error("update card", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if len(rows) == 0 {
		return nil, common.ErrNotFound
	}

	updated := rows[0]
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexLocked(id); i >= 0 {
		m.cards[i] = updated
	}
	return &updated, nil
}

// Erase deletes a card. It leaves the local list only when the server
// reports it deleted.
func (m *CardManager) Erase(ctx context.Context, id int64) error {
	rows, err := m.store.DeleteCard(ctx, id)
	if err != nil {
		m.log.Error("delete card", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if len(rows) == 0 {
		return common.ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexLocked(id); i >= 0 {
		m.cards = slices.Delete(m.cards, i, i+1)
	}
	return nil
}

func (m *CardManager) indexLocked(id int64) int {
	return slices.IndexFunc(m.cards, func(c models.Card) bool { return c.ID == id })
}

func validateCard(content, explanation string) error {
	if strings.TrimSpace(content) == "" {
		return ErrContentRequired
	}
	if strings.TrimSpace(explanation) == "" {
		return ErrExplanationRequired
	}
	return nil
}
