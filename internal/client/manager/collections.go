package manager

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/models"
	"go.uber.org/zap"
)

// CollectionStore is the remote side of the collection list.
type CollectionStore interface {
	ListCollections(ctx context.Context) ([]models.Collection, error)
	CreateCollection(ctx context.Context, title string, description *string) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id int64) ([]models.Collection, error)
}

// CardLoader follows the selected collection.
type CardLoader interface {
	Load(ctx context.Context, collectionID *int64) error
	Clear()
}

// CollectionManager owns the local collection list and the selection.
// The list only changes after the server confirms a write.
type CollectionManager struct {
	mu          sync.Mutex
	store       CollectionStore
	cards       CardLoader
	log         *zap.Logger
	collections []models.Collection
	selected    *int64
	// pending is the target of the Select in flight; epoch bumps whenever a
	// selection starts or is invalidated.
	pending *int64
	epoch   uint64
}

// NewCollectionManager returns an empty CollectionManager.
func NewCollectionManager(store CollectionStore, cards CardLoader, log *zap.Logger) *CollectionManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollectionManager{store: store, cards: cards, log: log}
}

// Refresh replaces the local list with the server's.
func (m *CollectionManager) Refresh(ctx context.Context) error {
	cols, err := m.store.ListCollections(ctx)
	if err != nil {
		m.log.Error("list collections", zap.Error(err))
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections = cols
	if m.selected != nil && m.indexLocked(*m.selected) < 0 {
		m.dropSelectionLocked()
	}
	if m.pending != nil && m.indexLocked(*m.pending) < 0 {
		m.dropSelectionLocked()
	}
	return nil
}

// dropSelectionLocked clears the selection and the card list and invalidates
// any Select in flight.
func (m *CollectionManager) dropSelectionLocked() {
	m.epoch++
	m.selected = nil
	m.pending = nil
	m.cards.Clear()
}

// List returns a copy of the local collections.
func (m *CollectionManager) List() []models.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.collections)
}

// Selected returns the active collection.
func (m *CollectionManager) Selected() (models.Collection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == nil {
		return models.Collection{}, false
	}
	i := m.indexLocked(*m.selected)
	if i < 0 {
		return models.Collection{}, false
	}
	return m.collections[i], true
}

// Select makes id the active collection and loads its cards. Selecting the
// active collection again, or passing nil, clears the selection and the card
// list. A Select overtaken by a later Select or by erasing its collection
// returns ErrStaleResponse and changes nothing.
func (m *CollectionManager) Select(ctx context.Context, id *int64) error {
	m.mu.Lock()
	var next *int64
	if id != nil {
		if m.indexLocked(*id) < 0 {
			m.mu.Unlock()
			return common.ErrNotFound
		}
		if m.selected == nil || *m.selected != *id {
			v := *id
			next = &v
		}
	}
	m.epoch++
	epoch := m.epoch
	m.pending = next
	m.mu.Unlock()

	err := m.cards.Load(ctx, next)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		return ErrStaleResponse
	}
	m.pending = nil
	if err != nil {
		return err
	}
	m.selected = next
	return nil
}

// CanCreate reports whether another collection fits under the quota.
func (m *CollectionManager) CanCreate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.collections) < common.MaxCollectionsPerUser
}

// Create adds a collection once the server accepts it. An empty description
// is sent as null.
func (m *CollectionManager) Create(ctx context.Context, title, description string) (*models.Collection, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if !m.CanCreate() {
		return nil, common.ErrCollectionLimit
	}

	var desc *string
	if d := strings.TrimSpace(description); d != "" {
		desc = &d
	}
	col, err := m.store.CreateCollection(ctx, strings.TrimSpace(title), desc)
	if err != nil {
		m.log.Error("create collection", zap.Error(err))
		return nil, err
	}

	m.mu.Lock()
	m.collections = append(m.collections, *col)
	m.mu.Unlock()
	return col, nil
}

// Erase deletes a collection. On success it leaves the list, and if it was
// selected the selection and card list are cleared.
func (m *CollectionManager) Erase(ctx context.Context, id int64) error {
	if _, err := m.store.DeleteCollection(ctx, id); err != nil {
		m.log.Error("delete collection", zap.Int64("id", id), zap.Error(err))
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexLocked(id); i >= 0 {
		m.collections = slices.Delete(m.collections, i, i+1)
	}
	if (m.selected != nil && *m.selected == id) || (m.pending != nil && *m.pending == id) {
		m.dropSelectionLocked()
	}
	return nil
}

func (m *CollectionManager) indexLocked(id int64) int {
	return slices.IndexFunc(m.collections, func(c models.Collection) bool { return c.ID == id })
}
