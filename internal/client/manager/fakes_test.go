package manager

import (
	"context"
	"errors"
	"sync"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/models"
	"github.com/atinyakov/VocabDeck/internal/prompt"
)

var errTransport = errors.New("connection refused")

// memoryStore mimics the server, quotas included.
type memoryStore struct {
	mu          sync.Mutex
	nextID      int64
	collections []models.Collection
	cards       []models.Card
	fail        error
	calls       []string

	// listGates holds ListCards for a collection until its channel is closed;
	// listStarted, when set, receives the id of every ListCards call.
	listGates   map[int64]chan struct{}
	listStarted chan int64
}

func (s *memoryStore) gateList(collectionID int64) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listGates == nil {
		s.listGates = map[int64]chan struct{}{}
	}
	if s.listStarted == nil {
		s.listStarted = make(chan int64, 8)
	}
	gate := make(chan struct{})
	s.listGates[collectionID] = gate
	return gate
}

func newMemoryStore() *memoryStore { return &memoryStore{nextID: 100} }

func (s *memoryStore) record(op string) error {
	s.calls = append(s.calls, op)
	return s.fail
}

func (s *memoryStore) ListCollections(context.Context) ([]models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ListCollections"); err != nil {
		return nil, err
	}
	return append([]models.Collection(nil), s.collections...), nil
}

func (s *memoryStore) CreateCollection(_ context.Context, title string, description *string) (*models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("CreateCollection"); err != nil {
		return nil, err
	}
	if len(s.collections) >= common.MaxCollectionsPerUser {
		return nil, errors.New(common.ErrCollectionLimit.Error())
	}
	s.nextID++
	c := models.Collection{ID: s.nextID, Title: title, Description: description}
	s.collections = append(s.collections, c)
	return &c, nil
}

func (s *memoryStore) DeleteCollection(_ context.Context, id int64) ([]models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("DeleteCollection"); err != nil {
		return nil, err
	}
	var out []models.Collection
	kept := s.collections[:0]
	for _, c := range s.collections {
		if c.ID == id {
			out = append(out, c)
			continue
		}
		kept = append(kept, c)
	}
	s.collections = kept
	return out, nil
}

func (s *memoryStore) ListCards(_ context.Context, collectionID int64) ([]models.Card, error) {
	s.mu.Lock()
	gate, started := s.listGates[collectionID], s.listStarted
	s.mu.Unlock()
	if started != nil {
		started <- collectionID
	}
	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ListCards"); err != nil {
		return nil, err
	}
	var out []models.Card
	for _, c := range s.cards {
		if c.CollectionID == collectionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memoryStore) CreateCard(_ context.Context, collectionID int64, content, explanation string) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("CreateCard"); err != nil {
		return nil, err
	}
	n := 0
	for _, c := range s.cards {
		if c.CollectionID == collectionID {
			n++
		}
	}
	if n >= common.MaxCardsPerCollection {
		return nil, errors.New(common.ErrCardLimit.Error())
	}
	s.nextID++
	c := models.Card{ID: s.nextID, CollectionID: collectionID, Content: content, Explanation: explanation}
	s.cards = append(s.cards, c)
	return &c, nil
}

func (s *memoryStore) UpdateCard(_ context.Context, id int64, content, explanation string) ([]models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("UpdateCard"); err != nil {
		return nil, err
	}
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards[i].Content = content
			s.cards[i].Explanation = explanation
			return []models.Card{s.cards[i]}, nil
		}
	}
	return []models.Card{}, nil
}

func (s *memoryStore) DeleteCard(_ context.Context, id int64) ([]models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("DeleteCard"); err != nil {
		return nil, err
	}
	for i, c := range s.cards {
		if c.ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return []models.Card{c}, nil
		}
	}
	return []models.Card{}, nil
}

func (s *memoryStore) seedCards(collectionID int64, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.nextID++
		s.cards = append(s.cards, models.Card{ID: s.nextID, CollectionID: collectionID, Content: "word", Explanation: "x"})
	}
}

// fakeCompleter returns reply, or blocks until release is closed when set.
type fakeCompleter struct {
	mu      sync.Mutex
	reply   string
	err     error
	release chan struct{}
	started chan struct{}
	got     []prompt.Payload
}

func (f *fakeCompleter) Complete(ctx context.Context, p prompt.Payload) (string, error) {
	f.mu.Lock()
	f.got = append(f.got, p)
	release, started := f.release, f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return f.reply, f.err
}

type fixedLanguage string

func (l fixedLanguage) Language() string { return string(l) }
