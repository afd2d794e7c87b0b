package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/atinyakov/VocabDeck/internal/models"
)

// fakeBackend is an in-memory VocabDeck API.
type fakeBackend struct {
	mu          sync.Mutex
	nextID      int64
	collections []models.Collection
	cards       []models.Card
	feedback    []models.Feedback
	onboarding  bool
	completion  string
	prompts     []json.RawMessage
	providerKey string
	signedOut   bool
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{onboarding: true}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /collections", b.listCollections)
	mux.HandleFunc("POST /collections", b.createCollection)
	mux.HandleFunc("DELETE /collections/{id}", b.deleteCollection)
	mux.HandleFunc("GET /collections/{id}/cards", b.listCards)
	mux.HandleFunc("POST /cards", b.createCard)
	mux.HandleFunc("POST /feedback", b.createFeedback)
	mux.HandleFunc("POST /completion", b.complete)
	mux.HandleFunc("GET /profile", b.getProfile)
	mux.HandleFunc("PATCH /profile", b.patchProfile)
	mux.HandleFunc("POST /auth/signin", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, models.Session{AccessToken: "token", UserID: "alice", ExpiresAt: time.Now().Add(time.Hour)})
	})
	mux.HandleFunc("POST /auth/signout", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		b.signedOut = true
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return b, srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id
}

func (b *fakeBackend) listCollections(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, append([]models.Collection{}, b.collections...))
}

func (b *fakeBackend) createCollection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.collections) >= 3 {
		http.Error(w, "You have reached the maximum number of collections", http.StatusBadRequest)
		return
	}
	b.nextID++
	c := models.Collection{ID: b.nextID, Title: req.Title, Description: req.Description, UserID: "alice"}
	b.collections = append(b.collections, c)
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, c)
}

func (b *fakeBackend) deleteCollection(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	var deleted []models.Collection
	kept := b.collections[:0]
	for _, c := range b.collections {
		if c.ID == id {
			deleted = append(deleted, c)
			continue
		}
		kept = append(kept, c)
	}
	b.collections = kept
	writeJSON(w, deleted)
}

func (b *fakeBackend) listCards(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Card{}
	for _, c := range b.cards {
		if c.CollectionID == id {
			out = append(out, c)
		}
	}
	writeJSON(w, out)
}

func (b *fakeBackend) createCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content      string `json:"content"`
		Explanation  string `json:"explanation"`
		CollectionID int64  `json:"collection_id"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	c := models.Card{ID: b.nextID, CollectionID: req.CollectionID, Content: req.Content, Explanation: req.Explanation, UserID: "alice"}
	b.cards = append(b.cards, c)
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, c)
}

func (b *fakeBackend) createFeedback(w http.ResponseWriter, r *http.Request) {
	var f models.Feedback
	_ = json.NewDecoder(r.Body).Decode(&f)
	b.mu.Lock()
	b.feedback = append(b.feedback, f)
	b.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, f)
}

func (b *fakeBackend) complete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt json.RawMessage `json:"prompt"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.prompts = append(b.prompts, req.Prompt)
	b.providerKey = r.Header.Get("X-Provider-Key")
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(b.completion))
}

func (b *fakeBackend) getProfile(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, models.Profile{ID: "alice", Onboarding: b.onboarding})
}

func (b *fakeBackend) patchProfile(w http.ResponseWriter, r *http.Request) {
	var p models.ProfilePatch
	_ = json.NewDecoder(r.Body).Decode(&p)
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.Onboarding != nil {
		b.onboarding = *p.Onboarding
	}
	writeJSON(w, models.Profile{ID: "alice", Onboarding: b.onboarding})
}
