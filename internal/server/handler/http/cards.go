package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/VocabDeck/internal/middleware"
	"github.com/atinyakov/VocabDeck/internal/models"
	"go.uber.org/zap"
)

// CardService defines the card operations required by the CardHandler.
type CardService interface {
	List(ctx context.Context, userID string, collectionID int64) ([]models.Card, error)
	Create(ctx context.Context, userID string, collectionID int64, content, explanation string) (*models.Card, error)
	Update(ctx context.Context, userID string, id int64, content, explanation string) ([]models.Card, error)
	Delete(ctx context.Context, userID string, id int64) ([]models.Card, error)
}

// CardHandler handles the /cards endpoints and the card listing of a collection.
type CardHandler struct {
	CardService CardService
	Log         *zap.Logger
}

// CreateCardRequest is the body of POST /cards.
type CreateCardRequest struct {
	Content      string `json:"content" validate:"required"`
	Explanation  string `json:"explanation" validate:"required"`
	CollectionID int64  `json:"collection_id" validate:"required,gt=0"`
}

// UpdateCardRequest is the body of PATCH /cards/{id}. Both fields are
// replaced together.
type UpdateCardRequest struct {
	Content     string `json:"content" validate:"required"`
	Explanation string `json:"explanation" validate:"required"`
}

// ListByCollection handles GET /collections/{id}/cards.
func (h *CardHandler) ListByCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	userID := middleware.GetUserIDFromContext(r.Context())

	cards, err := h.CardService.List(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.Log, err, "Error fetching cards")
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}
	writeJSON(w, cards)
}

// Create handles POST /cards and returns the created row.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	if !bind(w, r, &req, "No body provided") {
		return
	}
	userID := middleware.GetUserIDFromContext(r.Context())

	card, err := h.CardService.Create(r.Context(), userID, req.CollectionID, req.Content, req.Explanation)
	if err != nil {
		writeError(w, h.Log, err, "Error adding new card")
		return
	}
	writeJSON(w, card)
}

// Update handles PATCH /cards/{id} and returns the updated rows.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req UpdateCardRequest
	if !bind(w, r, &req, "No body provided") {
		return
	}
	userID := middleware.GetUserIDFromContext(r.Context())

	updated, err := h.CardService.Update(r.Context(), userID, id, req.Content, req.Explanation)
	if err != nil {
		writeError(w, h.Log, err, "Error updating card")
		return
	}
	if updated == nil {
		updated = []models.Card{}
	}
	writeJSON(w, updated)
}

// Delete handles DELETE /cards/{id} and returns the deleted rows.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	userID := middleware.GetUserIDFromContext(r.Context())

	deleted, err := h.CardService.Delete(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.Log, err, "Error deleting card")
		return
	}
	if deleted == nil {
		deleted = []models.Card{}
	}
	writeJSON(w, deleted)
}
