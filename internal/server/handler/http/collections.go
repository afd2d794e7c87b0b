package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/VocabDeck/internal/middleware"
	"github.com/atinyakov/VocabDeck/internal/models"
	"go.uber.org/zap"
)

// CollectionService defines the collection operations required by the
// CollectionHandler.
type CollectionService interface {
	List(ctx context.Context, userID string) ([]models.Collection, error)
	Create(ctx context.Context, userID, title string, description *string) (*models.Collection, error)
	Delete(ctx context.Context, userID string, id int64) ([]models.Collection, error)
}

// CollectionHandler handles the /collections endpoints.
type CollectionHandler struct {
	CollectionService CollectionService
	Log               *zap.Logger
}

// CreateCollectionRequest is the body of POST /collections. A user_id field,
// if sent, is ignored in favor of the authenticated user.
type CreateCollectionRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
}

// List handles GET /collections.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	cols, err := h.CollectionService.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.Log, err, "Error fetching collections")
		return
	}
	if cols == nil {
		cols = []models.Collection{}
	}
	writeJSON(w, cols)
}

// Create handles POST /collections and returns the created row.
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if !bind(w, r, &req, "No body provided") {
		return
	}
	userID := middleware.GetUserIDFromContext(r.Context())

	col, err := h.CollectionService.Create(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		writeError(w, h.Log, err, "Error adding new collection")
		return
	}
	writeJSON(w, col)
}

// Delete handles DELETE /collections/{id} and returns the deleted rows.
// Cards of the collection are removed with it.
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	userID := middleware.GetUserIDFromContext(r.Context())

	deleted, err := h.CollectionService.Delete(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.Log, err, "Error deleting collection")
		return
	}
	if deleted == nil {
		deleted = []models.Collection{}
	}
	writeJSON(w, deleted)
}
