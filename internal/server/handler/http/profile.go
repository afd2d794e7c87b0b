package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/VocabDeck/internal/middleware"
	"github.com/atinyakov/VocabDeck/internal/models"
	"go.uber.org/zap"
)

// ProfileService reads and patches user profiles.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error)
}

// ProfileHandler handles the /profile endpoints.
type ProfileHandler struct {
	ProfileService ProfileService
	Log            *zap.Logger
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProfileService.Get(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, h.Log, err, "Error fetching profile")
		return
	}
	writeJSON(w, p)
}

// Update handles PATCH /profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ProfilePatch
	if !bind(w, r, &patch, "No body provided") {
		return
	}
	p, err := h.ProfileService.Update(r.Context(), middleware.GetUserIDFromContext(r.Context()), patch)
	if err != nil {
		writeError(w, h.Log, err, "Error updating profile")
		return
	}
	writeJSON(w, p)
}
