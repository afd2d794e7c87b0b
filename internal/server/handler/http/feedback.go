package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/VocabDeck/internal/middleware"
	"github.com/atinyakov/VocabDeck/internal/models"
	"go.uber.org/zap"
)

// FeedbackService stores user feedback.
type FeedbackService interface {
	Submit(ctx context.Context, userID string, rating *int, text string) (*models.Feedback, error)
}

// FeedbackHandler handles POST /feedback.
type FeedbackHandler struct {
	FeedbackService FeedbackService
	Log             *zap.Logger
}

// FeedbackRequest is the body of POST /feedback.
type FeedbackRequest struct {
	Rating   *int   `json:"rating" validate:"omitempty,min=0,max=5"`
	Feedback string `json:"feedback" validate:"required"`
}

// Submit stores one feedback entry and returns it.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !bind(w, r, &req, "No body provided") {
		return
	}
	userID := middleware.GetUserIDFromContext(r.Context())

	fb, err := h.FeedbackService.Submit(r.Context(), userID, req.Rating, req.Feedback)
	if err != nil {
		writeError(w, h.Log, err, "Error adding feedback")
		return
	}
	writeJSON(w, fb)
}
