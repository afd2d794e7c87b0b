package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atinyakov/VocabDeck/internal/models"
	handler "github.com/atinyakov/VocabDeck/internal/server/handler/http"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter() http.Handler {
	cols := &fakeCollectionService{
		ListFunc: func(_ context.Context, userID string) ([]models.Collection, error) {
			return []models.Collection{{ID: 1, Title: "Food", UserID: userID}}, nil
		},
	}
	return handler.NewRouter(handler.Handlers{
		Auth:        &handler.AuthHandler{AuthService: &fakeAuthService{}},
		Collections: &handler.CollectionHandler{CollectionService: cols},
		Cards:       &handler.CardHandler{CardService: &fakeCardService{}},
		Completion:  &handler.CompletionHandler{Completer: &fakeCompleter{}},
		Feedback:    &handler.FeedbackHandler{FeedbackService: &fakeFeedbackService{}},
		Profile:     &handler.ProfileHandler{ProfileService: &fakeProfileService{}},
	}, fakeAuthenticator{}, []string{"http://localhost:3000"}, zap.NewNop())
}

func TestRouter_RequiresToken(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/collections", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/collections", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"alice"`)
}

func TestRouter_RejectsNonJSONBody(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/collections", strings.NewReader("title=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/cards/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, X-Provider-Key")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}
