package http_test

import (
	"context"
	"time"

	"github.com/atinyakov/VocabDeck/internal/auth"
	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/completion"
	"github.com/atinyakov/VocabDeck/internal/middleware"
	"github.com/atinyakov/VocabDeck/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

var testExpiry = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeCollectionService struct {
	ListFunc   func(ctx context.Context, userID string) ([]models.Collection, error)
	CreateFunc func(ctx context.Context, userID, title string, description *string) (*models.Collection, error)
	DeleteFunc func(ctx context.Context, userID string, id int64) ([]models.Collection, error)
}

func (f *fakeCollectionService) List(ctx context.Context, userID string) ([]models.Collection, error) {
	return f.ListFunc(ctx, userID)
}

func (f *fakeCollectionService) Create(ctx context.Context, userID, title string, description *string) (*models.Collection, error) {
	return f.CreateFunc(ctx, userID, title, description)
}

func (f *fakeCollectionService) Delete(ctx context.Context, userID string, id int64) ([]models.Collection, error) {
	return f.DeleteFunc(ctx, userID, id)
}

type fakeCardService struct {
	ListFunc   func(ctx context.Context, userID string, collectionID int64) ([]models.Card, error)
	CreateFunc func(ctx context.Context, userID string, collectionID int64, content, explanation string) (*models.Card, error)
	UpdateFunc func(ctx context.Context, userID string, id int64, content, explanation string) ([]models.Card, error)
	DeleteFunc func(ctx context.Context, userID string, id int64) ([]models.Card, error)
}

func (f *fakeCardService) List(ctx context.Context, userID string, collectionID int64) ([]models.Card, error) {
	return f.ListFunc(ctx, userID, collectionID)
}

func (f *fakeCardService) Create(ctx context.Context, userID string, collectionID int64, content, explanation string) (*models.Card, error) {
	return f.CreateFunc(ctx, userID, collectionID, content, explanation)
}

func (f *fakeCardService) Update(ctx context.Context, userID string, id int64, content, explanation string) ([]models.Card, error) {
	return f.UpdateFunc(ctx, userID, id, content, explanation)
}

func (f *fakeCardService) Delete(ctx context.Context, userID string, id int64) ([]models.Card, error) {
	return f.DeleteFunc(ctx, userID, id)
}

type fakeCompleter struct {
	got  completion.Request
	text string
	err  error
}

func (f *fakeCompleter) Complete(_ context.Context, req completion.Request) (string, error) {
	f.got = req
	return f.text, f.err
}

type fakeAuthService struct {
	SignUpFunc        func(ctx context.Context, email, password string) (*models.Session, error)
	SignInFunc        func(ctx context.Context, email, password string) (*models.Session, error)
	SignOutFunc       func(ctx context.Context, claims *auth.Claims) error
	RequestResetFunc  func(ctx context.Context, email string) error
	ResetPasswordFunc func(ctx context.Context, token, password string) error
	UpdatePassFunc    func(ctx context.Context, userID, password string) error
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	return f.SignUpFunc(ctx, email, password)
}

func (f *fakeAuthService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	return f.SignInFunc(ctx, email, password)
}

func (f *fakeAuthService) SignOut(ctx context.Context, claims *auth.Claims) error {
	return f.SignOutFunc(ctx, claims)
}

func (f *fakeAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return f.RequestResetFunc(ctx, email)
}

func (f *fakeAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return f.ResetPasswordFunc(ctx, token, password)
}

func (f *fakeAuthService) UpdatePassword(ctx context.Context, userID, password string) error {
	return f.UpdatePassFunc(ctx, userID, password)
}

type fakeFeedbackService struct {
	SubmitFunc func(ctx context.Context, userID string, rating *int, text string) (*models.Feedback, error)
}

func (f *fakeFeedbackService) Submit(ctx context.Context, userID string, rating *int, text string) (*models.Feedback, error) {
	return f.SubmitFunc(ctx, userID, rating, text)
}

type fakeProfileService struct {
	GetFunc    func(ctx context.Context, userID string) (*models.Profile, error)
	UpdateFunc func(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error)
}

func (f *fakeProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return f.GetFunc(ctx, userID)
}

func (f *fakeProfileService) Update(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	return f.UpdateFunc(ctx, userID, patch)
}

// fakeAuthenticator accepts the token "good" as user "alice".
type fakeAuthenticator struct{}

func (fakeAuthenticator) Authenticate(_ context.Context, token string) (*auth.Claims, error) {
	if token != "good" {
		return nil, common.ErrInvalidToken
	}
	return testClaims("alice"), nil
}

func testClaims(userID string) *auth.Claims {
	return &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   userID,
		ID:        "jti-" + userID,
		ExpiresAt: jwt.NewNumericDate(testExpiry),
	}}
}

// withUser returns ctx carrying the claims of userID and, when id is not
// empty, a chi route context with the {id} URL param.
func withUser(ctx context.Context, userID, id string) context.Context {
	ctx = middleware.WithClaims(ctx, testClaims(userID))
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return ctx
}
