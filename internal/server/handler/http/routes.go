package http

import (
	"net/http"

	"github.com/atinyakov/VocabDeck/internal/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Handlers bundles the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Auth        *AuthHandler
	Collections *CollectionHandler
	Cards       *CardHandler
	Completion  *CompletionHandler
	Feedback    *FeedbackHandler
	Profile     *ProfileHandler
}

// NewRouter constructs the HTTP handler serving the VocabDeck API.
//
// Middleware chain (applied in order):
//  1. CORS for the configured browser origins
//  2. AllowContentType("application/json") for requests with a body
//  3. WithRequestLogging(logger)
//  4. TokenAuth on every route except sign-up, sign-in and reset requests
func NewRouter(h Handlers, authn middleware.Authenticator, origins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Auth.SignUp)
		r.Post("/signin", h.Auth.SignIn)
		r.Post("/reset", h.Auth.RequestReset)
		r.With(middleware.OptionalTokenAuth(authn)).Post("/password", h.Auth.Password)

		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth(authn))
			r.Post("/signout", h.Auth.SignOut)
			r.Get("/session", h.Auth.Session)
		})
	})

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(authn))

		r.Get("/collections", h.Collections.List)
		r.Post("/collections", h.Collections.Create)
		r.Delete("/collections/{id}", h.Collections.Delete)
		r.Get("/collections/{id}/cards", h.Cards.ListByCollection)

		r.Post("/cards", h.Cards.Create)
		r.Patch("/cards/{id}", h.Cards.Update)
		r.Delete("/cards/{id}", h.Cards.Delete)

		r.Post("/completion", h.Completion.Complete)
		r.Post("/feedback", h.Feedback.Submit)

		r.Get("/profile", h.Profile.Get)
		r.Patch("/profile", h.Profile.Update)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", ProviderKeyHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return c.Handler(r)
}
