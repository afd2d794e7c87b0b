// Package main initializes and starts the VocabDeck API server, setting up
// configuration, logging, the database, repositories, services, the
// completion gateway and HTTP handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/VocabDeck/internal/auth"
	"github.com/atinyakov/VocabDeck/internal/completion"
	"github.com/atinyakov/VocabDeck/internal/config"
	"github.com/atinyakov/VocabDeck/internal/db"
	"github.com/atinyakov/VocabDeck/internal/logger"
	"github.com/atinyakov/VocabDeck/internal/repository"
	"github.com/atinyakov/VocabDeck/internal/server/handler/http"
	"github.com/atinyakov/VocabDeck/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, file and environment configuration.
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("jwt secret is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	if err := db.Migrate(ctx, postgresDB); err != nil {
		zapLogger.Fatal("cannot migrate database", zap.Error(err))
	}

	// Drop expired revocations and reset tokens once an hour.
	db.StartExpiredTokenCleaner(ctx, postgresDB, time.Hour, zapLogger)

	collectionRepo := repository.NewPostgresCollectionRepository(postgresDB)
	cardRepo := repository.NewPostgresCardRepository(postgresDB)
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	tokenRepo := repository.NewPostgresTokenRepository(postgresDB)
	feedbackRepo := repository.NewPostgresFeedbackRepository(postgresDB)
	profileRepo := repository.NewPostgresProfileRepository(postgresDB)

	issuer := auth.NewIssuer(options.JWTSecret, options.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenRepo, issuer, service.LogMailer{Log: zapLogger})

	temperature := float32(options.Temperature)
	gateway := completion.NewGateway(completion.Config{
		APIKey:      options.OpenAIKey,
		Model:       options.OpenAIModel,
		MaxTokens:   options.MaxTokens,
		Temperature: &temperature,
	}, completion.OpenAIClient, zapLogger)

	router := http.NewRouter(http.Handlers{
		Auth:        &http.AuthHandler{AuthService: authService, Log: zapLogger},
		Collections: &http.CollectionHandler{CollectionService: service.NewCollectionService(collectionRepo), Log: zapLogger},
		Cards:       &http.CardHandler{CardService: service.NewCardService(cardRepo), Log: zapLogger},
		Completion:  &http.CompletionHandler{Completer: gateway, Log: zapLogger},
		Feedback:    &http.FeedbackHandler{FeedbackService: service.NewFeedbackService(feedbackRepo), Log: zapLogger},
		Profile:     &http.ProfileHandler{ProfileService: service.NewProfileService(profileRepo), Log: zapLogger},
	}, authService, options.Origins(), zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	if options.TLSCert != "" && options.TLSKey != "" {
		zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port))
		err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
	} else {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
