package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/atinyakov/VocabDeck/internal/client/manager"
	"github.com/atinyakov/VocabDeck/internal/client/settings"
	"github.com/atinyakov/VocabDeck/internal/client/state"
	"github.com/atinyakov/VocabDeck/internal/client/store"
	"go.uber.org/zap"
)

// App holds the wired client components.
type App struct {
	State       *state.State
	Client      *store.Client
	Collections *manager.CollectionManager
	Cards       *manager.CardManager
	Settings    *settings.Settings
	Log         *zap.Logger
}

// NewApp loads the state file and wires the client against serverURL.
func NewApp(serverURL, statePath string, verbose bool, httpClient *http.Client) (*App, error) {
	log := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		log = l
	}

	st, err := state.Load(statePath)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	client := store.New(serverURL, httpClient, st, log)
	cards := manager.NewCardManager(client, client, st, log)

	return &App{
		State:       st,
		Client:      client,
		Collections: manager.NewCollectionManager(client, cards, log),
		Cards:       cards,
		Settings:    settings.New(st, client, log),
		Log:         log,
	}, nil
}
