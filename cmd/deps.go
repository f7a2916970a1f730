package cmd

import (
	"fmt"

	"github.com/dsaintel/dsaiq/internal/api"
	"github.com/dsaintel/dsaiq/internal/config"
	"github.com/dsaintel/dsaiq/internal/identity"
	"github.com/dsaintel/dsaiq/internal/store"
	"github.com/spf13/cobra"
)

// deps bundles what a command needs to talk to the store and the scoring
// service. Close releases the store.
type deps struct {
	cfg      config.Config
	store    *store.Store
	client   api.Client
	identity identity.Provider
}

func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return newDeps(cfg, st), nil
}

func newDeps(cfg config.Config, st *store.Store) *deps {
	var client api.Client = api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)
	if cfg.LogRequests {
		client = api.WithLogging(client, st.EventRepo())
	}
	return &deps{
		cfg:    cfg,
		store:  st,
		client: client,
		identity: identity.Override{
			ID:    cfg.UserID,
			Inner: identity.StoreProvider{Repo: st.SettingsRepo()},
		},
	}
}

func (d *deps) Close() error {
	return d.store.Close()
}
