package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/at-ishikawa/retention/internal/bootstrap"
	"github.com/at-ishikawa/retention/internal/cli"
	"github.com/at-ishikawa/retention/internal/client"
	"github.com/at-ishikawa/retention/internal/config"
	"github.com/at-ishikawa/retention/internal/item"
	"github.com/at-ishikawa/retention/internal/retention"
)

var errRemoteUnsupported = errors.New("this command works on the local store only, unset --server")

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	storageDriver.apply(cfg)
	return cfg, nil
}

// localStore is the configured store together with a manager on top of it.
type localStore struct {
	cfg     *config.Config
	repo    item.ItemRepository
	manager *retention.Manager
	close   func() error
}

func openLocalStore(ctx context.Context) (*localStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap.OpenStore() > %w", err)
	}
	return &localStore{
		cfg:     cfg,
		repo:    store.Items,
		manager: bootstrap.NewManager(store, cfg.Retention),
		close:   store.Close,
	}, nil
}

// openBackend returns the remote client when --server is set, otherwise the local store.
func openBackend(ctx context.Context) (cli.Backend, func() error, error) {
	if serverURL != "" {
		return client.NewRetentionClient(serverURL), func() error { return nil }, nil
	}

	store, err := openLocalStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cli.NewLocalBackend(store.repo, store.manager, store.cfg.Retention.DefaultDueLimit), store.close, nil
}
