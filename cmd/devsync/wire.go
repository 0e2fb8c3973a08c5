package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driven/oauth"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/devsync-cli/internal/connectors"
	"github.com/custodia-labs/devsync-cli/internal/connectors/github"
	"github.com/custodia-labs/devsync-cli/internal/connectors/proxy"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/devsync-cli/internal/core/services"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// closingStore is a key-value store that holds resources.
type closingStore interface {
	driven.KeyValueStore
	Close() error
}

// bootstrap reads config.toml and builds the services the commands use.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open configuration: %w", err)
	}
	defaultDir := opts.ConfigDir
	if defaultDir == "" {
		if defaultDir, err = file.DefaultDir(); err != nil {
			return nil, err
		}
	}

	cfg, err := services.ReadAppConfig(configStore, defaultDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("config %s, %s store in %s", configStore.Path(), cfg.StorageBackend, cfg.StorageDir)

	store, watch, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var strategies []proxy.Strategy
	if len(cfg.ProxyStrategies) > 0 {
		if strategies, err = proxy.ParseStrategies(cfg.ProxyStrategies); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	ghConfig := github.DefaultConfig()
	ghConfig.BaseURL = cfg.GitHubBaseURL
	ghConfig.Timeout = cfg.HTTPTimeout
	factory := connectors.NewFactory(connectors.FactoryConfig{
		GitHub:     ghConfig,
		Strategies: strategies,
		Timeout:    cfg.HTTPTimeout,
	})

	exchanger := oauth.NewExchanger(&http.Client{Timeout: cfg.HTTPTimeout}, map[domain.Provider]oauth.ProviderConfig{
		domain.ProviderGitHub: oauth.GitHubConfig(cfg.GitHubOAuth),
		domain.ProviderJira:   oauth.AtlassianConfig(cfg.AtlassianOAuth),
	})

	credentialService := services.NewCredentialService(store)
	oauthService := services.NewOAuthService(store, exchanger)
	githubService := services.NewGitHubService(factory)
	jiraService := services.NewJiraService(factory)
	confluenceService := services.NewConfluenceService(factory)

	return &cli.Services{
		Credentials: credentialService,
		GitHub:      githubService,
		Jira:        jiraService,
		Confluence:  confluenceService,
		Settings:    services.NewSettingsService(store),
		OAuth:       oauthService,
		Restore: services.NewRestoreService(
			credentialService, oauthService, githubService, jiraService, confluenceService,
		),
		Config:     configStore,
		WatchStore: watch,
		Close:      store.Close,
	}, nil
}

// openStore opens the configured backend. Only the file backend can be
// watched for changes made by other processes.
func openStore(ctx context.Context, cfg domain.AppConfig) (closingStore, func(func()) (func() error, error), error) {
	switch cfg.StorageBackend {
	case domain.StorageSQLite:
		store, err := sqlite.NewStore(cfg.StorageDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil, nil

	case domain.StorageFile:
		store, err := jsonfile.New(cfg.StorageDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		watch := func(onChange func()) (func() error, error) {
			w, err := jsonfile.NewWatcher(store.Path(), jsonfile.DefaultDebounce, onChange)
			if err != nil {
				return nil, err
			}
			if err := w.Start(ctx); err != nil {
				w.Stop()
				return nil, err
			}
			return func() error {
				w.Stop()
				return nil
			}, nil
		}
		return store, watch, nil

	default:
		return nil, nil, errors.New("unknown storage backend " + string(cfg.StorageBackend))
	}
}
