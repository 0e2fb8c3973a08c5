package connectors

import (
	"context"
	"net/http"
	"time"

	"github.com/custodia-labs/devsync-cli/internal/connectors/confluence"
	"github.com/custodia-labs/devsync-cli/internal/connectors/github"
	"github.com/custodia-labs/devsync-cli/internal/connectors/jira"
	"github.com/custodia-labs/devsync-cli/internal/connectors/proxy"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.SessionFactory = (*Factory)(nil)

// FactoryConfig holds the settings shared by every session.
type FactoryConfig struct {
	// GitHub configures GitHub sessions.
	GitHub github.Config

	// Strategies is the request strategy list for Jira. Empty means
	// proxy.DefaultStrategies.
	Strategies []proxy.Strategy

	// Timeout bounds each Atlassian request.
	Timeout time.Duration

	// HTTPClient overrides the Atlassian HTTP client.
	HTTPClient proxy.Doer
}

// Factory creates provider sessions.
type Factory struct {
	github     github.Config
	jira       *proxy.Fetcher
	confluence *proxy.Fetcher
}

// NewFactory creates a session factory. Jira requests share one fetcher so
// the active strategy carries across sessions. Confluence requests are
// always direct.
func NewFactory(cfg FactoryConfig) *Factory {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = proxy.DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Factory{
		github:     cfg.GitHub,
		jira:       proxy.New(client, cfg.Strategies),
		confluence: proxy.New(client, []proxy.Strategy{proxy.Direct}),
	}
}

// Fetcher returns the fetcher used by Jira sessions.
func (f *Factory) Fetcher() *proxy.Fetcher {
	return f.jira
}

// GitHub creates a GitHub session.
func (f *Factory) GitHub(_ context.Context, tokens driven.TokenProvider) (driven.GitHubAPI, error) {
	return github.NewClient(tokens, f.github)
}

// Jira creates a Jira session.
func (f *Factory) Jira(_ context.Context, creds domain.AtlassianCredentials) (driven.JiraAPI, error) {
	return jira.NewClient(creds, f.jira)
}

// Confluence creates a Confluence session.
func (f *Factory) Confluence(_ context.Context, creds domain.AtlassianCredentials) (driven.ConfluenceAPI, error) {
	return confluence.NewClient(creds, f.confluence)
}
