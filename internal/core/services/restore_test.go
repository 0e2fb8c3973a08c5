package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

type restoreFixture struct {
	store      *memory.KVStore
	creds      *CredentialService
	oauth      *OAuthService
	github     *GitHubService
	jira       *JiraService
	confluence *ConfluenceService
	restore    *RestoreService
	factory    *mockFactory
}

func newRestoreFixture() *restoreFixture {
	store := memory.NewKVStore()
	factory := &mockFactory{
		github:     helloWorldAPI(),
		jira:       devJiraAPI(),
		confluence: docsConfluenceAPI(),
	}
	f := &restoreFixture{
		store:      store,
		creds:      NewCredentialService(store),
		oauth:      NewOAuthService(store, &mockExchanger{}),
		github:     NewGitHubService(factory),
		jira:       NewJiraService(factory),
		confluence: NewConfluenceService(factory),
		factory:    factory,
	}
	f.restore = NewRestoreService(f.creds, f.oauth, f.github, f.jira, f.confluence)
	return f
}

func TestRestoreService_NothingStored(t *testing.T) {
	f := newRestoreFixture()

	require.NoError(t, f.restore.Restore(context.Background()))

	assert.False(t, f.github.IsInitialized())
	assert.False(t, f.jira.IsInitialized())
	assert.False(t, f.confluence.IsInitialized())
	assert.Equal(t, int32(0), f.factory.calls.Load())
}

func TestRestoreService_FromCredentials(t *testing.T) {
	ctx := context.Background()
	f := newRestoreFixture()
	require.NoError(t, f.creds.Store(ctx, domain.ProviderGitHub, map[string]string{"token": "ghp_x"}))
	require.NoError(t, f.creds.Store(ctx, domain.ProviderJira, validJiraFields()))

	require.NoError(t, f.restore.Restore(ctx))

	assert.True(t, f.github.IsInitialized())
	assert.True(t, f.jira.IsInitialized())
	assert.True(t, f.confluence.IsInitialized(), "confluence shares the jira record")
	assert.Equal(t, "acme.atlassian.net", f.factory.lastCreds.Domain)
	assert.Equal(t, domain.AuthMethodPAT, f.factory.lastTokens.AuthMethod())
}

func TestRestoreService_ConfluenceRecordWinsOverJira(t *testing.T) {
	ctx := context.Background()
	f := newRestoreFixture()
	require.NoError(t, f.creds.Store(ctx, domain.ProviderJira, validJiraFields()))
	require.NoError(t, f.creds.Store(ctx, domain.ProviderConfluence, map[string]string{
		domain.FieldDomain:   "wiki.atlassian.net",
		domain.FieldEmail:    "docs@acme.io",
		domain.FieldAPIToken: "wiki-token",
	}))

	require.NoError(t, f.restore.Restore(ctx))

	assert.True(t, f.confluence.IsInitialized())
	assert.Equal(t, "wiki.atlassian.net", f.factory.lastCreds.Domain)
	assert.Equal(t, "docs@acme.io", f.factory.lastCreds.Email)
}

func TestRestoreService_GitHubFromOAuth(t *testing.T) {
	ctx := context.Background()
	f := newRestoreFixture()
	require.NoError(t, f.oauth.StoreTokens(ctx, domain.ProviderGitHub, &domain.OAuthToken{AccessToken: "gho_x"}))

	require.NoError(t, f.restore.Restore(ctx))

	assert.True(t, f.github.IsInitialized())
	assert.Equal(t, domain.AuthMethodOAuth, f.factory.lastTokens.AuthMethod())
}

func TestRestoreService_RemovedCredentialsReset(t *testing.T) {
	ctx := context.Background()
	f := newRestoreFixture()
	require.NoError(t, f.creds.Store(ctx, domain.ProviderJira, validJiraFields()))
	require.NoError(t, f.restore.Restore(ctx))
	require.True(t, f.jira.IsInitialized())

	require.True(t, f.confluence.IsInitialized())

	require.NoError(t, f.creds.Remove(ctx, domain.ProviderJira))
	require.NoError(t, f.restore.Restore(ctx))

	assert.False(t, f.jira.IsInitialized())
	assert.False(t, f.confluence.IsInitialized())
}
