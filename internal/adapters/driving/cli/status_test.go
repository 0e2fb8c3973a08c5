package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

func TestStatus_NothingConnected(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "", "status")

	require.NoError(t, err)
	assert.Contains(t, out, "GitHub             not connected")
	assert.Contains(t, out, "Jira Cloud         not connected")
	assert.Contains(t, out, "Confluence Cloud   not connected")
}

func TestStatus_Sources(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ctx := context.Background()
	require.NoError(t, ts.credentials.Store(ctx, domain.ProviderJira, map[string]string{
		domain.FieldDomain: "acme.atlassian.net", domain.FieldEmail: "ada@acme.io", domain.FieldAPIToken: "secret",
	}))
	require.NoError(t, ts.oauth.StoreTokens(ctx, domain.ProviderGitHub, &domain.OAuthToken{AccessToken: "gho_x"}))
	ts.github.initialized = true
	ts.jira.initialized = true
	ts.confluence.initialized = true

	out, err := runCommand(t, "", "status")

	require.NoError(t, err)
	assert.Contains(t, out, "GitHub             connected (oauth)")
	assert.Contains(t, out, "Jira Cloud         connected (token)")
	assert.Contains(t, out, "Confluence Cloud   connected (jira token)")
}

func TestStatus_Check(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.github.initialized = true
	ts.jira.initialized = true
	ts.jira.err = errors.New("401 Unauthorized")

	out, err := runCommand(t, "", "status", "--check")

	require.NoError(t, err)
	assert.Contains(t, out, "connected as octocat")
	assert.Contains(t, out, "error: 401 Unauthorized")
	assert.Contains(t, out, "Confluence Cloud   not connected")
}

func TestStatus_JSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.confluence.initialized = true

	out, err := runCommand(t, "", "--json", "status")

	require.NoError(t, err)
	var statuses []providerStatus
	require.NoError(t, json.Unmarshal([]byte(out), &statuses))
	require.Len(t, statuses, 3)
	assert.Equal(t, domain.ProviderConfluence, statuses[2].Provider)
	assert.True(t, statuses[2].Connected)
	assert.False(t, statuses[0].Connected)
}

func TestStatus_NotConfigured(t *testing.T) {
	SetServices(nil)
	defer resetFlags(rootCmd)

	_, err := runCommand(t, "", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credential service not configured")
}
