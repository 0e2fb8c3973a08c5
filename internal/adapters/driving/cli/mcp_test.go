package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "0", port.DefValue)
	assert.Equal(t, "p", port.Shorthand)

	host := mcpServeCmd.Flags().Lookup("host")
	require.NotNil(t, host)
	assert.Equal(t, "localhost", host.DefValue)
}

func TestMCPServe_InvalidPort(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(t, "", "mcp", "serve", "--port", "70000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}

func TestMCPPorts_UsesSessionServices(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	ports := mcpPorts()

	assert.Same(t, ts.github, ports.GitHub)
	assert.Same(t, ts.jira, ports.Jira)
	assert.Same(t, ts.confluence, ports.Confluence)
}
